package models

import "errors"

var (
	ErrDuplicateParticipant = errors.New("participant already exists")
	ErrInvalidParticipant   = errors.New("invalid participant")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrInvalidItem          = errors.New("invalid item")
	ErrItemNotFound         = errors.New("item not found")
)
