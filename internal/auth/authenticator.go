package auth

import (
	"github.com/mmynk/fairsplit/internal/models"
)

// Authenticator decides who may open a bill.
// This abstraction allows swapping between different ways of guarding a bill
// (passcodes, invite links, etc.) without changing the service layer code.
type Authenticator interface {
	// Protect turns a credential chosen at bill creation into the value stored
	// on the bill. An empty credential leaves the bill open.
	Protect(credential string) (string, error)

	// Authenticate verifies credential against the bill.
	// Returns ErrInvalidPasscode if it does not match.
	Authenticate(bill *models.Bill, credential string) error
}
