package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/fairsplit/internal/models"
)

var (
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrWeakPasscode    = errors.New("passcode must be at least 4 characters")
)

const minPasscodeLength = 4

// PasscodeAuthenticator guards bills with a bcrypt-hashed passcode.
type PasscodeAuthenticator struct {
	cost int
}

var _ Authenticator = (*PasscodeAuthenticator)(nil)

// NewPasscodeAuthenticator creates a passcode authenticator hashing with cost.
// A cost of 0 uses bcrypt.DefaultCost.
func NewPasscodeAuthenticator(cost int) *PasscodeAuthenticator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasscodeAuthenticator{cost: cost}
}

// ValidateCredential checks if the passcode meets minimum requirements.
func (a *PasscodeAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < minPasscodeLength {
		return ErrWeakPasscode
	}
	return nil
}

// Protect hashes the passcode. An empty passcode returns an empty hash.
func (a *PasscodeAuthenticator) Protect(credential string) (string, error) {
	if credential == "" {
		return "", nil
	}
	if err := a.ValidateCredential(credential); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	return string(hashed), nil
}

// Authenticate compares the passcode with the bill's hash. Bills without a
// passcode accept any credential.
func (a *PasscodeAuthenticator) Authenticate(bill *models.Bill, credential string) error {
	if bill.PasscodeHash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(bill.PasscodeHash), []byte(credential)); err != nil {
		return ErrInvalidPasscode
	}
	return nil
}
