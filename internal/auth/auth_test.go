package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("bill-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.BillID != "bill-1" {
		t.Errorf("BillID = %s, want bill-1", claims.BillID)
	}

	tests := []struct {
		name    string
		token   string
		billID  string
		manager *JWTManager
		wantErr error
	}{
		{"matching bill", token, "bill-1", m, nil},
		{"other bill", token, "bill-2", m, ErrInvalidToken},
		{"missing token", "", "bill-1", m, ErrMissingToken},
		{"garbage token", "not-a-jwt", "bill-1", m, ErrInvalidToken},
		{"wrong secret", token, "bill-1", NewJWTManager("other-secret", time.Hour), ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.manager.Authorize(tt.token, tt.billID)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Authorize() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authorize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestJWTManagerExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)
	token, err := m.Generate("bill-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestPasscodeAuthenticator(t *testing.T) {
	a := NewPasscodeAuthenticator(bcrypt.MinCost)

	if _, err := a.Protect("abc"); !errors.Is(err, ErrWeakPasscode) {
		t.Errorf("expected ErrWeakPasscode, got %v", err)
	}

	hash, err := a.Protect("open sesame")
	if err != nil {
		t.Fatalf("Protect failed: %v", err)
	}
	if hash == "" || hash == "open sesame" {
		t.Fatalf("unexpected hash %q", hash)
	}

	bill := models.NewBill(money.DefaultCurrency())
	bill.PasscodeHash = hash

	if err := a.Authenticate(bill, "open sesame"); err != nil {
		t.Errorf("Authenticate with correct passcode failed: %v", err)
	}
	if err := a.Authenticate(bill, "wrong"); !errors.Is(err, ErrInvalidPasscode) {
		t.Errorf("expected ErrInvalidPasscode, got %v", err)
	}

	open := models.NewBill(money.DefaultCurrency())
	if h, err := a.Protect(""); err != nil || h != "" {
		t.Errorf("Protect(\"\") = %q, %v", h, err)
	}
	if err := a.Authenticate(open, "anything"); err != nil {
		t.Errorf("bill without passcode should be open, got %v", err)
	}
}
