package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairsplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// BillIDKey is the context key for storing the bill the caller is authorized for.
const BillIDKey contextKey = "bill_id"

// BillScoped is implemented by request messages that act on one stored bill.
type BillScoped interface {
	GetBillID() string
}

// GetBillID extracts the authorized bill ID from the context.
// Returns empty string if not found.
func GetBillID(ctx context.Context) string {
	billID, _ := ctx.Value(BillIDKey).(string)
	return billID
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// RequireBillToken returns a middleware that guards bill-scoped requests.
// Requests implementing BillScoped must carry a bearer token issued for that
// bill; the bill ID is then added to the request context. Other requests pass
// through untouched.
func RequireBillToken(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			scoped, ok := req.Any().(BillScoped)
			if !ok {
				return next(ctx, req)
			}

			tokenString, err := BearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			billID := scoped.GetBillID()
			if err := jwtManager.Authorize(tokenString, billID); err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = context.WithValue(ctx, BillIDKey, billID)
			return next(ctx, req)
		}
	}
}
