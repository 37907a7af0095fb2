package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey int

const supplierIDKey contextKey = iota

// Middleware rejects requests without a valid bearer token and stores the
// authenticated supplier ID in the request context.
func Middleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			supplierID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), supplierIDKey, supplierID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SupplierID returns the authenticated supplier ID stored by Middleware.
func SupplierID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(supplierIDKey).(uuid.UUID)
	return id, ok
}
