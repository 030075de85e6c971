package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/banksim/internal/server/auth"
)

type contextKey string

const accountIDKey contextKey = "account_id"

func accountIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(accountIDKey).(int64)
	return id
}

func extractBearer(h string) string {
	if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// requireAccessToken guards endpoints that need a fully authenticated caller.
// The JWT is minted at OTAC promotion, so possession of a valid one implies
// both factors were verified.
func (s *Server) requireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			unauthorized(w)
			return
		}
		accountID, err := auth.GetAccountIDFromToken(raw, s.secretKey)
		if err != nil {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), accountIDKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
