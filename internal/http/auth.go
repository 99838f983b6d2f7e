package http

import (
	"context"
	"net/http"
	"strings"

	"gopkg.in/guregu/null.v3"
)

type contextKeyType int

const userIDKey contextKeyType = 0

// AuthMiddleware resolves the bearer token, when one is sent, into the
// acting user's id. A token that does not verify is rejected outright.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			h.writeError(w, r, "AuthMiddleware", errUnauthorized)
			return
		}
		userID, err := h.Tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			h.writeError(w, r, "AuthMiddleware", errUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID returns the acting user's id, if the request carried a valid token.
func userID(ctx context.Context) null.Int {
	id, ok := ctx.Value(userIDKey).(int)
	if !ok {
		return null.Int{}
	}
	return null.IntFrom(int64(id))
}

// requireUser returns the acting user's id or errUnauthorized.
func requireUser(ctx context.Context) (int, error) {
	id := userID(ctx)
	if !id.Valid {
		return 0, errUnauthorized
	}
	return int(id.Int64), nil
}
