package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDFromContext returns the id attached by requireAuth. The value is
// request-scoped; nothing outside the request ever sees it.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// requireAuth guards protected routes. The Authorization header must be
// exactly "Bearer <token>"; the verified user id travels to the handlers via
// the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, common.ErrNoAuthHeader)
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, common.ErrBadAuthHeader)
			return
		}

		userID, err := s.users.VerifyToken(parts[1])
		if err != nil {
			writeError(w, common.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
