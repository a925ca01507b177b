package middleware

import (
	"net/http"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/pkg/logger"
)

// UserContext tags the request logger with the authenticated user.
// It must run after the auth middleware.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := internal.PrincipalFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx := logger.With(r.Context(), "userID", p.ID, "role", p.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
