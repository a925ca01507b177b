package middleware

import (
	"net/http"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/transport"
	"github.com/frahmantamala/sashbid/pkg/logger"
)

// RequireRoles lets the request through only when the caller holds one of roles.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				transport.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.From(r.Context()).Warn("access denied: role not permitted",
				"user_id", p.ID,
				"role", p.Role,
				"required_roles", roles)
			transport.WriteAppError(w, internal.NewForbiddenError(
				"User role "+p.Role+" is not authorized to access this resource",
				internal.ErrCodeInsufficientRole))
		})
	}
}
