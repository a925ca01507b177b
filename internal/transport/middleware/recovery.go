package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/sashbid/internal"
	"github.com/frahmantamala/sashbid/internal/transport"
)

// RecoveryMiddleware turns a panic in one request into a 500 for that request only.
func RecoveryMiddleware(logger *slog.Logger, exposeDetails bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"url", r.URL.String(),
					"stack", string(debug.Stack()))

				appErr := internal.NewInternalError("Server error", fmt.Errorf("panic: %v", rec))
				if exposeDetails {
					appErr = appErr.WithDetails(map[string]string{"cause": appErr.Cause.Error()})
				}
				transport.WriteAppError(w, appErr)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
