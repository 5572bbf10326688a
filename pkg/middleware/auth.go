package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"mahal-booking/pkg/utils"

	"go.uber.org/zap"
)

// AdminToken guards administrative routes with a static bearer token. An
// empty token disables the routes entirely.
func AdminToken(token string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				logger.Warn("Admin route called but no admin token is configured",
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access is disabled")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(parts[1])), []byte(token)) != 1 {
				logger.Warn("Admin check: invalid token",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
