// Package middleware holds the HTTP wrappers for admin auth, CORS and request logging.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "github.com/Epiphane/wedding-site/internal/delivery/http/helpers"
	"github.com/Epiphane/wedding-site/internal/domain"
)

type contextKey string

const adminKey contextKey = "admin"

const basicRealm = `Basic realm="wedding admin", charset="UTF-8"`

// SetAdmin marks the request context as admin-authenticated.
func SetAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

// IsAdmin reports whether RequireAdmin let this request through.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminKey).(bool)
	return ok
}

// RequireAdmin returns a wrapper that accepts either Basic credentials carrying
// the shared admin password (any username) or a Bearer admin token. Anything
// else gets a 401 and next is not called.
func RequireAdmin(auth domain.AdminAuthenticator, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}
			if _, password, ok := r.BasicAuth(); ok {
				if !auth.CheckPassword(password) {
					logger.WarnContext(r.Context(), "admin password rejected", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
					unauthorized(w, "invalid credentials")
					return
				}
				next(w, r.WithContext(SetAdmin(r.Context())))
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				unauthorized(w, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				unauthorized(w, "missing token")
				return
			}
			if err := auth.VerifyToken(token); err != nil {
				logger.DebugContext(r.Context(), "admin token rejected", "path", r.URL.Path, "err", err)
				unauthorized(w, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetAdmin(r.Context())))
		}
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", basicRealm)
	h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, message)
}
