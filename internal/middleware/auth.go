package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const authRealm = `Basic realm="wallcal", charset="UTF-8"`

// BasicAuth guards next with HTTP basic auth against a bcrypt password hash.
// Clients that fail too often are answered with 429 until their window ends;
// clientIP decides which address a failure is charged to.
func BasicAuth(username, passwordHash string, limiter *FailureLimiter, clientIP func(*http.Request) string, logger *slog.Logger) func(http.Handler) http.Handler {
	hash := []byte(passwordHash)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if limiter.Blocked(ip) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			user, pass, ok := r.BasicAuth()
			if ok &&
				subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1 &&
				bcrypt.CompareHashAndPassword(hash, []byte(pass)) == nil {
				limiter.Reset(ip)
				next.ServeHTTP(w, r)
				return
			}

			if ok {
				limiter.Fail(ip)
				logger.Warn("basic auth failed", "user", user, "remote", ip)
			}
			w.Header().Set("WWW-Authenticate", authRealm)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}
