package sessions

import (
	"context"
	"net/http"

	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

type ctxKey struct{}

// FromContext returns the session loaded by Middleware, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Session)
	return sess, ok
}

// Middleware resolves the session cookie and injects the session into the
// request context. Requests without a valid session pass through untouched;
// handlers that need one use Require or FromContext.
func Middleware(store Store, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := store.Load(r.Context(), cookie.Value)
			if err != nil {
				if err != ErrNotFound {
					logger.Warn("failed to load session", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
		})
	}
}

// Require rejects requests that did not resolve a session.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			writeJSON(w, http.StatusUnauthorized, loginResponse{Message: "login required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
