// internal/identity/middleware.go
package identity

import (
	"context"
	"net/http"
	"strings"

	"paddock/internal/apperr"
)

type contextKey struct{}

var sessionKey contextKey

// SessionFrom extracts the authenticated session from a request context.
func SessionFrom(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey).(*Session)
	return session, ok
}

// RequireAuth authenticates the Bearer token and stores the session in
// the request context.
func RequireAuth(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			kind, token, found := strings.Cut(header, " ")
			if !found || kind != "Bearer" || token == "" {
				apperr.Write(w, apperr.Unauthorized("not authenticated"))
				return
			}

			session, err := svc.Verify(token)
			if err != nil {
				apperr.Write(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects sessions whose role is not on the allow-list.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFrom(r.Context())
			if !ok {
				apperr.Write(w, apperr.Unauthorized("not authenticated"))
				return
			}
			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			apperr.Write(w, apperr.Forbidden("not authorized"))
		})
	}
}
