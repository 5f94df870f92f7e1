// Package session identifies the logical client behind a request. A session plays the
// role of one browser's local storage: every store key is scoped to it.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "sid"
	HeaderName = "X-Session-ID"
)

type ctxKey struct{}

// Middleware resolves the session id from the header, then the cookie, and otherwise
// mints a new one. The id is echoed back in both the header and the cookie.
func Middleware(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := resolve(r)
			w.Header().Set(HeaderName, id)
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

func resolve(r *http.Request) string {
	if id, ok := parse(r.Header.Get(HeaderName)); ok {
		return id
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if id, ok := parse(c.Value); ok {
			return id
		}
	}
	return uuid.NewString()
}

func parse(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the session id stored in ctx, or "" outside the middleware.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
