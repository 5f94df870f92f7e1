package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey struct{}

// Middleware rejects requests without a valid "Authorization: Bearer <token>" header.
func Middleware(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || token == "" {
				respond(w, http.StatusUnauthorized, map[string]string{"error": ErrUnauthorized.Error()})
				return
			}
			adminID, err := service.Verify(token)
			if err != nil {
				respond(w, http.StatusUnauthorized, map[string]string{"error": ErrUnauthorized.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, adminID)))
		})
	}
}

// AdminID returns the authenticated admin's id, or "" outside Middleware.
func AdminID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
