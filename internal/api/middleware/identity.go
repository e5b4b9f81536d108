package middleware

import (
	"context"
	"net/http"
	"strings"
)

// userIDHeader carries the authenticated user id injected by the upstream
// identity provider. This service only authorizes; it never authenticates.
const userIDHeader = "X-User-ID"

type contextKey string

const userIDContextKey contextKey = "user_id"

// IdentityMiddleware extracts the authenticated user id from the request
// and stores it on the context. Requests without an identity are rejected;
// public paths can be exempted by listing them in skipPaths.
func IdentityMiddleware(skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			userID := strings.TrimSpace(r.Header.Get(userIDHeader))
			if userID == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"missing user identity"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a context carrying the given user id
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user id stored by
// IdentityMiddleware, or empty when absent
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDContextKey).(string)
	return userID
}
