package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// DefaultIdentityHeader is the header the upstream identity provider sets
// to the verified caller's email.
const DefaultIdentityHeader = "X-User-Email"

type callerKey struct{}

// WithCallerEmail returns a copy of ctx carrying the caller identity.
func WithCallerEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, callerKey{}, email)
}

// CallerEmail returns the identity stored by NewIdentityHandler.
func CallerEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(callerKey{}).(string)
	return email, ok && email != ""
}

// NewIdentityHandler returns a middleware that copies the caller identity
// from header into the request context. The value is trusted verbatim;
// authentication happens upstream. Requests without it get 401.
func NewIdentityHandler(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := r.Header.Get(header)
			if email == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing caller identity")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCallerEmail(r.Context(), email)))
		})
	}
}

// writeError writes the API's standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
