package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry in allowedOrigins must be a full origin (scheme + host, no trailing slash).
// identityHeader is added to the allowed request headers so browser clients
// behind a dev proxy can forward the caller identity.
func NewCORSHandler(allowedOrigins []string, identityHeader string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", identityHeader},
		ExposedHeaders: []string{"X-Request-Id"},
	})
	return c.Handler
}
