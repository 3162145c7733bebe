package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Cors allows the dashboard front-end origins to call the JSON API.
func Cors(allowedOrigins []string, extraHeaders ...string) mux.MiddlewareFunc {
	headers := append([]string{"Content-Type", "Authorization", "X-Request-ID"}, extraHeaders...)
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   headers,
		ExposedHeaders:   []string{"X-Request-Id", "X-Trace-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           600,
	})
	return c.Handler
}
