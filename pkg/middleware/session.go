package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jacksonlee411/hcdash/pkg/session"
)

// WithSession reads the caller identity from trusted upstream headers.
// Requests without a user header carry an anonymous session.
func WithSession(headers session.Headers) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := headers.Parse(r)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}
