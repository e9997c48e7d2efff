package middleware

import (
	"net/http"

	"github.com/skillbloom/skillbloom/internal/ctxkeys"
)

// WithURLPath stores the request path for the layout's active nav link.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithURLPath(r.Context(), r.URL.Path)))
	})
}
