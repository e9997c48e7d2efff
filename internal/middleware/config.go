package middleware

import (
	"net/http"

	"github.com/skillbloom/skillbloom/internal/config"
	"github.com/skillbloom/skillbloom/internal/ctxkeys"
)

// Config exposes the public part of cfg to handlers and the layout. The
// sanitized copy is made once rather than per request.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	public := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxkeys.WithConfig(r.Context(), public)))
		})
	}
}
