package middleware

import (
	"log/slog"
	"net/http"

	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/service"
)

// Learner puts the anonymous learner ID in the context, issuing a new
// cookie when the request has none or carries an invalid one.
func Learner(learnerService *service.LearnerService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.LearnerCookieName)
			if err == nil {
				learnerID, err := learnerService.Verify(cookie.Value)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(ctxkeys.WithLearnerID(r.Context(), learnerID)))
					return
				}
			}

			learnerID, token, err := learnerService.Issue()
			if err != nil {
				slog.Error("failed to issue learner token", "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			learnerService.SetCookie(w, token)

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithLearnerID(r.Context(), learnerID)))
		})
	}
}
