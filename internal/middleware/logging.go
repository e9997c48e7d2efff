package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/metrics"
)

// statusRecorder remembers the first status written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

// quietPaths are scraped or probed often enough to drown the log.
var quietPaths = map[string]bool{
	"/metrics":     true,
	"/healthz":     true,
	"/favicon.ico": true,
}

// RequestLogging logs one line per request and feeds the HTTP metrics. Server
// errors are logged at warn level. m may be nil.
func RequestLogging(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			elapsed := time.Since(start)

			m.RecordRequest(r.Method, rec.status, elapsed.Seconds())

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			slog.Log(r.Context(), level, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds(),
				"learner_id", ctxkeys.LearnerID(r.Context()),
			)
		})
	}
}
