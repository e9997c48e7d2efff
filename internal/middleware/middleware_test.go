package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoLearner(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(ctxkeys.LearnerID(r.Context())))
}

func TestLearner_IssuesCookie(t *testing.T) {
	learners := service.NewLearnerService("secret", time.Hour, false)
	h := Learner(learners)(http.HandlerFunc(echoLearner))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, service.LearnerCookieName, cookies[0].Name)

	learnerID, err := learners.Verify(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, learnerID, rec.Body.String())
}

func TestLearner_ReusesValidCookie(t *testing.T) {
	learners := service.NewLearnerService("secret", time.Hour, false)
	h := Learner(learners)(http.HandlerFunc(echoLearner))

	learnerID, token, err := learners.Issue()
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: service.LearnerCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, learnerID, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestLearner_ReplacesInvalidCookie(t *testing.T) {
	learners := service.NewLearnerService("secret", time.Hour, false)
	h := Learner(learners)(http.HandlerFunc(echoLearner))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: service.LearnerCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Body.String())
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestCSRFProtection(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := CSRFProtection(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/learn/start", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/generate-lesson", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// token from a GET, echoed in the header
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest("POST", "/api/learn/start", strings.NewReader(`{}`))
	req.AddCookie(cookies[0])
	req.Header.Set(csrfHeader, cookies[0].Value)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	h := CSPNonce(SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRequestLogging_PassesStatusThrough(t *testing.T) {
	h := RequestLogging(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/garden", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Body.String(), "nope")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCSPNonce_DiffersPerRequest(t *testing.T) {
	var seen []string
	h := CSPNonce(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, nonceFrom(r.Context()))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.NotEqual(t, seen[0], seen[1])
}
