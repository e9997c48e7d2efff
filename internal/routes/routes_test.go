package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/skillbloom/skillbloom/internal/app"
	"github.com/skillbloom/skillbloom/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		AppName:              "SkillBloom",
		AppEnv:               "development",
		StoreDriver:          "memory",
		ContentPath:          t.TempDir(),
		LearnerSecret:        "test-secret",
		LearnerExpiry:        time.Hour,
		MistralEndpoint:      "http://127.0.0.1:0",
		FlowSessionIdle:      time.Hour,
		FlowMaxQuizQuestions: 10,
		MetricsEnabled:       true,
	}

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return SetupRoutes(a)
}

func TestRoutes(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{"GET", "/healthz", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/", "", http.StatusOK},
		{"GET", "/garden", "", http.StatusOK},
		{"GET", "/learn?skill=Guitar", "", http.StatusOK},
		{"GET", "/onboarding", "", http.StatusOK},
		{"GET", "/api/onboarding", "", http.StatusOK},
		{"GET", "/about", "", http.StatusNotFound},
		{"GET", "/nowhere", "", http.StatusNotFound},
		{"POST", "/api/generate-lesson", `{"skill":"Guitar"}`, http.StatusOK},
		{"POST", "/api/generate-lesson", `{}`, http.StatusBadRequest},
		{"POST", "/api/learn/start", `{"skill":"Guitar"}`, http.StatusForbidden},
		{"POST", "/learn/start", "skill=Guitar", http.StatusForbidden},
		{"POST", "/garden/skills", "name=Spanish", http.StatusForbidden},
		{"POST", "/onboarding", "goal=python", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRoutes_LearnerCookie(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/garden", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	for _, c := range rec.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "learner_token")
	assert.Contains(t, names, "csrf_token")
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}
