package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearnerToken(t *testing.T) {
	svc := NewLearnerService("secret", time.Hour, false)

	learnerID, token, err := svc.Issue()
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, learnerID, got)

	other := NewLearnerService("other-secret", time.Hour, false)
	_, err = other.Verify(token)
	assert.Error(t, err)

	expired := NewLearnerService("secret", -time.Minute, false)
	_, token, err = expired.Issue()
	require.NoError(t, err)
	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestLearnerSetCookie(t *testing.T) {
	svc := NewLearnerService("secret", time.Hour, true)
	rec := httptest.NewRecorder()

	svc.SetCookie(rec, "token")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, LearnerCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
}
