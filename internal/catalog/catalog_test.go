package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Len(t, c.Steps, 5)
	assert.Equal(t, "welcome", c.Steps[0].ID)
	assert.Equal(t, "ready", c.Steps[4].ID)
	assert.Contains(t, c.Categories[0].Skills, "Python")
	assert.Len(t, c.TimeOptions, 4)
}

func TestDetectSkill(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		goal   string
		want   string
		wantOK bool
	}{
		{"alias lowercase", "I want to automate reports with python", "Python", true},
		{"direct skill name", "Get good enough at Figma to design my app", "Figma", true},
		{"alias maps to other skill", "Switch careers into ml research", "Machine Learning", true},
		{"alias inside word ignored", "Get better at my job again and again", "", false},
		{"no match", "Learn to play guitar by summer", "", false},
		{"multi word alias", "Stop being nervous at public speaking events", "Public Speaking", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.DetectSkill(tt.goal)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("steps: [unterminated"))
	require.Error(t, err)
}
