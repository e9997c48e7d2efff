package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	text := "Sure! Here is your lesson:\n```json\n{\"title\": \"Chords\", \"summary\": \"Play {C}\"}\n```\nEnjoy."

	var v struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	err := ExtractObject(text, &v)
	require.NoError(t, err)
	assert.Equal(t, "Chords", v.Title)
	assert.Equal(t, "Play {C}", v.Summary)
}

func TestExtractArray(t *testing.T) {
	var topics []string
	err := ExtractArray(`Path: ["Basics", "Scales"] done`, &topics)
	require.NoError(t, err)
	assert.Equal(t, []string{"Basics", "Scales"}, topics)
}

func TestExtract_Errors(t *testing.T) {
	var v map[string]any

	err := ExtractObject("no json here", &v)
	assert.ErrorIs(t, err, ErrNoJSON)

	err = ExtractObject("} backwards {", &v)
	assert.ErrorIs(t, err, ErrNoJSON)

	err = ExtractObject("{not: valid}", &v)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSON)
}
