package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc, err := NewParser().Parse([]byte("---\ntitle: About\norder: 2\n---\n## Why SkillBloom\n\nFive minutes a day.\n"))
	require.NoError(t, err)

	assert.Equal(t, "About", doc.String("title"))
	assert.Equal(t, "", doc.String("order"))
	assert.Contains(t, string(doc.HTML), `<h2 id="why-skillbloom">Why SkillBloom</h2>`)
	assert.NotContains(t, string(doc.HTML), "title:")
}

func TestParse_NoFrontMatter(t *testing.T) {
	doc, err := NewParser().Parse([]byte("Just text"))
	require.NoError(t, err)

	assert.Empty(t, doc.Meta)
	assert.Contains(t, string(doc.HTML), "<p>Just text</p>")
}
