package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.md"), []byte("---\ntitle: About SkillBloom\ndescription: Tiny lessons\n---\n# Hello\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "getting-started.md"), []byte("Plain page\n"), 0o644))

	svc := NewPageService(dir, false)

	page, err := svc.Page("about")
	require.NoError(t, err)
	assert.Equal(t, "About SkillBloom", page.Title)
	assert.Equal(t, "Tiny lessons", page.Description)
	assert.Contains(t, page.Content, "Hello</h1>")

	page, err = svc.Page("getting-started")
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", page.Title)

	_, err = svc.Page("missing")
	assert.ErrorIs(t, err, ErrPageNotFound)

	_, err = svc.Page("../etc")
	assert.ErrorIs(t, err, ErrPageNotFound)
}
