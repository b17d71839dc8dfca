package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://library.cdisc.org/api", s.BaseURL)
	assert.Equal(t, "/mdr/ct/packages", s.Resource)
	assert.Equal(t, "application/json", s.MediaType)
	assert.Equal(t, "prime_cache_filters.txt", s.FilterFile)
	assert.Equal(t, "tested_urls.txt", s.VisitedFile)
	assert.Equal(t, "href", s.LinkKey)
	assert.Equal(t, 1, s.WorkCount)
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `[Primer]
BaseURL = "https://qa.example.org/api"
Resource = "/mdr/sdtm/1-8"
WorkCount = 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://qa.example.org/api", s.BaseURL)
	assert.Equal(t, "/mdr/sdtm/1-8", s.Resource)
	assert.Equal(t, 4, s.WorkCount)
	// untouched keys keep defaults
	assert.Equal(t, "application/json", s.MediaType)
}
