package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComparisons(t *testing.T) {
	tests := []struct {
		expr string
		link string
		want bool
	}{
		{`$_url startswith "/mdr/ct"`, "/mdr/ct/2021-01", true},
		{`$_url startswith "/mdr/ct"`, "/mdr/sdtm/1-8", false},
		{`$_url contains "/codelists"`, "/mdr/ct/2021-01/codelists", true},
		{`$_url endswith "/packages"`, "/mdr/ct/packages", true},
		{`$_url equals "/mdr/adam"`, "/mdr/adam", true},
		{`$_url equals "/mdr/adam"`, "/mdr/adam/1-1", false},
	}
	for _, tt := range tests {
		expr, err := Parse(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, expr.Eval(tt.link), "%s on %s", tt.expr, tt.link)
	}
}

func TestParseComposition(t *testing.T) {
	expr, err := Parse(`$_url startswith "/mdr/ct" and not ($_url contains "/codelists")`)
	require.NoError(t, err)

	assert.True(t, expr.Eval("/mdr/ct/2021-01"))
	assert.False(t, expr.Eval("/mdr/ct/2021-01/codelists"))
	assert.False(t, expr.Eval("/mdr/sdtm/1-8"))

	expr, err = Parse(`$_url equals "/a" or $_url equals "/b"`)
	require.NoError(t, err)
	assert.True(t, expr.Eval("/b"))
	assert.False(t, expr.Eval("/c"))
}

func TestParsePrecedence(t *testing.T) {
	// and binds tighter than or
	expr, err := Parse(`$_url equals "/a" or $_url startswith "/b" and $_url endswith "/c"`)
	require.NoError(t, err)

	assert.True(t, expr.Eval("/a"))
	assert.True(t, expr.Eval("/b/x/c"))
	assert.False(t, expr.Eval("/b/x"))
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{
		`$_url`,
		`$_url matches "/x"`,
		`$_url contains /x`,
		`contains "/x"`,
		`$_url contains "/x`,
		`($_url contains "/x"`,
		`$_url contains "/x" garbage`,
	} {
		_, err := Parse(expr)
		assert.Error(t, err, expr)
	}
}

func TestEngineOrSemantics(t *testing.T) {
	e := New(
		MustParse(`$_url startswith "/mdr/sdtm"`),
		MustParse(`$_url startswith "/mdr/ct"`),
	)

	// matches filter #2 but not #1
	assert.True(t, e.Admit("/mdr/ct/2021-01"))
	assert.False(t, e.Admit("/mdr/adam/1-1"))
}

func TestEngineEmptyRejectsAll(t *testing.T) {
	assert.False(t, New().Admit("/mdr/ct/packages"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prime_cache_filters.txt")
	content := "$_url startswith \"/mdr/ct\"\n\nnot ($_url contains \"/codelists\")\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	e, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Len())
	assert.True(t, e.Admit("/mdr/ct/2021-01"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestLoadMalformedIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filters.txt")
	require.NoError(t, os.WriteFile(path, []byte("$_url frobs \"/x\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
