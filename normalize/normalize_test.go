package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnsupportedMediaType(t *testing.T) {
	_, err := New("application/pdf")
	require.Error(t, err)
	assert.ErrorAs(t, err, &ErrUnsupportedMediaType{})
	assert.Contains(t, err.Error(), "application/pdf")
}

func TestTreeJSON(t *testing.T) {
	n, err := New("application/json")
	require.NoError(t, err)

	tree, err := n.Tree([]byte(`{"href":"/mdr/ct/packages","items":[{"href":"/mdr/adam"}]}`))
	require.NoError(t, err)

	m, ok := tree.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/mdr/ct/packages", m["href"])
}

func TestTreeJSONMalformed(t *testing.T) {
	n, err := New("application/json")
	require.NoError(t, err)

	_, err = n.Tree([]byte(`{"href":`))
	assert.Error(t, err)
}

func TestTreeXML(t *testing.T) {
	n, err := New("application/xml")
	require.NoError(t, err)

	tree, err := n.Tree([]byte(`<root><link href="/mdr/sdtm/1-8"/></root>`))
	require.NoError(t, err)

	root, ok := tree.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, root)
}

func TestTreeTabularIsEmpty(t *testing.T) {
	for _, mt := range []string{"text/csv", "application/vnd.ms-excel"} {
		n, err := New(mt)
		require.NoError(t, err)

		tree, err := n.Tree([]byte("a,b,c\n1,2,3\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, tree)
	}
}
