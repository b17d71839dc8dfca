package hateoas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodelistsDerive(t *testing.T) {
	c := NewCodelists()

	tests := []struct {
		link    string
		derived string
		ok      bool
	}{
		{"/mdr/ct/2021-01", "/mdr/ct/2021-01/codelists", true},
		{"/mdr/ct/packages", "", false},
		{"/mdr/ct/2021-01/codelists", "", false},
		{"/mdr/ct/2021-01/codelists/C66742", "", false},
		{"/mdr/sdtm/1-8", "", false},
	}
	for _, tt := range tests {
		derived, ok := c.Derive(tt.link)
		assert.Equal(t, tt.ok, ok, tt.link)
		assert.Equal(t, tt.derived, derived, tt.link)
	}
}

func TestNoneNeverDerives(t *testing.T) {
	_, ok := None{}.Derive("/mdr/ct/2021-01")
	assert.False(t, ok)
}
