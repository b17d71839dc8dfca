// Package normalize converts fetched response bodies into a generic content
// tree of nested map[string]any, []any and scalar values, so link discovery
// works the same way regardless of the wire format.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clbanning/mxj/v2"
)

// ErrUnsupportedMediaType reports a declared Accept media type no normalizer
// branch handles. It is raised when the Normalizer is constructed, before any
// traversal begins.
type ErrUnsupportedMediaType struct {
	MediaType string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("unsupported media type: %s", e.MediaType)
}

type kind int

const (
	kindJSON kind = iota
	kindXML
	kindTabular
)

type Normalizer struct {
	mediaType string
	kind      kind
}

// New validates the declared media type and selects the matching branch.
// Tabular families (CSV, Excel) carry no extractable links and normalize to
// an empty tree.
func New(mediaType string) (*Normalizer, error) {
	n := &Normalizer{mediaType: mediaType}
	switch {
	case strings.Contains(mediaType, "json"):
		n.kind = kindJSON
	case strings.Contains(mediaType, "xml"):
		n.kind = kindXML
	case strings.Contains(mediaType, "vnd.ms-excel"), strings.Contains(mediaType, "text/csv"):
		n.kind = kindTabular
	default:
		return nil, ErrUnsupportedMediaType{MediaType: mediaType}
	}
	return n, nil
}

func (n *Normalizer) MediaType() string {
	return n.mediaType
}

// Tree parses a response body into the generic content tree. XML attributes
// and child elements both surface as map entries.
func (n *Normalizer) Tree(body []byte) (any, error) {
	switch n.kind {
	case kindJSON:
		var tree any
		if err := json.Unmarshal(body, &tree); err != nil {
			return nil, fmt.Errorf("parse json content: %w", err)
		}
		return tree, nil
	case kindXML:
		m, err := mxj.NewMapXml(body)
		if err != nil {
			return nil, fmt.Errorf("parse xml content: %w", err)
		}
		return map[string]any(m), nil
	default:
		return map[string]any{}, nil
	}
}
