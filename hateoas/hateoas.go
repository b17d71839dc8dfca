// Package hateoas compensates for links the upstream API deliberately leaves
// out of its hypermedia payloads.
package hateoas

import "strings"

// Correction decides whether a discovered link implies an additional derived
// link that the response itself never carries. Implementations encode
// out-of-band knowledge about a specific resource family.
type Correction interface {
	Derive(link string) (string, bool)
}

// Codelists synthesizes the codelists child for controlled terminology
// package links. The upstream API strips that child from CT responses to keep
// them small, so a crawl that only follows embedded links would never reach
// codelist content.
type Codelists struct {
	// Segment identifies the controlled terminology resource family.
	Segment string
	// PackagesPath is the top-level package listing, which has no codelists
	// child of its own.
	PackagesPath string
}

func NewCodelists() Codelists {
	return Codelists{
		Segment:      "/ct/",
		PackagesPath: "/mdr/ct/packages",
	}
}

func (c Codelists) Derive(link string) (string, bool) {
	if !strings.Contains(link, c.Segment) {
		return "", false
	}
	if strings.Contains(link, "codelist") {
		return "", false
	}
	if link == c.PackagesPath {
		return "", false
	}
	return link + "/codelists", true
}

// None disables correction.
type None struct{}

func (None) Derive(string) (string, bool) { return "", false }
