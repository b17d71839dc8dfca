// Package filter scopes a crawl with operator-authored link predicates.
//
// Filters live in a text file, one expression per line. A candidate link is
// admitted when at least one filter evaluates true; expressions are a closed
// comparison language, never interpreted as general-purpose code.
package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Expr is a compiled boolean predicate over a candidate link.
type Expr interface {
	Eval(link string) bool
}

type cmpKind int

const (
	cmpContains cmpKind = iota
	cmpStartsWith
	cmpEndsWith
	cmpEquals
)

type cmpExpr struct {
	kind    cmpKind
	literal string
}

func (c cmpExpr) Eval(link string) bool {
	switch c.kind {
	case cmpContains:
		return strings.Contains(link, c.literal)
	case cmpStartsWith:
		return strings.HasPrefix(link, c.literal)
	case cmpEndsWith:
		return strings.HasSuffix(link, c.literal)
	default:
		return link == c.literal
	}
}

type notExpr struct{ expr Expr }

func (n notExpr) Eval(link string) bool { return !n.expr.Eval(link) }

type andExpr struct{ left, right Expr }

func (a andExpr) Eval(link string) bool { return a.left.Eval(link) && a.right.Eval(link) }

type orExpr struct{ left, right Expr }

func (o orExpr) Eval(link string) bool { return o.left.Eval(link) || o.right.Eval(link) }

// Filter pairs a compiled expression with the source line it came from, for
// diagnostics.
type Filter struct {
	Source string
	expr   Expr
}

// Engine evaluates the ordered filter list loaded at startup. The list is
// immutable for the run.
type Engine struct {
	filters []Filter
}

func New(filters ...Filter) *Engine {
	return &Engine{filters: filters}
}

// Load reads and compiles a filter file. Blank lines are skipped; the first
// malformed expression aborts the load, so a bad filter file fails the run
// before any traversal starts.
func Load(path string) (*Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open filter file: %w", err)
	}
	defer f.Close()

	var filters []Filter
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		expr, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("filter file %s line %d: %w", path, lineNo, err)
		}
		filters = append(filters, Filter{Source: line, expr: expr})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read filter file: %w", err)
	}
	return New(filters...), nil
}

// MustParse compiles a single expression and panics on error. Test helper.
func MustParse(line string) Filter {
	expr, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return Filter{Source: line, expr: expr}
}

// Admit reports whether any loaded filter matches the link. Evaluation stops
// at the first match; with no filters loaded everything is rejected.
func (e *Engine) Admit(link string) bool {
	for _, f := range e.filters {
		if f.expr.Eval(link) {
			return true
		}
	}
	return false
}

func (e *Engine) Len() int { return len(e.filters) }
