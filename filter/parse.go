package filter

import (
	"fmt"
	"strings"
	"unicode"
)

// Grammar, lowest precedence first:
//
//	expr    = term { "or" term }
//	term    = factor { "and" factor }
//	factor  = "not" factor | "(" expr ")" | cmp
//	cmp     = "$_url" op string
//	op      = "contains" | "startswith" | "endswith" | "equals"
//
// The only free variable is $_url, bound to the candidate link at evaluation
// time. String literals are double quoted.

const linkVariable = "$_url"

type tokenKind int

const (
	tokVar tokenKind = iota
	tokString
	tokIdent
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := rune(input[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case c == '"':
			end := strings.IndexByte(input[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated string at offset %d", i)
			}
			toks = append(toks, token{kind: tokString, text: input[i+1 : i+1+end]})
			i += end + 2
		case strings.HasPrefix(input[i:], linkVariable):
			toks = append(toks, token{kind: tokVar})
			i += len(linkVariable)
		case unicode.IsLetter(c):
			j := i
			for j < len(input) && unicode.IsLetter(rune(input[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: input[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokIdent && p.peek().text == "or" {
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = orExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokIdent && p.peek().text == "and" {
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = andExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseFactor() (Expr, error) {
	switch t := p.peek(); {
	case t.kind == tokIdent && t.text == "not":
		p.next()
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return notExpr{expr: inner}, nil
	case t.kind == tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return inner, nil
	case t.kind == tokVar:
		return p.parseCmp()
	default:
		return nil, fmt.Errorf("expected %s, not, or parenthesis", linkVariable)
	}
}

func (p *parser) parseCmp() (Expr, error) {
	p.next() // the variable
	op := p.next()
	if op.kind != tokIdent {
		return nil, fmt.Errorf("expected comparison operator after %s", linkVariable)
	}
	var kind cmpKind
	switch op.text {
	case "contains":
		kind = cmpContains
	case "startswith":
		kind = cmpStartsWith
	case "endswith":
		kind = cmpEndsWith
	case "equals":
		kind = cmpEquals
	default:
		return nil, fmt.Errorf("unknown operator %q", op.text)
	}
	lit := p.next()
	if lit.kind != tokString {
		return nil, fmt.Errorf("operator %q needs a quoted string", op.text)
	}
	return cmpExpr{kind: kind, literal: lit.text}, nil
}

// Parse compiles one filter line into an evaluable expression.
func Parse(line string) (Expr, error) {
	toks, err := lex(line)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("trailing input after expression")
	}
	return expr, nil
}
