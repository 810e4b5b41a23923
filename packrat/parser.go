package packrat

import (
	"fmt"

	"github.com/dekarrin/pegflow/ast"
	"github.com/dekarrin/pegflow/grammar"
)

// Parser runs a single grammar's start rule against input text via the
// packrat matcher, trims the result into the user-facing ast.Child, and on
// failure produces a framed diagnosis. A Parser is reusable across calls to
// Parse; each call gets its own machine and so its own clean memo tables.
type Parser struct {
	g     *grammar.Grammar
	start string

	lastErr *ParseFailure
}

// New returns a Parser for g, starting at the rule named start. It fails if
// start does not name a rule in g.
func New(g *grammar.Grammar, start string) (*Parser, error) {
	if _, ok := g.Rule(start); !ok {
		return nil, fmt.Errorf("packrat: start rule %q is not defined in grammar", start)
	}
	return &Parser{g: g, start: start}, nil
}

// Parse runs the parser's start rule against text. The match need not span
// the whole of text unless the grammar's own start rule forces that (for
// instance with a trailing !. anchor); a match that falls short of len(text)
// is still a success over whatever prefix it covered. Only an outright
// failure to match is reported, as a *ParseFailure describing the furthest
// offset any rule reached.
//
// On failure the returned error is always a *ParseFailure; LastError also
// makes it available without a type assertion.
func (p *Parser) Parse(text string) (ast.Child, error) {
	m := newMachine(p.g, text)

	tree, ok := m.matchStart(p.start)
	if !ok {
		p.lastErr = newParseFailure(text, m.extent)
		return ast.Child{}, p.lastErr
	}

	p.lastErr = nil
	return trimValue(text, tree), nil
}

// LastError returns the failure from the most recent call to Parse, or nil
// if that call succeeded or Parse has not yet been called.
func (p *Parser) LastError() *ParseFailure {
	return p.lastErr
}

// ParseRaw behaves like Parse but skips the trimmer, returning the full
// untrimmed structure instead: every Sequence, Argument, and Label wrapper
// the matcher produced survives as its own node. Intended for callers that
// want to inspect or debug a grammar's raw parse shape rather than its
// collapsed AST.
func (p *Parser) ParseRaw(text string) (*ast.Node, error) {
	m := newMachine(p.g, text)

	tree, ok := m.matchStart(p.start)
	if !ok {
		p.lastErr = newParseFailure(text, m.extent)
		return nil, p.lastErr
	}

	p.lastErr = nil
	return rawTree(text, tree), nil
}
