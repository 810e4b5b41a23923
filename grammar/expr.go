// Package grammar models a PEG grammar as a set of named rules, each a tree
// of parse-expression operators, and provides the loader that builds a
// Grammar from a rule map or from a grammar-definition AST, plus the
// validation passes (unknown labels, left recursion) that must pass before
// a Grammar may be handed to the packrat parser.
package grammar

import "fmt"

// Expr is a parse expression: one node of the tree of operators that makes
// up a rule's body. The concrete types below are the only implementations;
// a type switch on Expr is exhaustive over them.
type Expr interface {
	exprNode()
}

// Range is an inclusive [Lo, Hi] range of runes, one alternative of a
// CharClass.
type Range struct {
	Lo, Hi rune
}

// Contains reports whether r is within the range.
func (rg Range) Contains(r rune) bool {
	return r >= rg.Lo && r <= rg.Hi
}

// Dot matches any single character.
type Dot struct{}

// Str matches an exact literal substring.
type Str struct {
	Lit string
}

// CharClass matches a single character falling in the union of Ranges.
type CharClass struct {
	Ranges []Range
}

// Choice tries each Item in order, taking the first that matches
// (ordered choice, no backtracking once an alternative commits).
type Choice struct {
	Items []Expr
}

// Seq requires every Item to match in order, threading the offset through.
type Seq struct {
	Items []Expr
}

// ZeroOrOne greedily matches Item zero or one time.
type ZeroOrOne struct {
	Item Expr
}

// ZeroOrMore greedily matches Item zero or more times.
type ZeroOrMore struct {
	Item Expr
}

// OneOrMore greedily matches Item one or more times; fails if there are zero
// matches.
type OneOrMore struct {
	Item Expr
}

// Lookahead succeeds, consuming no input, iff Item matches at the current
// offset.
type Lookahead struct {
	Item Expr
}

// NotLookahead succeeds, consuming no input, iff Item does NOT match at the
// current offset.
type NotLookahead struct {
	Item Expr
}

// Argument marks Item's match for retention: its trimmed value becomes (or
// contributes to) an argument of the nearest enclosing Node/Label.
type Argument struct {
	Item Expr
}

// NodeExpr mints an AST node of kind Name when Item matches.
type NodeExpr struct {
	Name string
	Item Expr
}

// Label is a reference to another rule by name.
type Label struct {
	Name string
}

// Index is a reference to the tail of another rule's top-level Choice or
// Sequence, starting at Offset; sugar for precedence climbing, resolved away
// during load (see resolveIndices).
type Index struct {
	Name   string
	Offset int
}

func (Dot) exprNode()          {}
func (Str) exprNode()          {}
func (CharClass) exprNode()    {}
func (Choice) exprNode()       {}
func (Seq) exprNode()          {}
func (ZeroOrOne) exprNode()    {}
func (ZeroOrMore) exprNode()   {}
func (OneOrMore) exprNode()    {}
func (Lookahead) exprNode()    {}
func (NotLookahead) exprNode() {}
func (Argument) exprNode()     {}
func (NodeExpr) exprNode()     {}
func (Label) exprNode()        {}
func (Index) exprNode()        {}

// IndexRuleName returns the synthetic rule name resolveIndices introduces for
// Index{name, k}.
func IndexRuleName(name string, offset int) string {
	return fmt.Sprintf("%s:%d", name, offset)
}
