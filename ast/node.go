// Package ast defines the immutable node type shared by the grammar's parse
// expression definitions, the packrat parser's internal parse tree, and the
// trimmed, user-facing syntax tree it produces.
package ast

import (
	"fmt"
	"strings"
)

// Span is a half-open byte range [Start, Stop) into the source text a Node
// was parsed from. A synthetic Node (one not produced directly by a parse,
// such as an AST built by hand for a test) may leave Span unset; Present
// reports whether it carries real source coordinates.
type Span struct {
	Start, Stop int
	Present     bool
}

// NewSpan returns a present Span over [start, stop).
func NewSpan(start, stop int) Span {
	return Span{Start: start, Stop: stop, Present: true}
}

// Child is one element of a Node's children: either a nested *Node or a raw
// string leaf. Exactly one of Node/Leaf is set; IsLeaf reports which.
type Child struct {
	Node *Node
	Leaf string
	leaf bool
}

// NodeChild wraps n as a Child.
func NodeChild(n *Node) Child {
	return Child{Node: n}
}

// LeafChild wraps s as a string-leaf Child.
func LeafChild(s string) Child {
	return Child{Leaf: s, leaf: true}
}

// IsLeaf reports whether c holds a string leaf rather than a nested Node.
func (c Child) IsLeaf() bool {
	return c.leaf
}

// Equal compares two children structurally, per Node.Equal's rules.
func (c Child) Equal(o Child) bool {
	if c.leaf != o.leaf {
		return false
	}
	if c.leaf {
		return c.Leaf == o.Leaf
	}
	return c.Node.Equal(o.Node)
}

// Node is an immutable AST node: a symbolic kind tag, an ordered list of
// children (each either a nested Node or a string leaf), and an optional
// source span. Nodes are values in spirit and are never mutated after
// construction; every method that would "change" a Node instead returns a
// new one.
type Node struct {
	Kind     string
	Children []Child
	Span     Span
}

// New constructs a Node with no span set (a synthetic node).
func New(kind string, children ...Child) *Node {
	return &Node{Kind: kind, Children: children}
}

// NewSpanned constructs a Node carrying the given source span.
func NewSpanned(kind string, span Span, children ...Child) *Node {
	return &Node{Kind: kind, Children: children, Span: span}
}

// Leaf constructs a single-string-leaf Node, the common case for a literal
// matched by the grammar.
func Leaf(kind, value string) *Node {
	return New(kind, LeafChild(value))
}

// Equal reports whether n and o are structurally identical: same kind, same
// number of children, and each child pair equal in turn. Spans are excluded
// from comparison, per the data model's equality rule.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Copy returns a deep, independent duplicate of n.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Kind: n.Kind, Span: n.Span, Children: make([]Child, len(n.Children))}
	for i, c := range n.Children {
		if c.IsLeaf() {
			cp.Children[i] = LeafChild(c.Leaf)
		} else {
			cp.Children[i] = NodeChild(c.Node.Copy())
		}
	}
	return cp
}

// Strings returns the children of n that are string leaves, in order,
// ignoring any nested-Node children. Useful for rules whose body is known to
// match only literal text.
func (n *Node) Strings() []string {
	var out []string
	for _, c := range n.Children {
		if c.IsLeaf() {
			out = append(out, c.Leaf)
		}
	}
	return out
}

// Nodes returns the children of n that are nested Nodes, in order, ignoring
// any string-leaf children.
func (n *Node) Nodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.IsLeaf() {
			out = append(out, c.Node)
		}
	}
	return out
}

// String returns a single-line, parenthesized rendering of n suitable for
// test failure messages: kind(child, child, ...), recursively.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(n.Kind)
	sb.WriteRune('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		if c.IsLeaf() {
			sb.WriteString(fmt.Sprintf("%q", c.Leaf))
		} else {
			sb.WriteString(c.Node.String())
		}
	}
	sb.WriteRune(')')
	return sb.String()
}
