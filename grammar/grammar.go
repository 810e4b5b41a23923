package grammar

import (
	"sort"

	"github.com/dekarrin/rosed"
)

// Grammar is a loaded, validated set of named PEG rules. The zero value is
// an empty grammar with no rules; construct one with FromRuleMap or FromAST
// rather than by literal.
type Grammar struct {
	rules map[string]Expr

	// order preserves the sequence rules were added in, for RuleNames and
	// for the order the validation passes visit rules in.
	order []string
}

// empty returns a Grammar with no rules, ready for rules to be added.
func empty() *Grammar {
	return &Grammar{rules: make(map[string]Expr)}
}

// set installs the body for name, recording insertion order the first time
// name is seen.
func (g *Grammar) set(name string, body Expr) {
	if _, exists := g.rules[name]; !exists {
		g.order = append(g.order, name)
	}
	g.rules[name] = body
}

// Rule returns the body of the named rule and whether it exists.
func (g *Grammar) Rule(name string) (Expr, bool) {
	e, ok := g.rules[name]
	return e, ok
}

// RuleNames returns every defined rule name, in the order rules were added.
func (g *Grammar) RuleNames() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Len returns the number of defined rules.
func (g *Grammar) Len() int {
	return len(g.rules)
}

// Copy returns an independent duplicate of g. Expr trees are immutable once
// built so they are shared, not deep-copied.
func (g *Grammar) Copy() *Grammar {
	cp := empty()
	cp.order = append(cp.order, g.order...)
	for k, v := range g.rules {
		cp.rules[k] = v
	}
	return cp
}

// Equal reports whether g and o define the same rule names with
// structurally identical bodies. Insertion order does not affect equality.
func (g *Grammar) Equal(o *Grammar) bool {
	if o == nil {
		return false
	}
	if len(g.rules) != len(o.rules) {
		return false
	}
	for name, body := range g.rules {
		obody, ok := o.rules[name]
		if !ok || !exprEqual(body, obody) {
			return false
		}
	}
	return true
}

// String renders the grammar as rule lines, sorted by rule name, one per
// row of a two-column table (name, body), for debug dumps and test
// failures.
func (g *Grammar) String() string {
	names := append([]string(nil), g.order...)
	sort.Strings(names)

	data := [][]string{{"rule", "body"}}
	for _, n := range names {
		data = append(data, []string{n, exprString(g.rules[n])})
	}

	opts := rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}
	return rosed.Edit("").InsertTableOpts(0, data, 100, opts).String()
}

func exprEqual(a, b Expr) bool {
	switch av := a.(type) {
	case Dot:
		_, ok := b.(Dot)
		return ok
	case Str:
		bv, ok := b.(Str)
		return ok && av.Lit == bv.Lit
	case CharClass:
		bv, ok := b.(CharClass)
		if !ok || len(av.Ranges) != len(bv.Ranges) {
			return false
		}
		for i := range av.Ranges {
			if av.Ranges[i] != bv.Ranges[i] {
				return false
			}
		}
		return true
	case Choice:
		bv, ok := b.(Choice)
		return ok && exprSliceEqual(av.Items, bv.Items)
	case Seq:
		bv, ok := b.(Seq)
		return ok && exprSliceEqual(av.Items, bv.Items)
	case ZeroOrOne:
		bv, ok := b.(ZeroOrOne)
		return ok && exprEqual(av.Item, bv.Item)
	case ZeroOrMore:
		bv, ok := b.(ZeroOrMore)
		return ok && exprEqual(av.Item, bv.Item)
	case OneOrMore:
		bv, ok := b.(OneOrMore)
		return ok && exprEqual(av.Item, bv.Item)
	case Lookahead:
		bv, ok := b.(Lookahead)
		return ok && exprEqual(av.Item, bv.Item)
	case NotLookahead:
		bv, ok := b.(NotLookahead)
		return ok && exprEqual(av.Item, bv.Item)
	case Argument:
		bv, ok := b.(Argument)
		return ok && exprEqual(av.Item, bv.Item)
	case NodeExpr:
		bv, ok := b.(NodeExpr)
		return ok && av.Name == bv.Name && exprEqual(av.Item, bv.Item)
	case Label:
		bv, ok := b.(Label)
		return ok && av.Name == bv.Name
	case Index:
		bv, ok := b.(Index)
		return ok && av.Name == bv.Name && av.Offset == bv.Offset
	default:
		return false
	}
}

func exprSliceEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !exprEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
