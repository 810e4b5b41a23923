package grammar

import (
	"github.com/dekarrin/pegflow/ast"
)

// FromRuleMap builds a Grammar from an already-constructed name -> Expr
// mapping. The map is copied; rules is iterated in Go's randomized map
// order, so RuleNames on the result reflects that arbitrary order rather
// than any meaningful sequence.
func FromRuleMap(rules map[string]Expr) (*Grammar, error) {
	g := empty()
	for name, body := range rules {
		g.set(name, body)
	}
	return finish(g)
}

// FromAST builds a Grammar from the AST of a grammar definition: a
// top-level Node (conventionally kind "start") whose children are
// "Definition" nodes, each shaped Definition(lhs, rhs).
//
//   - if lhs is Node(Label(name)): the rule is node-producing; its stored
//     body is NodeExpr{Name: name, Item: rhs}.
//   - if lhs is Label(name): the rule is a pass-through label; its stored
//     body is rhs, unwrapped.
//   - any other lhs shape is a GrammarError.
func FromAST(root *ast.Node) (*Grammar, error) {
	g := empty()

	for _, child := range root.Nodes() {
		if child.Kind != "Definition" {
			continue
		}
		if len(child.Children) != 2 || child.Children[0].IsLeaf() || child.Children[1].IsLeaf() {
			return nil, errf("", "malformed Definition node: %s", child.String())
		}
		lhs := child.Children[0].Node
		rhsNode := child.Children[1].Node

		rhs, err := exprFromNode(rhsNode)
		if err != nil {
			return nil, err
		}

		name, isNode, err := lhsName(lhs)
		if err != nil {
			return nil, err
		}

		if isNode {
			g.set(name, NodeExpr{Name: name, Item: rhs})
		} else {
			g.set(name, rhs)
		}
	}

	return finish(g)
}

// lhsName extracts the rule name and node/label-ness of a Definition's lhs
// AST node, per the shapes documented on FromAST.
func lhsName(lhs *ast.Node) (name string, isNode bool, err error) {
	switch lhs.Kind {
	case "Label":
		n, ok := labelName(lhs)
		if !ok {
			return "", false, errf("", "malformed Label lhs: %s", lhs.String())
		}
		return n, false, nil
	case "Node":
		if len(lhs.Children) != 1 || lhs.Children[0].IsLeaf() || lhs.Children[0].Node.Kind != "Label" {
			return "", false, errf("", "malformed Node lhs: %s", lhs.String())
		}
		n, ok := labelName(lhs.Children[0].Node)
		if !ok {
			return "", false, errf("", "malformed Node lhs: %s", lhs.String())
		}
		return n, true, nil
	default:
		return "", false, errf("", "unrecognized lhs shape %q", lhs.Kind)
	}
}

func labelName(labelNode *ast.Node) (string, bool) {
	if len(labelNode.Children) != 1 || !labelNode.Children[0].IsLeaf() {
		return "", false
	}
	return labelNode.Children[0].Leaf, true
}

// exprFromNode converts one node of a grammar-definition AST's RHS into the
// Expr it denotes. The node kinds handled here are exactly the ones the
// default grammar's node-producing rules mint for RHS syntax.
func exprFromNode(n *ast.Node) (Expr, error) {
	switch n.Kind {
	case "Dot":
		return Dot{}, nil
	case "Str", "String":
		if len(n.Children) != 1 || !n.Children[0].IsLeaf() {
			return nil, errf("", "malformed String node: %s", n.String())
		}
		return Str{Lit: n.Children[0].Leaf}, nil
	case "CharClass":
		ranges, err := charClassRanges(n)
		if err != nil {
			return nil, err
		}
		return CharClass{Ranges: ranges}, nil
	case "Choice":
		items, err := exprList(n)
		if err != nil {
			return nil, err
		}
		return Choice{Items: items}, nil
	case "Sequence":
		items, err := exprList(n)
		if err != nil {
			return nil, err
		}
		return Seq{Items: items}, nil
	case "ZeroOrOne":
		item, err := singleItem(n)
		if err != nil {
			return nil, err
		}
		return ZeroOrOne{Item: item}, nil
	case "ZeroOrMore":
		item, err := singleItem(n)
		if err != nil {
			return nil, err
		}
		return ZeroOrMore{Item: item}, nil
	case "OneOrMore":
		item, err := singleItem(n)
		if err != nil {
			return nil, err
		}
		return OneOrMore{Item: item}, nil
	case "Lookahead":
		item, err := singleItem(n)
		if err != nil {
			return nil, err
		}
		return Lookahead{Item: item}, nil
	case "NotLookahead":
		item, err := singleItem(n)
		if err != nil {
			return nil, err
		}
		return NotLookahead{Item: item}, nil
	case "Argument":
		item, err := singleItem(n)
		if err != nil {
			return nil, err
		}
		return Argument{Item: item}, nil
	case "Node":
		if len(n.Children) != 2 || n.Children[0].IsLeaf() {
			return nil, errf("", "malformed Node expr: %s", n.String())
		}
		name, ok := stringOrLabel(n.Children[0])
		if !ok {
			return nil, errf("", "malformed Node expr name: %s", n.String())
		}
		item, err := exprFromChild(n.Children[1])
		if err != nil {
			return nil, err
		}
		return NodeExpr{Name: name, Item: item}, nil
	case "Label":
		name, ok := labelName(n)
		if !ok {
			return nil, errf("", "malformed Label expr: %s", n.String())
		}
		return Label{Name: name}, nil
	case "Index":
		if len(n.Children) != 2 || !n.Children[0].IsLeaf() || !n.Children[1].IsLeaf() {
			return nil, errf("", "malformed Index expr: %s", n.String())
		}
		offset, err := parseNonNegInt(n.Children[1].Leaf)
		if err != nil {
			return nil, errf("", "malformed Index offset: %s", n.String())
		}
		return Index{Name: n.Children[0].Leaf, Offset: offset}, nil
	default:
		return nil, errf("", "unrecognized RHS node kind %q", n.Kind)
	}
}

func exprFromChild(c ast.Child) (Expr, error) {
	if c.IsLeaf() {
		return Str{Lit: c.Leaf}, nil
	}
	return exprFromNode(c.Node)
}

func stringOrLabel(c ast.Child) (string, bool) {
	if c.IsLeaf() {
		return c.Leaf, true
	}
	if c.Node.Kind == "Label" {
		return labelName(c.Node)
	}
	return "", false
}

func singleItem(n *ast.Node) (Expr, error) {
	if len(n.Children) != 1 {
		return nil, errf("", "expected exactly one child under %q, got %d", n.Kind, len(n.Children))
	}
	return exprFromChild(n.Children[0])
}

func exprList(n *ast.Node) ([]Expr, error) {
	items := make([]Expr, 0, len(n.Children))
	for _, c := range n.Children {
		e, err := exprFromChild(c)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func charClassRanges(n *ast.Node) ([]Range, error) {
	ranges := make([]Range, 0, len(n.Children))
	for _, c := range n.Children {
		if c.IsLeaf() {
			r := []rune(c.Leaf)
			if len(r) != 1 {
				return nil, errf("", "malformed CharClass item %q", c.Leaf)
			}
			ranges = append(ranges, Range{Lo: r[0], Hi: r[0]})
			continue
		}
		rn := c.Node
		if rn.Kind != "Range" || len(rn.Children) != 2 || !rn.Children[0].IsLeaf() || !rn.Children[1].IsLeaf() {
			return nil, errf("", "malformed CharClass range %s", rn.String())
		}
		lo := []rune(rn.Children[0].Leaf)
		hi := []rune(rn.Children[1].Leaf)
		if len(lo) != 1 || len(hi) != 1 {
			return nil, errf("", "malformed CharClass range %s", rn.String())
		}
		ranges = append(ranges, Range{Lo: lo[0], Hi: hi[0]})
	}
	return ranges, nil
}

func parseNonNegInt(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, errf("", "empty integer")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errf("", "not a non-negative integer: %q", s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// finish runs Index resolution and both validation passes over g: resolve
// sugar first (it only introduces new rules derived from existing ones),
// then check for unknown labels, then check for left recursion.
func finish(g *Grammar) (*Grammar, error) {
	if err := resolveIndices(g); err != nil {
		return nil, err
	}
	if err := checkUnknownLabels(g); err != nil {
		return nil, err
	}
	if err := checkLeftRecursion(g); err != nil {
		return nil, err
	}
	return g, nil
}
