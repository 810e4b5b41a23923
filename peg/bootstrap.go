// Package peg wires the parser core (packrat), the grammar model (grammar),
// and the AST (ast) into the library's top-level facade: a Config-driven
// Parser, and the hard-coded default PEG-for-PEG grammar that the core is a
// fixed point of. bootstrap.go holds the hard-coded rule map; canonical.go
// holds its matching textual form.
package peg

import "github.com/dekarrin/pegflow/grammar"

// defaultRules is the hard-coded default grammar: the PEG for PEG itself,
// extended with '%' for Argument/Node marking and 'Name:N' for
// precedence-climbing Index sugar. Every node-producing rule here mints the
// exact AST kind grammar.FromAST's exprFromNode expects to see on the
// right-hand side of a Definition, and the two rules literally named "Node"
// and "Label" double as both that RHS vocabulary and the shapes a
// Definition's own left-hand side takes — the fixed point this package's
// tests hold the canonical text to.
func defaultRules() map[string]grammar.Expr {
	r := map[string]grammar.Expr{}

	ident := grammar.Seq{Items: []grammar.Expr{
		grammar.CharClass{Ranges: []grammar.Range{{Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}, {Lo: '_', Hi: '_'}}},
		grammar.ZeroOrMore{Item: grammar.CharClass{Ranges: []grammar.Range{
			{Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}, {Lo: '0', Hi: '9'}, {Lo: '_', Hi: '_'},
		}}},
	}}
	r["Ident"] = ident

	r["NonNegInt"] = grammar.OneOrMore{Item: grammar.CharClass{Ranges: []grammar.Range{{Lo: '0', Hi: '9'}}}}

	r["WS"] = grammar.CharClass{Ranges: []grammar.Range{
		{Lo: ' ', Hi: ' '}, {Lo: '\t', Hi: '\t'}, {Lo: '\r', Hi: '\r'}, {Lo: '\n', Hi: '\n'},
	}}
	r["Comment"] = grammar.Seq{Items: []grammar.Expr{
		grammar.Str{Lit: "#"},
		grammar.ZeroOrMore{Item: grammar.Seq{Items: []grammar.Expr{
			grammar.NotLookahead{Item: grammar.Str{Lit: "\n"}},
			grammar.Dot{},
		}}},
		grammar.ZeroOrOne{Item: grammar.Str{Lit: "\n"}},
	}}
	r["_"] = grammar.ZeroOrMore{Item: grammar.Choice{Items: []grammar.Expr{
		grammar.Label{Name: "WS"}, grammar.Label{Name: "Comment"},
	}}}

	// literal content: raw, un-decoded text (escape decoding happens once,
	// in Load, after parsing) so the same rules serve both quoting styles
	// and both literal kinds without double-processing.
	r["StrChar"] = grammar.Choice{Items: []grammar.Expr{
		grammar.Seq{Items: []grammar.Expr{grammar.Str{Lit: "\\"}, grammar.Dot{}}},
		grammar.Seq{Items: []grammar.Expr{
			grammar.NotLookahead{Item: grammar.Str{Lit: "'"}},
			grammar.NotLookahead{Item: grammar.Str{Lit: "\""}},
			grammar.Dot{},
		}},
	}}
	r["StrChars"] = grammar.ZeroOrMore{Item: grammar.Label{Name: "StrChar"}}

	r["CCChar"] = grammar.Choice{Items: []grammar.Expr{
		grammar.Seq{Items: []grammar.Expr{grammar.Str{Lit: "\\"}, grammar.Dot{}}},
		grammar.Seq{Items: []grammar.Expr{
			grammar.NotLookahead{Item: grammar.Str{Lit: "]"}},
			grammar.Dot{},
		}},
	}}
	r["Range"] = grammar.NodeExpr{Name: "Range", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Argument{Item: grammar.Label{Name: "CCChar"}},
		grammar.Str{Lit: "-"},
		grammar.Argument{Item: grammar.Label{Name: "CCChar"}},
	}}}
	r["CharClassItem"] = grammar.Choice{Items: []grammar.Expr{
		grammar.Label{Name: "Range"}, grammar.Label{Name: "CCChar"},
	}}
	r["CharClass"] = grammar.NodeExpr{Name: "CharClass", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Str{Lit: "["},
		grammar.ZeroOrMore{Item: grammar.Argument{Item: grammar.Label{Name: "CharClassItem"}}},
		grammar.Str{Lit: "]"},
	}}}

	r["Dot"] = grammar.NodeExpr{Name: "Dot", Item: grammar.Str{Lit: "."}}

	r["String"] = grammar.NodeExpr{Name: "String", Item: grammar.Choice{Items: []grammar.Expr{
		grammar.Seq{Items: []grammar.Expr{
			grammar.Str{Lit: "'"}, grammar.Argument{Item: grammar.Label{Name: "StrChars"}}, grammar.Str{Lit: "'"},
		}},
		grammar.Seq{Items: []grammar.Expr{
			grammar.Str{Lit: "\""}, grammar.Argument{Item: grammar.Label{Name: "StrChars"}}, grammar.Str{Lit: "\""},
		}},
	}}}

	r["Index"] = grammar.NodeExpr{Name: "Index", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Argument{Item: grammar.Label{Name: "Ident"}},
		grammar.Str{Lit: ":"},
		grammar.Argument{Item: grammar.Label{Name: "NonNegInt"}},
	}}}

	// Label mints a bare-name reference; it also serves as the lhs shape
	// for a pass-through rule definition, per the loader's Definition
	// shapes — one production, two roles, by design.
	r["Label"] = grammar.NodeExpr{Name: "Label", Item: grammar.Argument{Item: grammar.Label{Name: "Ident"}}}
	// Node mints the node-producing lhs marker '%Name'; it is never used as
	// a plain RHS atom, only at the head of a Definition.
	r["Node"] = grammar.NodeExpr{Name: "Node", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Str{Lit: "%"}, grammar.Argument{Item: grammar.Label{Name: "Label"}},
	}}}

	r["Group"] = grammar.Seq{Items: []grammar.Expr{
		grammar.Str{Lit: "("},
		grammar.Label{Name: "_"},
		grammar.Argument{Item: grammar.Label{Name: "Choice"}},
		grammar.Label{Name: "_"},
		grammar.Str{Lit: ")"},
	}}

	r["Primary"] = grammar.Choice{Items: []grammar.Expr{
		grammar.Label{Name: "String"},
		grammar.Label{Name: "CharClass"},
		grammar.Label{Name: "Dot"},
		grammar.Label{Name: "Index"},
		grammar.Label{Name: "Label"},
		grammar.Label{Name: "Group"},
	}}

	r["ZeroOrOne"] = grammar.NodeExpr{Name: "ZeroOrOne", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Argument{Item: grammar.Label{Name: "Primary"}}, grammar.Str{Lit: "?"},
	}}}
	r["ZeroOrMore"] = grammar.NodeExpr{Name: "ZeroOrMore", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Argument{Item: grammar.Label{Name: "Primary"}}, grammar.Str{Lit: "*"},
	}}}
	r["OneOrMore"] = grammar.NodeExpr{Name: "OneOrMore", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Argument{Item: grammar.Label{Name: "Primary"}}, grammar.Str{Lit: "+"},
	}}}
	r["Suffixed"] = grammar.Choice{Items: []grammar.Expr{
		grammar.Label{Name: "ZeroOrOne"},
		grammar.Label{Name: "ZeroOrMore"},
		grammar.Label{Name: "OneOrMore"},
		grammar.Label{Name: "Primary"},
	}}

	r["Lookahead"] = grammar.NodeExpr{Name: "Lookahead", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Str{Lit: "&"}, grammar.Argument{Item: grammar.Label{Name: "Prefixed"}},
	}}}
	r["NotLookahead"] = grammar.NodeExpr{Name: "NotLookahead", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Str{Lit: "!"}, grammar.Argument{Item: grammar.Label{Name: "Prefixed"}},
	}}}
	r["Argument"] = grammar.NodeExpr{Name: "Argument", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Str{Lit: "%"}, grammar.Argument{Item: grammar.Label{Name: "Prefixed"}},
	}}}
	r["Prefixed"] = grammar.Choice{Items: []grammar.Expr{
		grammar.Label{Name: "Lookahead"},
		grammar.Label{Name: "NotLookahead"},
		grammar.Label{Name: "Argument"},
		grammar.Label{Name: "Suffixed"},
	}}

	// Sequence and Choice are plain pass-through rules, not node-producing:
	// a single operand collapses straight through (trimLabel's one-argument
	// rule), and two or more mint a node named after the rule itself — so
	// "a" stays Label("a") but "a b" becomes Sequence(Label("a"),
	// Label("b")), with no separate '%'-marking needed at this level.
	// Since _ also spans line breaks, a further term is refused where the
	// next Definition begins (a Lhs followed by '<-').
	r["Sequence"] = grammar.Seq{Items: []grammar.Expr{
		grammar.Argument{Item: grammar.Label{Name: "Prefixed"}},
		grammar.ZeroOrMore{Item: grammar.Seq{Items: []grammar.Expr{
			grammar.Label{Name: "_"},
			grammar.NotLookahead{Item: grammar.Seq{Items: []grammar.Expr{
				grammar.Label{Name: "Lhs"}, grammar.Label{Name: "_"}, grammar.Str{Lit: "<-"},
			}}},
			grammar.Argument{Item: grammar.Label{Name: "Prefixed"}},
		}}},
	}}
	r["Choice"] = grammar.Seq{Items: []grammar.Expr{
		grammar.Argument{Item: grammar.Label{Name: "Sequence"}},
		grammar.ZeroOrMore{Item: grammar.Seq{Items: []grammar.Expr{
			grammar.Label{Name: "_"}, grammar.Str{Lit: "/"}, grammar.Label{Name: "_"},
			grammar.Argument{Item: grammar.Label{Name: "Sequence"}},
		}}},
	}}

	r["Lhs"] = grammar.Choice{Items: []grammar.Expr{grammar.Label{Name: "Node"}, grammar.Label{Name: "Label"}}}
	r["Definition"] = grammar.NodeExpr{Name: "Definition", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Argument{Item: grammar.Label{Name: "Lhs"}},
		grammar.Label{Name: "_"},
		grammar.Str{Lit: "<-"},
		grammar.Label{Name: "_"},
		grammar.Argument{Item: grammar.Label{Name: "Choice"}},
	}}}
	r["start"] = grammar.NodeExpr{Name: "start", Item: grammar.Seq{Items: []grammar.Expr{
		grammar.Label{Name: "_"},
		grammar.ZeroOrMore{Item: grammar.Seq{Items: []grammar.Expr{
			grammar.Argument{Item: grammar.Label{Name: "Definition"}}, grammar.Label{Name: "_"},
		}}},
		grammar.NotLookahead{Item: grammar.Dot{}},
	}}}

	return r
}
