package packrat

import (
	"testing"

	"github.com/dekarrin/pegflow/ast"
	"github.com/dekarrin/pegflow/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exprGrammar builds the precedence-climbing grammar of property 4:
//
//	%start <- %Expr !.
//	Expr   <- Add / Mul / '(' %Expr ')' / Value
//	%Add   <- %Expr:1 '+' %Expr
//	%Mul   <- %Expr:2 ('*' %Expr:1)+
//	%Value <- %[0-9]+
func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()

	digit := grammar.CharClass{Ranges: []grammar.Range{{Lo: '0', Hi: '9'}}}

	g, err := grammar.FromRuleMap(map[string]grammar.Expr{
		"start": grammar.NodeExpr{Name: "start", Item: grammar.Seq{Items: []grammar.Expr{
			grammar.Argument{Item: grammar.Label{Name: "Expr"}},
			grammar.NotLookahead{Item: grammar.Dot{}},
		}}},
		"Expr": grammar.Choice{Items: []grammar.Expr{
			grammar.Label{Name: "Add"},
			grammar.Label{Name: "Mul"},
			grammar.Seq{Items: []grammar.Expr{
				grammar.Str{Lit: "("},
				grammar.Argument{Item: grammar.Label{Name: "Expr"}},
				grammar.Str{Lit: ")"},
			}},
			grammar.Label{Name: "Value"},
		}},
		"Add": grammar.NodeExpr{Name: "Add", Item: grammar.Seq{Items: []grammar.Expr{
			grammar.Argument{Item: grammar.Index{Name: "Expr", Offset: 1}},
			grammar.Str{Lit: "+"},
			grammar.Argument{Item: grammar.Label{Name: "Expr"}},
		}}},
		"Mul": grammar.NodeExpr{Name: "Mul", Item: grammar.Seq{Items: []grammar.Expr{
			grammar.Argument{Item: grammar.Index{Name: "Expr", Offset: 2}},
			grammar.OneOrMore{Item: grammar.Seq{Items: []grammar.Expr{
				grammar.Str{Lit: "*"},
				grammar.Argument{Item: grammar.Index{Name: "Expr", Offset: 1}},
			}}},
		}}},
		"Value": grammar.NodeExpr{Name: "Value", Item: grammar.Argument{
			Item: grammar.OneOrMore{Item: digit},
		}},
	})
	require.NoError(t, err)
	return g
}

func Test_Parser_precedence_mulOverAdd(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := exprGrammar(t)
	p, err := New(g, "start")
	require.NoError(err)

	got, err := p.Parse("6*7+3")
	require.NoError(err)
	require.False(got.IsLeaf())

	want := ast.New("start", ast.NodeChild(ast.New("Add",
		ast.NodeChild(ast.New("Mul",
			ast.NodeChild(ast.Leaf("Value", "6")),
			ast.NodeChild(ast.Leaf("Value", "7")),
		)),
		ast.NodeChild(ast.Leaf("Value", "3")),
	)))
	assert.True(want.Equal(got.Node), "got %s, want %s", got.Node, want)
}

func Test_Parser_precedence_rightAssociativeAdd(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := exprGrammar(t)
	p, err := New(g, "start")
	require.NoError(err)

	got, err := p.Parse("1+2+3")
	require.NoError(err)

	want := ast.New("start", ast.NodeChild(ast.New("Add",
		ast.NodeChild(ast.Leaf("Value", "1")),
		ast.NodeChild(ast.New("Add",
			ast.NodeChild(ast.Leaf("Value", "2")),
			ast.NodeChild(ast.Leaf("Value", "3")),
		)),
	)))
	assert.True(want.Equal(got.Node), "got %s, want %s", got.Node, want)
}

// Test_Parser_parenthesizedExpression confirms a parenthesized group
// overrides default precedence.
func Test_Parser_parenthesizedExpression(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := exprGrammar(t)
	p, err := New(g, "start")
	require.NoError(err)

	got, err := p.Parse("(1+2)*3")
	require.NoError(err)

	want := ast.New("start", ast.NodeChild(ast.New("Mul",
		ast.NodeChild(ast.New("Add",
			ast.NodeChild(ast.Leaf("Value", "1")),
			ast.NodeChild(ast.Leaf("Value", "2")),
		)),
		ast.NodeChild(ast.Leaf("Value", "3")),
	)))
	assert.True(want.Equal(got.Node), "got %s, want %s", got.Node, want)
}

// Test_Parser_trimmerLaws_determinism covers property 3's second bullet:
// parsing the same input twice yields equal trimmed ASTs.
func Test_Parser_trimmerLaws_determinism(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := exprGrammar(t)
	p, err := New(g, "start")
	require.NoError(err)

	first, err := p.Parse("6*7+3")
	require.NoError(err)
	second, err := p.Parse("6*7+3")
	require.NoError(err)

	assert.True(first.Node.Equal(second.Node))
}

// Test_Parser_trimmerLaws_noWrapperKinds covers property 3's first bullet:
// no internal wrapper kind strings ("Node", "Argument", "Label", "Sequence")
// ever survive into the trimmed tree's Kind field.
func Test_Parser_trimmerLaws_noWrapperKinds(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := exprGrammar(t)
	p, err := New(g, "start")
	require.NoError(err)

	got, err := p.Parse("(1+2)*3")
	require.NoError(err)

	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		for _, bad := range []string{"Node", "Argument", "Label", "Sequence"} {
			assert.NotEqual(bad, n.Kind)
		}
		for _, child := range n.Nodes() {
			walk(child)
		}
	}
	walk(got.Node)
}

func Test_Parser_failsOnShortMatch(t *testing.T) {
	require := require.New(t)

	g := exprGrammar(t)
	p, err := New(g, "start")
	require.NoError(err)

	_, err = p.Parse("1+")
	require.Error(err)

	var pf *ParseFailure
	require.ErrorAs(err, &pf)
}

// Test_Parser_succeedsOnPartialMatch_whenStartHasNoEOFAnchor confirms that a
// grammar whose start rule carries no trailing !. is free to match only a
// prefix of the input: that is a success over the matched span, not a
// failure just because trailing input remains.
func Test_Parser_succeedsOnPartialMatch_whenStartHasNoEOFAnchor(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	letters := grammar.CharClass{Ranges: []grammar.Range{{Lo: 'a', Hi: 'z'}}}
	g, err := grammar.FromRuleMap(map[string]grammar.Expr{
		"start": grammar.OneOrMore{Item: letters},
	})
	require.NoError(err)

	p, err := New(g, "start")
	require.NoError(err)

	got, err := p.Parse("abc123")
	require.NoError(err)
	assert.Equal("abc", got.Leaf)
}

// Test_Parser_errorFraming_pointsAtStalledLine exercises the reporter
// against a multi-line input where the grammar's furthest match stalls
// partway through the second line: the framed message must name that line
// and caret the furthest column any operator reached. The trailing !. probe
// matches the '#' at column 1, so the extent, and the caret, land on
// column 2.
func Test_Parser_errorFraming_pointsAtStalledLine(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// start <- line ('\n' line)* !. ; line <- [a-z]*
	letters := grammar.CharClass{Ranges: []grammar.Range{{Lo: 'a', Hi: 'z'}}}
	g, err := grammar.FromRuleMap(map[string]grammar.Expr{
		"start": grammar.Seq{Items: []grammar.Expr{
			grammar.Label{Name: "line"},
			grammar.ZeroOrMore{Item: grammar.Seq{Items: []grammar.Expr{
				grammar.Str{Lit: "\n"},
				grammar.Label{Name: "line"},
			}}},
			grammar.NotLookahead{Item: grammar.Dot{}},
		}},
		"line": grammar.ZeroOrMore{Item: letters},
	})
	require.NoError(err)

	p, err := New(g, "start")
	require.NoError(err)

	_, err = p.Parse("ok\n#oops\n@")
	require.Error(err)

	var pf *ParseFailure
	require.ErrorAs(err, &pf)
	assert.Equal(2, pf.Line)
	assert.Equal(2, pf.Col)
	assert.Equal("#oops", pf.SourceLine)

	msg := pf.FullMessage()
	assert.Contains(msg, "#oops")
	assert.Contains(msg, "^")
}
