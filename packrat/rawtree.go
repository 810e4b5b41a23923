package packrat

import "github.com/dekarrin/pegflow/ast"

// rawTree renders an internal parse tree without the trimmer's collapsing
// (the untrimmed form a caller can ask for via Config.NoTrim = true): every
// structural wrapper the matcher produced — Sequence, Argument, Label, and
// each grammar-author node kind — survives as its own ast.Node, and opStr
// leaves carry their raw matched text instead of being folded into whatever
// their parent collapses to.
func rawTree(text string, t *ptree) *ast.Node {
	span := ast.NewSpan(t.start, t.stop)
	switch t.op {
	case opStr:
		return ast.NewSpanned("String", span, ast.LeafChild(t.str))
	case opSeq:
		children := make([]ast.Child, len(t.children))
		for i, c := range t.children {
			children[i] = ast.NodeChild(rawTree(text, c))
		}
		return ast.NewSpanned("Sequence", span, children...)
	case opArg:
		return ast.NewSpanned("Argument", span, ast.NodeChild(rawTree(text, t.children[0])))
	case opLabel:
		return ast.NewSpanned("Label", span, ast.LeafChild(t.name), ast.NodeChild(rawTree(text, t.children[0])))
	case opNodeWrap:
		return ast.NewSpanned("Node", span, ast.LeafChild(t.name), ast.NodeChild(rawTree(text, t.children[0])))
	default:
		panic("packrat: unreachable ptree op in rawTree")
	}
}
