package packrat

import "github.com/dekarrin/pegflow/ast"

// trimValue implements the bulk of the trimmer: it collapses one internal
// parse-tree node into the single ast.Child a grammar author's rule
// contributes to its parent. text is the full source text the parse ran
// over, needed to recover the literal span an untagged match covered.
func trimValue(text string, t *ptree) ast.Child {
	switch t.op {
	case opStr:
		return ast.LeafChild(decodeEscapes(t.str))
	case opArg:
		return trimValue(text, t.children[0])
	case opNodeWrap:
		args := collectArgs(text, t.children[0])
		return ast.NodeChild(ast.NewSpanned(t.name, ast.NewSpan(t.start, t.stop), args...))
	case opLabel:
		return trimLabel(text, t)
	case opSeq:
		return trimSeq(text, t)
	default:
		panic("packrat: unreachable ptree op in trimValue")
	}
}

// trimLabel resolves a rule reference's matched body down to one value: zero
// Arguments inside the body falls back to the body's own trimmed value, one
// Argument is passed through directly, and more than one is collected into a
// node named after the rule itself. This applies unconditionally, regardless
// of whether the Label itself sits inside an enclosing Argument.
//
// Naming the multi-argument case after the rule (rather than some generic
// "tuple" kind) is what lets a plain, non-%-prefixed rule like the default
// grammar's own alternation rule collapse a single alternative straight
// through while still minting its own kind when two or more are present.
func trimLabel(text string, t *ptree) ast.Child {
	body := t.children[0]
	args := collectArgs(text, body)
	switch len(args) {
	case 0:
		return trimValue(text, body)
	case 1:
		return args[0]
	default:
		return ast.NodeChild(ast.NewSpanned(t.name, ast.NewSpan(t.start, t.stop), args...))
	}
}

// trimSeq handles a Sequence-shaped match trimmed directly: the body of a
// rule reached through a Label with no Argument inside it, a repetition or
// group under an Argument, or the start rule's own body. Same collapsing
// rule as trimLabel, with the whole matched span's literal text as the
// zero-argument fallback.
func trimSeq(text string, t *ptree) ast.Child {
	args := collectArgs(text, t)
	switch len(args) {
	case 0:
		return ast.LeafChild(decodeEscapes(text[t.start:t.stop]))
	case 1:
		return args[0]
	default:
		return ast.NodeChild(ast.NewSpanned("Tuple", ast.NewSpan(t.start, t.stop), args...))
	}
}

// collectArgs walks t gathering the trimmed value of every Argument-marked
// sub-match, in left-to-right order, without descending past a Label or Node
// boundary that is not itself wrapped in an Argument — such a boundary's
// result is simply not retained by its caller. Sequence is the only
// structural kind collectArgs looks through, since it is the sole operator
// that can hold more than one Argument as direct siblings.
func collectArgs(text string, t *ptree) []ast.Child {
	switch t.op {
	case opArg:
		return []ast.Child{trimValue(text, t.children[0])}
	case opSeq:
		var out []ast.Child
		for _, c := range t.children {
			out = append(out, collectArgs(text, c)...)
		}
		return out
	default:
		return nil
	}
}

// decodeEscapes un-escapes the small set of backslash escapes grammar
// literals support: \n, \t, \r, and \\. Any other backslash sequence is left
// as-is, backslash included.
func decodeEscapes(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			out = append(out, s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '\\':
			out = append(out, '\\')
		default:
			out = append(out, s[i], s[i+1])
		}
		i++
	}
	return string(out)
}
