package grammar

import (
	"fmt"
	"strings"
)

// exprString renders e back into the grammar's textual surface syntax, used
// only for debug dumps (Grammar.String) and error messages; it is not a
// parser and makes no round-trip guarantee.
func exprString(e Expr) string {
	switch v := e.(type) {
	case Dot:
		return "."
	case Str:
		return fmt.Sprintf("%q", v.Lit)
	case CharClass:
		var sb strings.Builder
		sb.WriteRune('[')
		for _, r := range v.Ranges {
			if r.Lo == r.Hi {
				sb.WriteRune(r.Lo)
			} else {
				fmt.Fprintf(&sb, "%c-%c", r.Lo, r.Hi)
			}
		}
		sb.WriteRune(']')
		return sb.String()
	case Choice:
		return joinExprs(v.Items, " / ")
	case Seq:
		return joinExprs(v.Items, " ")
	case ZeroOrOne:
		return exprString(v.Item) + "?"
	case ZeroOrMore:
		return exprString(v.Item) + "*"
	case OneOrMore:
		return exprString(v.Item) + "+"
	case Lookahead:
		return "&" + exprString(v.Item)
	case NotLookahead:
		return "!" + exprString(v.Item)
	case Argument:
		return "%" + exprString(v.Item)
	case NodeExpr:
		return fmt.Sprintf("Node(%s, %s)", v.Name, exprString(v.Item))
	case Label:
		return v.Name
	case Index:
		return fmt.Sprintf("%s:%d", v.Name, v.Offset)
	default:
		return "?"
	}
}

func joinExprs(items []Expr, sep string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = exprString(it)
	}
	return "(" + strings.Join(parts, sep) + ")"
}
