package grammar

// resolveIndices: every Index{name, k} used anywhere in the grammar is
// sugar for a reference to a synthetic rule "name:k" whose body is the body
// of "name" with its top-level expression list sliced from position k
// onward. Index expressions are then rewritten in place into plain Label
// references to the synthetic rule.
//
// The rule body being sliced is treated as its direct children list regardless
// of whether the top-level constructor is Choice or Sequence; if the body
// is any other constructor it is treated as a one-element list (itself),
// so Index(name, 0) is just that expression and any Index(name, k>0) fails
// to load for lack of a (k+1)th child.
func resolveIndices(g *Grammar) error {
	used := map[string]Index{}
	for _, name := range g.order {
		collectIndices(g.rules[name], used)
	}
	if len(used) == 0 {
		return nil
	}

	for _, idx := range used {
		synthName := IndexRuleName(idx.Name, idx.Offset)
		if _, exists := g.rules[synthName]; exists {
			continue
		}
		base, ok := g.rules[idx.Name]
		if !ok {
			// left for the unknown-label pass to report uniformly
			continue
		}
		sliced, err := sliceFrom(base, idx.Offset)
		if err != nil {
			return errf(idx.Name, "%s", err.(*Error).Message)
		}
		g.set(synthName, sliced)
	}

	for _, name := range g.order {
		g.rules[name] = rewriteIndices(g.rules[name])
	}
	return nil
}

func bodyChildren(e Expr) []Expr {
	switch v := e.(type) {
	case Choice:
		return v.Items
	case Seq:
		return v.Items
	default:
		return []Expr{e}
	}
}

func sliceFrom(e Expr, k int) (Expr, error) {
	children := bodyChildren(e)
	if k < 0 || k >= len(children) {
		return nil, errf("", "index offset %d out of range (only %d children)", k, len(children))
	}
	tail := children[k:]
	switch e.(type) {
	case Choice:
		return Choice{Items: tail}, nil
	case Seq:
		return Seq{Items: tail}, nil
	default:
		// len(children) == 1 and k == 0, handled above; tail[0] == e
		return tail[0], nil
	}
}

func collectIndices(e Expr, out map[string]Index) {
	switch v := e.(type) {
	case Index:
		out[IndexRuleName(v.Name, v.Offset)] = v
	case Choice:
		for _, it := range v.Items {
			collectIndices(it, out)
		}
	case Seq:
		for _, it := range v.Items {
			collectIndices(it, out)
		}
	case ZeroOrOne:
		collectIndices(v.Item, out)
	case ZeroOrMore:
		collectIndices(v.Item, out)
	case OneOrMore:
		collectIndices(v.Item, out)
	case Lookahead:
		collectIndices(v.Item, out)
	case NotLookahead:
		collectIndices(v.Item, out)
	case Argument:
		collectIndices(v.Item, out)
	case NodeExpr:
		collectIndices(v.Item, out)
	}
}

func rewriteIndices(e Expr) Expr {
	switch v := e.(type) {
	case Index:
		return Label{Name: IndexRuleName(v.Name, v.Offset)}
	case Choice:
		return Choice{Items: rewriteIndicesList(v.Items)}
	case Seq:
		return Seq{Items: rewriteIndicesList(v.Items)}
	case ZeroOrOne:
		return ZeroOrOne{Item: rewriteIndices(v.Item)}
	case ZeroOrMore:
		return ZeroOrMore{Item: rewriteIndices(v.Item)}
	case OneOrMore:
		return OneOrMore{Item: rewriteIndices(v.Item)}
	case Lookahead:
		return Lookahead{Item: rewriteIndices(v.Item)}
	case NotLookahead:
		return NotLookahead{Item: rewriteIndices(v.Item)}
	case Argument:
		return Argument{Item: rewriteIndices(v.Item)}
	case NodeExpr:
		return NodeExpr{Name: v.Name, Item: rewriteIndices(v.Item)}
	default:
		return e
	}
}

func rewriteIndicesList(items []Expr) []Expr {
	out := make([]Expr, len(items))
	for i, it := range items {
		out[i] = rewriteIndices(it)
	}
	return out
}
