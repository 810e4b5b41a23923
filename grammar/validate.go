package grammar

// checkUnknownLabels implements the unknown-label validation pass: every
// Label reference found anywhere in the grammar (including the synthetic
// rules Index resolution introduced) must name a defined rule.
func checkUnknownLabels(g *Grammar) error {
	for _, name := range g.order {
		var bad string
		var found bool
		walkLabels(g.rules[name], func(ref string) {
			if found {
				return
			}
			if _, ok := g.rules[ref]; !ok {
				bad, found = ref, true
			}
		})
		if found {
			return errf(name, "references undefined rule %q", bad)
		}
	}
	return nil
}

func walkLabels(e Expr, visit func(name string)) {
	switch v := e.(type) {
	case Label:
		visit(v.Name)
	case Choice:
		for _, it := range v.Items {
			walkLabels(it, visit)
		}
	case Seq:
		for _, it := range v.Items {
			walkLabels(it, visit)
		}
	case ZeroOrOne:
		walkLabels(v.Item, visit)
	case ZeroOrMore:
		walkLabels(v.Item, visit)
	case OneOrMore:
		walkLabels(v.Item, visit)
	case Lookahead:
		walkLabels(v.Item, visit)
	case NotLookahead:
		walkLabels(v.Item, visit)
	case Argument:
		walkLabels(v.Item, visit)
	case NodeExpr:
		walkLabels(v.Item, visit)
	}
}

// computeNullable returns, for every rule, whether it can match the empty
// string — needed so the left-recursion walk knows whether to look past a
// rule reference to what follows it in a Sequence. Computed as a least
// fixed point: start with every rule non-nullable and iterate until no
// rule's nullability changes, which happens within len(rules)+1 passes.
func computeNullable(g *Grammar) map[string]bool {
	nullable := make(map[string]bool, len(g.rules))
	for i := 0; i <= len(g.rules); i++ {
		changed := false
		for _, name := range g.order {
			n := exprNullable(g.rules[name], nullable)
			if n != nullable[name] {
				nullable[name] = n
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return nullable
}

func exprNullable(e Expr, nullable map[string]bool) bool {
	switch v := e.(type) {
	case Dot:
		return false
	case Str:
		return v.Lit == ""
	case CharClass:
		return false
	case Choice:
		for _, it := range v.Items {
			if exprNullable(it, nullable) {
				return true
			}
		}
		return false
	case Seq:
		for _, it := range v.Items {
			if !exprNullable(it, nullable) {
				return false
			}
		}
		return true
	case ZeroOrOne:
		return true
	case ZeroOrMore:
		return true
	case OneOrMore:
		return exprNullable(v.Item, nullable)
	case Lookahead:
		return true
	case NotLookahead:
		return true
	case Argument:
		return exprNullable(v.Item, nullable)
	case NodeExpr:
		return exprNullable(v.Item, nullable)
	case Label:
		return nullable[v.Name]
	default:
		return false
	}
}

// leftmostRefs returns the rule names directly reachable as the leftmost
// sub-expression(s) of e: the set of rules that could be invoked at the
// very position e itself starts matching at. A
// non-empty literal, Dot, or CharClass consumes at least one character and
// so terminates the walk (no refs, and the expression is not nullable);
// an empty literal or a repetition that may match zero times lets the walk
// continue rightward through a Sequence.
func leftmostRefs(e Expr, nullable map[string]bool) []string {
	switch v := e.(type) {
	case Label:
		return []string{v.Name}
	case Choice:
		var refs []string
		for _, it := range v.Items {
			refs = append(refs, leftmostRefs(it, nullable)...)
		}
		return refs
	case Seq:
		var refs []string
		for _, it := range v.Items {
			refs = append(refs, leftmostRefs(it, nullable)...)
			if !exprNullable(it, nullable) {
				break
			}
		}
		return refs
	case ZeroOrOne:
		return leftmostRefs(v.Item, nullable)
	case ZeroOrMore:
		return leftmostRefs(v.Item, nullable)
	case OneOrMore:
		return leftmostRefs(v.Item, nullable)
	case Argument:
		return leftmostRefs(v.Item, nullable)
	case NodeExpr:
		return leftmostRefs(v.Item, nullable)
	default:
		// Dot, Str (non-empty), CharClass, Lookahead, NotLookahead: the
		// walk terminates here without propagating a reference.
		return nil
	}
}

// checkLeftRecursion implements the left-recursion validation pass: for
// every rule, a depth-first walk of leftmostRefs must never reach back to an
// ancestor on the current path. Reaching a name already on the path (even
// if not the walk's own start) is also refused: if that name is not the
// start, the report uses it directly rather than waiting for its own turn
// as a walk start, which would produce an identical diagnosis anyway.
func checkLeftRecursion(g *Grammar) error {
	nullable := computeNullable(g)

	for _, start := range g.order {
		path := map[string]bool{start: true}
		if cycle := leftRecursionWalk(g, nullable, start, path); cycle != "" {
			return errf(start, "mutual left recursion through rule %q", cycle)
		}
	}
	return nil
}

func leftRecursionWalk(g *Grammar, nullable map[string]bool, current string, path map[string]bool) string {
	body, ok := g.rules[current]
	if !ok {
		return ""
	}
	for _, ref := range leftmostRefs(body, nullable) {
		if path[ref] {
			return ref
		}
		path[ref] = true
		if cycle := leftRecursionWalk(g, nullable, ref, path); cycle != "" {
			return cycle
		}
		delete(path, ref)
	}
	return ""
}
