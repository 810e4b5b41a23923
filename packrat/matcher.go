// Package packrat implements the parser core, the parse-tree trimmer, and
// the error reporter: the packrat matcher produces an internal parse tree,
// the trimmer collapses it into the user-facing AST, and the reporter turns
// the furthest-reached extent of a failed parse into a framed,
// human-readable message.
package packrat

import (
	"unicode/utf8"

	"github.com/dekarrin/pegflow/grammar"
)

// cacheEntry is one memoized (rule, offset) result.
type cacheEntry struct {
	tree    *ptree
	matched bool
}

// machine runs a single top-level parse over fixed text against a fixed
// grammar. It is single-use: construct one per call to Parser.Parse so the
// per-rule memo tables and extent tracker start clean, in keeping with a
// single-owner, no-concurrent-reuse resource model.
type machine struct {
	g    *grammar.Grammar
	text string

	memo map[string]map[int]cacheEntry

	// extent is the furthest offset any operator has successfully consumed
	// to, anywhere in the attempted parse.
	extent int
}

func newMachine(g *grammar.Grammar, text string) *machine {
	return &machine{
		g:    g,
		text: text,
		memo: make(map[string]map[int]cacheEntry),
	}
}

// matchStart runs the named start rule at offset 0 and returns its internal
// parse tree, or ok=false if it failed to match.
func (m *machine) matchStart(start string) (*ptree, bool) {
	return m.matchRule(start, 0)
}

// matchRule evaluates the named rule at offset, memoized on (name, offset).
func (m *machine) matchRule(name string, offset int) (*ptree, bool) {
	byOffset, ok := m.memo[name]
	if !ok {
		byOffset = make(map[int]cacheEntry)
		m.memo[name] = byOffset
	}
	if entry, cached := byOffset[offset]; cached {
		return entry.tree, entry.matched
	}

	body, ok := m.g.Rule(name)
	if !ok {
		// the grammar was validated at load time; an unresolved reference
		// here would be a loader bug, not a parse-time condition.
		panic("packrat: unresolved rule reference " + name)
	}

	tree, matched := m.eval(body, offset)
	byOffset[offset] = cacheEntry{tree: tree, matched: matched}
	return tree, matched
}

// eval dispatches on the parse-expression operator and updates the extent
// tracker on success.
func (m *machine) eval(e grammar.Expr, offset int) (*ptree, bool) {
	tree, ok := m.evalRaw(e, offset)
	if ok {
		m.updateExtent(tree.stop)
	}
	return tree, ok
}

func (m *machine) updateExtent(stop int) {
	if stop > m.extent {
		m.extent = stop
	}
}

func (m *machine) evalRaw(e grammar.Expr, offset int) (*ptree, bool) {
	switch v := e.(type) {
	case grammar.Dot:
		return m.evalDot(offset)
	case grammar.Str:
		return m.evalStr(v, offset)
	case grammar.CharClass:
		return m.evalCharClass(v, offset)
	case grammar.Seq:
		return m.evalSeq(v, offset)
	case grammar.Choice:
		return m.evalChoice(v, offset)
	case grammar.ZeroOrOne:
		return m.evalZeroOrOne(v, offset)
	case grammar.ZeroOrMore:
		return m.evalZeroOrMore(v, offset)
	case grammar.OneOrMore:
		return m.evalOneOrMore(v, offset)
	case grammar.Lookahead:
		return m.evalLookahead(v, offset)
	case grammar.NotLookahead:
		return m.evalNotLookahead(v, offset)
	case grammar.Argument:
		return m.evalArgument(v, offset)
	case grammar.NodeExpr:
		return m.evalNode(v, offset)
	case grammar.Label:
		return m.evalLabel(v, offset)
	default:
		// grammar.Index is resolved away during loading; reaching one here
		// would be a loader bug.
		panic("packrat: unresolved parse-expression operator")
	}
}

func (m *machine) evalDot(offset int) (*ptree, bool) {
	if offset >= len(m.text) {
		return nil, false
	}
	_, size := utf8.DecodeRuneInString(m.text[offset:])
	stop := offset + size
	return &ptree{op: opStr, str: m.text[offset:stop], start: offset, stop: stop}, true
}

func (m *machine) evalStr(v grammar.Str, offset int) (*ptree, bool) {
	lit := v.Lit
	end := offset + len(lit)
	if end > len(m.text) || m.text[offset:end] != lit {
		return nil, false
	}
	return &ptree{op: opStr, str: lit, start: offset, stop: end}, true
}

func (m *machine) evalCharClass(v grammar.CharClass, offset int) (*ptree, bool) {
	if offset >= len(m.text) {
		return nil, false
	}
	r, size := utf8.DecodeRuneInString(m.text[offset:])
	for _, rg := range v.Ranges {
		if rg.Contains(r) {
			stop := offset + size
			return &ptree{op: opStr, str: m.text[offset:stop], start: offset, stop: stop}, true
		}
	}
	return nil, false
}

func (m *machine) evalSeq(v grammar.Seq, offset int) (*ptree, bool) {
	children := make([]*ptree, 0, len(v.Items))
	cur := offset
	for _, item := range v.Items {
		child, ok := m.eval(item, cur)
		if !ok {
			return nil, false
		}
		children = append(children, child)
		cur = child.stop
	}
	return &ptree{op: opSeq, children: children, start: offset, stop: cur}, true
}

func (m *machine) evalChoice(v grammar.Choice, offset int) (*ptree, bool) {
	for _, item := range v.Items {
		if child, ok := m.eval(item, offset); ok {
			return child, true
		}
	}
	return nil, false
}

func (m *machine) evalZeroOrOne(v grammar.ZeroOrOne, offset int) (*ptree, bool) {
	if child, ok := m.eval(v.Item, offset); ok {
		return &ptree{op: opSeq, children: []*ptree{child}, start: offset, stop: child.stop}, true
	}
	return &ptree{op: opSeq, start: offset, stop: offset}, true
}

func (m *machine) evalZeroOrMore(v grammar.ZeroOrMore, offset int) (*ptree, bool) {
	var children []*ptree
	cur := offset
	for {
		child, ok := m.eval(v.Item, cur)
		if !ok {
			break
		}
		children = append(children, child)
		if child.stop == cur {
			// zero-width match: stop after one iteration or this loops
			// forever without ever consuming input.
			break
		}
		cur = child.stop
	}
	return &ptree{op: opSeq, children: children, start: offset, stop: cur}, true
}

func (m *machine) evalOneOrMore(v grammar.OneOrMore, offset int) (*ptree, bool) {
	first, ok := m.eval(v.Item, offset)
	if !ok {
		return nil, false
	}
	children := []*ptree{first}
	cur := first.stop
	if first.stop > offset {
		for {
			child, ok := m.eval(v.Item, cur)
			if !ok {
				break
			}
			children = append(children, child)
			if child.stop == cur {
				break
			}
			cur = child.stop
		}
	}
	return &ptree{op: opSeq, children: children, start: offset, stop: cur}, true
}

func (m *machine) evalLookahead(v grammar.Lookahead, offset int) (*ptree, bool) {
	if _, ok := m.eval(v.Item, offset); ok {
		return &ptree{op: opSeq, start: offset, stop: offset}, true
	}
	return nil, false
}

func (m *machine) evalNotLookahead(v grammar.NotLookahead, offset int) (*ptree, bool) {
	if _, ok := m.eval(v.Item, offset); ok {
		return nil, false
	}
	return &ptree{op: opSeq, start: offset, stop: offset}, true
}

func (m *machine) evalArgument(v grammar.Argument, offset int) (*ptree, bool) {
	inner, ok := m.eval(v.Item, offset)
	if !ok {
		return nil, false
	}
	return &ptree{op: opArg, children: []*ptree{inner}, start: offset, stop: inner.stop}, true
}

func (m *machine) evalNode(v grammar.NodeExpr, offset int) (*ptree, bool) {
	inner, ok := m.eval(v.Item, offset)
	if !ok {
		return nil, false
	}
	return &ptree{op: opNodeWrap, name: v.Name, children: []*ptree{inner}, start: offset, stop: inner.stop}, true
}

func (m *machine) evalLabel(v grammar.Label, offset int) (*ptree, bool) {
	inner, ok := m.matchRule(v.Name, offset)
	if !ok {
		return nil, false
	}
	return &ptree{op: opLabel, name: v.Name, children: []*ptree{inner}, start: offset, stop: inner.stop}, true
}
