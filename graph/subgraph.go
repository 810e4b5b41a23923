package graph

import "github.com/dekarrin/pegflow/internal/setutil"

// Subgraph returns every Operation transitively required to compute h,
// including h itself, as a memoized transitive closure over preds. It fails
// with *UnknownOperation if some referenced hash has no stored Operation,
// or *CycleError if following preds from h ever revisits a hash still on
// the current path.
func (g *Graph) Subgraph(h uint64) (map[uint64]Operation, error) {
	hashes, err := g.subgraphHashes(h)
	if err != nil {
		return nil, err
	}

	out := make(map[uint64]Operation, hashes.Len())
	for _, member := range hashes.Elements() {
		out[member] = g.ops[member]
	}
	return out, nil
}

// subgraphHashes is the memoized hash-only form Subgraph and the ordering
// pass in sort.go both build on.
func (g *Graph) subgraphHashes(h uint64) (setutil.Set[uint64], error) {
	if g.subgraphCache == nil {
		g.subgraphCache = make(map[uint64]setutil.Set[uint64])
	}
	if cached, ok := g.subgraphCache[h]; ok {
		return cached, nil
	}

	visited := setutil.New[uint64]()
	onPath := map[uint64]bool{}

	var walk func(cur uint64) error
	walk = func(cur uint64) error {
		if onPath[cur] {
			return &CycleError{Residual: []uint64{cur}}
		}
		if visited.Has(cur) {
			return nil
		}
		if _, ok := g.ops[cur]; !ok {
			return &UnknownOperation{Hash: cur}
		}

		onPath[cur] = true
		for _, p := range g.preceding(cur).Elements() {
			if err := walk(p); err != nil {
				return err
			}
		}
		delete(onPath, cur)

		visited.Add(cur)
		return nil
	}

	if err := walk(h); err != nil {
		return nil, err
	}

	g.subgraphCache[h] = visited
	return visited, nil
}
