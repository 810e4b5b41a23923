package graph

import "fmt"

// UnknownOperation is raised when a query traverses a preds set referencing
// a hash with no stored Operation — the graph is incomplete.
type UnknownOperation struct {
	Hash uint64
}

func (e *UnknownOperation) Error() string {
	return fmt.Sprintf("graph: no operation stored for hash %d", e.Hash)
}

// CycleError is raised when the requested graph (or its target subgraph)
// contains a cycle. Residual carries the unresolved hashes: from the
// topological sort, every hash that never reached zero in-degree; from a
// subgraph walk, the single hash that was reached again while still on the
// current path.
type CycleError struct {
	Residual []uint64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("graph: cycle detected among %d operation(s)", len(e.Residual))
}
