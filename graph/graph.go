// Package graph implements the dataflow computation graph: a
// content-addressed DAG of operations, deduplicated by value, with a target
// set and the ordered execution plan (sort.go) that respects dependency and
// target priority. Node identity is the operation's content hash rather
// than a caller-supplied key, which is what makes deduplication automatic.
package graph

import (
	"hash/fnv"

	"github.com/dekarrin/pegflow/internal/setutil"
	"github.com/dekarrin/rezi"
)

// ArgKind distinguishes the two shapes an Operation argument can take.
type ArgKind int

const (
	// ArgString is a literal string argument.
	ArgString ArgKind = iota
	// ArgHash is a reference to another operation, by its content hash.
	ArgHash
)

// Arg is one argument of an Operation: either a literal string or a
// reference to a prior operation's hash.
type Arg struct {
	Kind ArgKind
	Str  string
	Hash uint64
}

// StringArg returns a literal-string Arg.
func StringArg(s string) Arg { return Arg{Kind: ArgString, Str: s} }

// HashArg returns an Arg referencing another operation's hash.
func HashArg(h uint64) Arg { return Arg{Kind: ArgHash, Hash: h} }

// Operation is a content-addressed tuple (opcode, arg1, arg2, ...). Two
// Operations with equal Opcode and equal Args are the same operation: adding
// either one to a Graph fuses into a single stored entry.
type Operation struct {
	Opcode string
	Args   []Arg
}

// Hash returns the 64-bit content-address of op, computed over a canonical
// binary encoding of its fields so that equal tuples always hash equal.
func (op Operation) Hash() uint64 {
	enc := rezi.EncBinary(&op)
	h := fnv.New64a()
	h.Write(enc)
	return h.Sum64()
}

// MarshalBinary gives Operation a canonical, versioned binary form via rezi,
// the same encoding Hash uses for content-addressing.
func (op Operation) MarshalBinary() ([]byte, error) {
	return rezi.EncBinary(&op), nil
}

// UnmarshalBinary is the inverse of MarshalBinary.
func (op *Operation) UnmarshalBinary(data []byte) error {
	_, err := rezi.DecBinary(data, op)
	return err
}

// Graph is a content-addressed, acyclic dependency graph of Operations plus
// a set of target hashes that must be computed. A Graph is not safe for
// concurrent mutation by more than one owner.
type Graph struct {
	ops     map[uint64]Operation
	preds   map[uint64]setutil.Set[uint64]
	targets setutil.Set[uint64]

	// targetOrder records the order targets were first added in, since
	// the priority tie-break keys off insertion order, not the arbitrary
	// order a Set iterates in.
	targetOrder []uint64

	// cached memoized views, invalidated by every mutating call.
	subgraphCache map[uint64]setutil.Set[uint64]
	orderCache    []Operation
	orderErr      error
	orderValid    bool
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		ops:     make(map[uint64]Operation),
		preds:   make(map[uint64]setutil.Set[uint64]),
		targets: setutil.New[uint64](),
	}
}

// Add stores op, deduplicating by content hash, and records deps (together
// with any ArgHash arguments op itself carries) as its predecessors. It
// returns op's hash. Calling Add again with an operation that hashes the
// same as one already stored does not create a second entry; the union of
// predecessors across every call is kept.
func (g *Graph) Add(op Operation, deps ...uint64) uint64 {
	h := op.Hash()
	if _, exists := g.ops[h]; !exists {
		g.ops[h] = op
	}

	predSet, ok := g.preds[h]
	if !ok {
		predSet = setutil.New[uint64]()
		g.preds[h] = predSet
	}
	for _, arg := range op.Args {
		if arg.Kind == ArgHash {
			predSet.Add(arg.Hash)
		}
	}
	for _, d := range deps {
		predSet.Add(d)
	}

	g.invalidate()
	return h
}

// AddTarget marks every hash in hashes as a required target.
func (g *Graph) AddTarget(hashes ...uint64) {
	for _, h := range hashes {
		if !g.targets.Has(h) {
			g.targets.Add(h)
			g.targetOrder = append(g.targetOrder, h)
		}
	}
	g.invalidate()
}

// Targets returns the current target set, in no particular order.
func (g *Graph) Targets() []uint64 {
	return g.targets.Elements()
}

// TargetsInOrder returns the target hashes in the order they were first
// added.
func (g *Graph) TargetsInOrder() []uint64 {
	out := make([]uint64, len(g.targetOrder))
	copy(out, g.targetOrder)
	return out
}

func (g *Graph) invalidate() {
	g.subgraphCache = nil
	g.orderCache = nil
	g.orderErr = nil
	g.orderValid = false
}

// preceding returns the direct predecessors of h, or an empty set if h has
// none recorded.
func (g *Graph) preceding(h uint64) setutil.Set[uint64] {
	if s, ok := g.preds[h]; ok {
		return s
	}
	return setutil.New[uint64]()
}
