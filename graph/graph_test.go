package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_Graph_uniqueness covers property 7: two Add calls with identical
// tuples return the same hash and do not duplicate the operation.
func Test_Graph_uniqueness(t *testing.T) {
	assert := assert.New(t)

	g := New()
	h1 := g.Add(Operation{Opcode: "int", Args: []Arg{StringArg("1")}})
	h2 := g.Add(Operation{Opcode: "int", Args: []Arg{StringArg("1")}})

	assert.Equal(h1, h2)
	assert.Equal(1, len(g.ops))
}

// Test_Graph_linearChain checks a simple two-input add: both operands
// must precede the operation that consumes them.
func Test_Graph_linearChain(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := New()
	h1 := g.Add(Operation{Opcode: "int", Args: []Arg{StringArg("1")}})
	h2 := g.Add(Operation{Opcode: "int", Args: []Arg{StringArg("2")}})
	h3 := g.Add(Operation{Opcode: "add", Args: []Arg{HashArg(h1), HashArg(h2)}})
	g.AddTarget(h3)

	order, err := g.Order()
	require.NoError(err)
	require.Len(order, 3)

	pos := indexOf(order, g, h3)
	assert.Equal(2, pos, "h3 should be last")
	assert.Less(indexOf(order, g, h1), pos)
	assert.Less(indexOf(order, g, h2), pos)
}

// Test_Graph_order_respectsDeps covers property 8: for every dependency
// edge u -> v, u precedes v in the returned order.
func Test_Graph_order_respectsDeps(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := New()
	a := g.Add(Operation{Opcode: "int", Args: []Arg{StringArg("1")}})
	b := g.Add(Operation{Opcode: "neg", Args: []Arg{HashArg(a)}})
	c := g.Add(Operation{Opcode: "neg", Args: []Arg{HashArg(b)}})
	g.AddTarget(c)

	order, err := g.Order()
	require.NoError(err)

	assert.Less(indexOf(order, g, a), indexOf(order, g, b))
	assert.Less(indexOf(order, g, b), indexOf(order, g, c))
}

// Test_Graph_target_reachability covers property 9: every hash reachable
// from any target appears in the order, and unrelated ops are excluded.
func Test_Graph_target_reachability(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := New()
	a := g.Add(Operation{Opcode: "int", Args: []Arg{StringArg("1")}})
	_ = g.Add(Operation{Opcode: "int", Args: []Arg{StringArg("99")}}) // unrelated, never targeted
	g.AddTarget(a)

	order, err := g.Order()
	require.NoError(err)
	require.Len(order, 1)
	assert.Equal("int", order[0].Opcode)
	assert.Equal(StringArg("1"), order[0].Args[0])
}

// Test_Graph_cycle covers property 10: a back edge creating a cycle makes
// Order raise *CycleError.
func Test_Graph_cycle(t *testing.T) {
	require := require.New(t)

	g := New()
	a := g.Add(Operation{Opcode: "a"})
	b := g.Add(Operation{Opcode: "b"}, a)
	// manually close the loop: make a depend on b too, by re-adding a with
	// b as an extra dependency (Add unions deps across calls on the same
	// content hash).
	g.Add(Operation{Opcode: "a"}, b)
	g.AddTarget(b)

	_, err := g.Order()
	require.Error(err)

	var cerr *CycleError
	require.ErrorAs(err, &cerr)
}

// Test_Graph_priorityTieBreak covers property 11: targets T1, T2 added in
// that order share dependency D; D must come before any dependency unique
// to T2.
func Test_Graph_priorityTieBreak(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := New()
	d := g.Add(Operation{Opcode: "shared"})
	t1 := g.Add(Operation{Opcode: "t1"}, d)
	onlyT2 := g.Add(Operation{Opcode: "onlyT2"})
	t2 := g.Add(Operation{Opcode: "t2"}, d, onlyT2)

	g.AddTarget(t1, t2)

	order, err := g.Order()
	require.NoError(err)

	assert.Less(indexOf(order, g, d), indexOf(order, g, onlyT2))
}

// Test_Graph_effectOrdering checks an explicit effect-ordering edge: p1
// and p2 are both targeted Print operations where p2 additionally depends
// on p1; p1 must come strictly before p2.
func Test_Graph_effectOrdering(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := New()
	x := g.Add(Operation{Opcode: "var", Args: []Arg{StringArg("x")}})
	y := g.Add(Operation{Opcode: "var", Args: []Arg{StringArg("y")}})
	p1 := g.Add(Operation{Opcode: "Print", Args: []Arg{HashArg(x)}})
	p2 := g.Add(Operation{Opcode: "Print", Args: []Arg{HashArg(y)}}, p1)

	g.AddTarget(p1, p2)

	order, err := g.Order()
	require.NoError(err)

	assert.Less(indexOf(order, g, p1), indexOf(order, g, p2))
}

func Test_Graph_UnknownOperation(t *testing.T) {
	require := require.New(t)

	g := New()
	// target a hash that was never added via Add.
	g.AddTarget(12345)

	_, err := g.Order()
	require.Error(err)

	var uerr *UnknownOperation
	require.ErrorAs(err, &uerr)
}

func indexOf(ops []Operation, g *Graph, want uint64) int {
	for i, op := range ops {
		if op.Hash() == want {
			return i
		}
	}
	return -1
}
