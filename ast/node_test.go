package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Node_Equal(t *testing.T) {
	testCases := []struct {
		name   string
		n1     *Node
		n2     *Node
		expect bool
	}{
		{
			name:   "identical leaves",
			n1:     Leaf("Value", "6"),
			n2:     Leaf("Value", "6"),
			expect: true,
		},
		{
			name:   "different kind",
			n1:     Leaf("Value", "6"),
			n2:     Leaf("Other", "6"),
			expect: false,
		},
		{
			name:   "different leaf text",
			n1:     Leaf("Value", "6"),
			n2:     Leaf("Value", "7"),
			expect: false,
		},
		{
			name:   "spans ignored",
			n1:     NewSpanned("Value", NewSpan(0, 1), LeafChild("6")),
			n2:     NewSpanned("Value", NewSpan(40, 41), LeafChild("6")),
			expect: true,
		},
		{
			name:   "nested node equality",
			n1:     New("Add", NodeChild(Leaf("Value", "1")), NodeChild(Leaf("Value", "2"))),
			n2:     New("Add", NodeChild(Leaf("Value", "1")), NodeChild(Leaf("Value", "2"))),
			expect: true,
		},
		{
			name:   "nested node inequality",
			n1:     New("Add", NodeChild(Leaf("Value", "1")), NodeChild(Leaf("Value", "2"))),
			n2:     New("Add", NodeChild(Leaf("Value", "1")), NodeChild(Leaf("Value", "3"))),
			expect: false,
		},
		{
			name:   "differing child count",
			n1:     New("Add", NodeChild(Leaf("Value", "1"))),
			n2:     New("Add", NodeChild(Leaf("Value", "1")), NodeChild(Leaf("Value", "2"))),
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.n1.Equal(tc.n2))
		})
	}
}

func Test_Node_Copy_isIndependent(t *testing.T) {
	assert := assert.New(t)

	orig := New("Add", NodeChild(Leaf("Value", "1")), NodeChild(Leaf("Value", "2")))
	cp := orig.Copy()

	assert.True(orig.Equal(cp))

	// mutating the copy's children slice must not affect the original.
	cp.Children[0] = LeafChild("mutated")
	assert.False(orig.Equal(cp))
	assert.Equal("1", orig.Children[0].Node.Children[0].Leaf)
}

func Test_Node_Strings_and_Nodes(t *testing.T) {
	assert := assert.New(t)

	n := New("Sequence", LeafChild("a"), NodeChild(Leaf("X", "b")), LeafChild("c"))

	assert.Equal([]string{"a", "c"}, n.Strings())
	assert.Len(n.Nodes(), 1)
	assert.Equal("X", n.Nodes()[0].Kind)
}
