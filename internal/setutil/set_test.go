package setutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Set_AddHasRemove(t *testing.T) {
	assert := assert.New(t)

	s := New[string]()
	assert.True(s.Empty())

	s.Add("a")
	s.Add("b")
	assert.Equal(2, s.Len())
	assert.True(s.Has("a"))
	assert.False(s.Has("c"))

	s.Remove("a")
	assert.False(s.Has("a"))
	assert.Equal(1, s.Len())
}

func Test_Set_Of(t *testing.T) {
	assert := assert.New(t)

	s := Of(1, 2, 2, 3)
	assert.Equal(3, s.Len())
	assert.True(s.Has(1))
	assert.True(s.Has(2))
	assert.True(s.Has(3))
}

func Test_Set_UnionIntersectionDifference(t *testing.T) {
	assert := assert.New(t)

	a := Of(1, 2, 3)
	b := Of(2, 3, 4)

	assert.Equal(Of(1, 2, 3, 4), a.Union(b))
	assert.Equal(Of(2, 3), a.Intersection(b))
	assert.Equal(Of(1), a.Difference(b))
}

func Test_Set_DisjointWith(t *testing.T) {
	assert := assert.New(t)

	a := Of(1, 2)
	b := Of(3, 4)
	c := Of(2, 5)

	assert.True(a.DisjointWith(b))
	assert.False(a.DisjointWith(c))
}

func Test_Set_Copy_isIndependent(t *testing.T) {
	assert := assert.New(t)

	a := Of(1, 2)
	b := a.Copy()
	b.Add(3)

	assert.False(a.Has(3))
	assert.True(b.Has(3))
}

func Test_Set_StringOrdered_isDeterministic(t *testing.T) {
	assert := assert.New(t)

	s := Of(3, 1, 2)
	assert.Equal("{1, 2, 3}", s.StringOrdered())
}
