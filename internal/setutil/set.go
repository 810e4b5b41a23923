// Package setutil provides a small generic container type used by the graph
// package: an unordered Set.
package setutil

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an unordered collection of distinct comparable elements.
//
// The zero value is not ready for use; create one with New or Of.
type Set[E comparable] map[E]struct{}

// New returns an empty Set.
func New[E comparable]() Set[E] {
	return make(Set[E])
}

// Of returns a Set containing the given elements.
func Of[E comparable](elems ...E) Set[E] {
	s := make(Set[E], len(elems))
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add adds element to the set. No effect if it is already present.
func (s Set[E]) Add(element E) {
	s[element] = struct{}{}
}

// AddAll adds every element of o to s.
func (s Set[E]) AddAll(o Set[E]) {
	for e := range o {
		s.Add(e)
	}
}

// Remove removes element from the set. No effect if it is not present.
func (s Set[E]) Remove(element E) {
	delete(s, element)
}

// Has returns whether element is in the set.
func (s Set[E]) Has(element E) bool {
	_, ok := s[element]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[E]) Len() int {
	return len(s)
}

// Empty returns whether the set has no elements.
func (s Set[E]) Empty() bool {
	return len(s) == 0
}

// Copy returns a shallow duplicate of s.
func (s Set[E]) Copy() Set[E] {
	newS := make(Set[E], len(s))
	newS.AddAll(s)
	return newS
}

// Union returns a new Set holding every element of s and o.
func (s Set[E]) Union(o Set[E]) Set[E] {
	newS := s.Copy()
	newS.AddAll(o)
	return newS
}

// Intersection returns a new Set holding only the elements present in both
// s and o.
func (s Set[E]) Intersection(o Set[E]) Set[E] {
	newS := New[E]()
	for e := range s {
		if o.Has(e) {
			newS.Add(e)
		}
	}
	return newS
}

// Difference returns a new Set holding the elements of s that are not in o.
func (s Set[E]) Difference(o Set[E]) Set[E] {
	newS := s.Copy()
	for e := range o {
		newS.Remove(e)
	}
	return newS
}

// DisjointWith returns whether s and o share no elements.
func (s Set[E]) DisjointWith(o Set[E]) bool {
	for e := range s {
		if o.Has(e) {
			return false
		}
	}
	return true
}

// Elements returns the elements of s in no particular order.
func (s Set[E]) Elements() []E {
	elems := make([]E, 0, len(s))
	for e := range s {
		elems = append(elems, e)
	}
	return elems
}

// String shows the contents of the set; elements are not ordered.
func (s Set[E]) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	i := 0
	for e := range s {
		sb.WriteString(fmt.Sprintf("%v", e))
		if i+1 < len(s) {
			sb.WriteString(", ")
		}
		i++
	}
	sb.WriteRune('}')
	return sb.String()
}

// StringOrdered is like String but with elements sorted by their %v
// representation, for deterministic output in tests and debug dumps.
func (s Set[E]) StringOrdered() string {
	strs := make([]string, 0, len(s))
	for e := range s {
		strs = append(strs, fmt.Sprintf("%v", e))
	}
	sort.Strings(strs)
	return "{" + strings.Join(strs, ", ") + "}"
}
