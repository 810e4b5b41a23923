// Package namespace provides a lexically-scoped stack of name bindings, for
// the translator that feeds a computation graph: the graph core itself
// never sees names, only the hashes the translator looks up here and passes
// along as operation arguments.
package namespace

// Namespace is a stack of scopes, each a name-to-value mapping. Lookup
// searches from the innermost scope outward, so an inner Define shadows an
// outer one of the same name without disturbing it.
//
// The zero value is ready for use: its outermost scope is created by the
// first Push or Define, and Depth reports 0 until then. Pop must never be
// called more times than Push.
type Namespace[V any] struct {
	scopes []map[string]V
}

// New returns a Namespace with a single open scope.
func New[V any]() *Namespace[V] {
	return &Namespace[V]{scopes: []map[string]V{make(map[string]V)}}
}

// Push opens a new innermost scope.
func (n *Namespace[V]) Push() {
	if n.scopes == nil {
		n.scopes = []map[string]V{make(map[string]V)}
	}
	n.scopes = append(n.scopes, make(map[string]V))
}

// Pop closes the innermost scope, discarding every binding defined in it.
// Panics if only the outermost scope remains.
func (n *Namespace[V]) Pop() {
	if len(n.scopes) <= 1 {
		panic("namespace: Pop called with no scope to close")
	}
	n.scopes = n.scopes[:len(n.scopes)-1]
}

// Define binds name to v in the innermost scope, shadowing any outer
// binding of the same name for as long as this scope stays open.
func (n *Namespace[V]) Define(name string, v V) {
	if n.scopes == nil {
		n.scopes = []map[string]V{make(map[string]V)}
	}
	n.scopes[len(n.scopes)-1][name] = v
}

// Lookup searches for name from the innermost scope outward, returning its
// bound value and true on the first hit, or the zero value and false if no
// open scope defines it.
func (n *Namespace[V]) Lookup(name string) (V, bool) {
	for i := len(n.scopes) - 1; i >= 0; i-- {
		if v, ok := n.scopes[i][name]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Depth reports how many scopes are currently open, including the
// outermost.
func (n *Namespace[V]) Depth() int {
	return len(n.scopes)
}
