// Released under an MIT license. See LICENSE.

// Package scope provides quill's lexical scope chain.
package scope

import (
	"strconv"

	"github.com/michaelmacinnis/quill/internal/type/value"
)

// T (scope) is an immutable chain of scope layers, outermost first.
// The layers themselves are shared, mutable mappings.
type T struct {
	layers []value.Map
}

type scope = T

// New creates a chain from layers, outermost first.
func New(layers ...value.Map) *T {
	s := &scope{layers: make([]value.Map, len(layers))}
	copy(s.layers, layers)

	return s
}

// Depth returns the number of layers in the chain s.
func (s *scope) Depth() int {
	if s == nil {
		return 0
	}

	return len(s.layers)
}

// Layer returns the layer at index i, counting from the outermost.
func (s *scope) Layer(i int) value.Map {
	return s.layers[i]
}

// Globals returns the outermost layer.
func (s *scope) Globals() value.Map {
	return s.layers[0]
}

// Innermost returns the innermost layer.
func (s *scope) Innermost() value.Map {
	return s.layers[len(s.layers)-1]
}

// Lookup resolves k starting from the innermost layer.
func (s *scope) Lookup(k string) (value.T, bool) {
	if s == nil {
		return value.Nil, false
	}

	for i := len(s.layers) - 1; i >= 0; i-- {
		if v, ok := s.layers[i][k]; ok {
			return v, true
		}
	}

	return value.Nil, false
}

// Set updates the innermost existing binding for k or, if there is none,
// creates one in target.
func (s *scope) Set(k string, v value.T, target value.Map) {
	for i := s.Depth() - 1; i >= 0; i-- {
		if _, ok := s.layers[i][k]; ok {
			s.layers[i][k] = v

			return
		}
	}

	target[k] = v
}

// Push returns a new chain with m as its innermost layer. The chain s is
// not modified.
func (s *scope) Push(m value.Map) *T {
	n := s.Depth()

	layers := make([]value.Map, n+1)
	if s != nil {
		copy(layers, s.layers)
	}

	layers[n] = m

	return &scope{layers: layers}
}

// String returns a short description of s.
func (s *scope) String() string {
	return "<Scopes " + strconv.Itoa(s.Depth()) + ">"
}
