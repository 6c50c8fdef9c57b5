// Released under an MIT license. See LICENSE.

// Package registry provides quill's type-directed multiple dispatch.
//
// A registry maps a name to an append-ordered list of overloads. Dispatch
// binds the caller's arguments against every overload's signature and picks
// the strictest match: the one with the most non-Any constraints. Ties go to
// the overload registered first. Registration order alone never decides, so
// a generic overload registered before a specific one cannot shadow it.
package registry

import (
	"sort"

	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

// Entry is a single overload.
type Entry[B any] struct {
	Body      B
	Name      string
	Signature signature.T
}

// T (registry) holds overloads of type B by name.
type T[B any] struct {
	entries map[string][]*Entry[B]
}

// New creates an empty registry.
func New[B any]() *T[B] {
	return &T[B]{entries: map[string][]*Entry[B]{}}
}

// Register appends an overload for name.
func (r *T[B]) Register(name string, s signature.T, body B) {
	r.entries[name] = append(r.entries[name], &Entry[B]{
		Body:      body,
		Name:      name,
		Signature: s,
	})
}

// Dispatch resolves name for the arguments provided. On success it returns
// the selected overload and the per-call scope binding each parameter name
// to its argument. If nothing binds it returns an ArgumentMismatch fault.
func (r *T[B]) Dispatch(name string, positional []value.T, named value.Map) (*Entry[B], value.Map, error) {
	var (
		best  *Entry[B]
		bound value.Map
	)

	strictest := -1

	for _, e := range r.entries[name] {
		m, ok := e.Signature.Bind(positional, named)
		if !ok {
			continue
		}

		if n := e.Signature.Strictness(); n > strictest {
			best, bound, strictest = e, m, n
		}
	}

	if best == nil {
		return nil, nil, fault.Newf(
			fault.ArgumentMismatch, "no overload of %s matches %s",
			name, signature.Describe(positional, named),
		)
	}

	return best, bound, nil
}

// Has returns true if at least one overload is registered for name.
func (r *T[B]) Has(name string) bool {
	return len(r.entries[name]) > 0
}

// Names returns the registered names in sorted order.
func (r *T[B]) Names() []string {
	names := make([]string, 0, len(r.entries))
	for k := range r.entries {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// Overloads returns the overloads registered for name in registration order.
func (r *T[B]) Overloads(name string) []*Entry[B] {
	es := make([]*Entry[B], len(r.entries[name]))
	copy(es, r.entries[name])

	return es
}
