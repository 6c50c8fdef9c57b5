// Released under an MIT license. See LICENSE.

// Package lambda provides quill's closure type.
package lambda

import (
	"github.com/michaelmacinnis/quill/internal/engine/code"
	"github.com/michaelmacinnis/quill/internal/type/scope"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

// T (lambda) is an immutable closure: captured scopes, parameters, and an
// entry point. Assignments to unbound names made by the closure's code land
// in the target layer; with no target they land in the fresh call layer.
type T struct {
	entry  code.Pointer
	name   string
	params signature.T
	scopes *scope.T
	target int
}

type lambda = T

// New creates a closure whose unbound assignments land in its call layer.
func New(name string, params signature.T, scopes *scope.T, entry code.Pointer) *T {
	return &lambda{
		entry:  entry,
		name:   name,
		params: params,
		scopes: scopes,
		target: -1,
	}
}

// Loaded creates a closure for loaded code. Unbound assignments land in
// the innermost captured layer so that they are visible to the loader.
func Loaded(name string, scopes *scope.T, entry code.Pointer) *T {
	l := New(name, signature.New().MustBuild(), scopes, entry)
	l.target = scopes.Depth() - 1

	return l
}

// Entry returns the code pointer for the body of l.
func (l *lambda) Entry() code.Pointer {
	return l.entry
}

// Name returns the name of l.
func (l *lambda) Name() string {
	return l.name
}

// Params returns the parameter signature of l.
func (l *lambda) Params() signature.T {
	return l.params
}

// Scopes returns the captured scope chain of l.
func (l *lambda) Scopes() *scope.T {
	return l.scopes
}

// Frame creates the scope chain and assignment target for a call to l
// with the parameter bindings bound.
func (l *lambda) Frame(bound value.Map) (*scope.T, value.Map) {
	if bound == nil {
		bound = value.Map{}
	}

	chain := l.scopes.Push(bound)
	if l.target < 0 {
		return chain, bound
	}

	return chain, chain.Layer(l.target)
}

// String returns a short description of l.
func (l *lambda) String() string {
	return "<Lambda " + l.name + ">"
}

// WithLocals returns a copy of l with locals as an additional innermost
// captured layer. The copy's unbound assignments land in locals.
func (l *lambda) WithLocals(locals value.Map) *T {
	c := *l

	c.name = l.name + "_with_locals"
	c.scopes = l.scopes.Push(locals)
	c.target = c.scopes.Depth() - 1

	return &c
}

// Value wraps l as a Lambda value.
func (l *lambda) Value() value.T {
	return value.Handle(value.Lambda, l)
}

// From returns the closure held by the Lambda value v.
func From(v value.T) (*T, error) {
	h, err := v.AsHandle(value.Lambda)
	if err != nil {
		return nil, err
	}

	return h.(*T), nil
}
