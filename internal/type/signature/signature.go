// Released under an MIT license. See LICENSE.

// Package signature provides the parameter declarations used to bind
// arguments to native operations and closures.
package signature

import (
	"errors"
	"fmt"
	"strings"

	"github.com/michaelmacinnis/quill/internal/type/value"
)

// Kind is how a parameter receives its argument.
type Kind uint8

// Parameter kinds.
const (
	Positional Kind = iota
	RestPositional
	Named
)

// String returns the name used for a kind at the language level.
func (k Kind) String() string {
	switch k {
	case Positional:
		return "arg_pos"
	case RestPositional:
		return "arg_rest_pos"
	case Named:
		return "arg_nam"
	}

	return "arg_unknown"
}

// Constraint is a required value tag or Any.
type Constraint struct {
	tag value.Tag
	any bool
}

// Any accepts a value with any tag.
var Any = Constraint{any: true} //nolint:gochecknoglobals

// Is constrains a parameter to values tagged t.
func Is(t value.Tag) Constraint {
	return Constraint{tag: t}
}

// Accepts returns true if v satisfies the constraint c.
func (c Constraint) Accepts(v value.T) bool {
	return c.any || v.Tag() == c.tag
}

// IsAny returns true if c accepts every value.
func (c Constraint) IsAny() bool {
	return c.any
}

// String returns the tag name, or "any".
func (c Constraint) String() string {
	if c.any {
		return "any"
	}

	return c.tag.String()
}

// Tag returns the tag required by c. Only meaningful when !c.IsAny().
func (c Constraint) Tag() value.Tag {
	return c.tag
}

// Param is a single parameter declaration.
type Param struct {
	Name       string
	Kind       Kind
	Constraint Constraint
}

// T (signature) is an immutable, ordered sequence of parameters.
type T struct {
	params []Param
}

type signature = T

// ErrRestNotLast is returned when a rest parameter is not the last one.
var ErrRestNotLast = errors.New("rest parameter must be last")

// Builder accumulates parameters in call order.
type Builder struct {
	params []Param
	err    error
	rest   bool
}

// New creates a builder.
func New() *Builder {
	return &Builder{}
}

// Positional adds a positional parameter.
func (b *Builder) Positional(name string, c Constraint) *Builder {
	return b.add(Param{Name: name, Kind: Positional, Constraint: c})
}

// Rest adds a parameter that absorbs all remaining positional arguments.
func (b *Builder) Rest(name string) *Builder {
	return b.add(Param{Name: name, Kind: RestPositional, Constraint: Any})
}

// Named adds a parameter bound by key from the caller's named arguments.
func (b *Builder) Named(name string, c Constraint) *Builder {
	return b.add(Param{Name: name, Kind: Named, Constraint: c})
}

// Build returns the accumulated signature.
func (b *Builder) Build() (T, error) {
	if b.err != nil {
		return T{}, b.err
	}

	params := make([]Param, len(b.params))
	copy(params, b.params)

	return T{params: params}, nil
}

// MustBuild is like Build but panics on error. For signatures written as
// literals at registration time.
func (b *Builder) MustBuild() T {
	s, err := b.Build()
	if err != nil {
		panic(err.Error())
	}

	return s
}

func (b *Builder) add(p Param) *Builder {
	if b.rest {
		b.err = ErrRestNotLast
	}

	if p.Kind == RestPositional {
		b.rest = true
	}

	b.params = append(b.params, p)

	return b
}

// Of builds an all-positional signature from name, constraint pairs.
// A constraint may be a value.Tag or a Constraint. Malformed pairs panic.
func Of(pairs ...any) T {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("signature.Of: %v has no constraint", pairs[len(pairs)-1]))
	}

	b := New()

	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("signature.Of: bad name %v", pairs[i]))
		}

		switch c := pairs[i+1].(type) {
		case value.Tag:
			b.Positional(name, Is(c))
		case Constraint:
			b.Positional(name, c)
		default:
			panic("signature.Of: bad constraint for " + name)
		}
	}

	return b.MustBuild()
}

// Params returns a copy of the parameters of s.
func (s signature) Params() []Param {
	params := make([]Param, len(s.params))
	copy(params, s.params)

	return params
}

// Strictness is the number of parameters with a non-Any constraint.
func (s signature) Strictness() int {
	n := 0

	for _, p := range s.params {
		if !p.Constraint.IsAny() {
			n++
		}
	}

	return n
}

// Bind matches positional and named arguments against s. On success it
// returns a fresh mapping from parameter name to bound value.
func (s signature) Bind(positional []value.T, named value.Map) (value.Map, bool) {
	bound := make(value.Map, len(s.params))
	used := 0
	i := 0

	for _, p := range s.params {
		switch p.Kind {
		case Positional:
			if i >= len(positional) || !p.Constraint.Accepts(positional[i]) {
				return nil, false
			}

			bound[p.Name] = positional[i]
			i++
		case RestPositional:
			bound[p.Name] = value.NewArray(positional[i:]...)
			i = len(positional)
		case Named:
			v, ok := named[p.Name]
			if !ok || !p.Constraint.Accepts(v) {
				return nil, false
			}

			bound[p.Name] = v
			used++
		}
	}

	if i != len(positional) || used != len(named) {
		return nil, false
	}

	return bound, true
}

// String renders s as a parameter list, for diagnostics.
func (s signature) String() string {
	parts := make([]string, len(s.params))

	for i, p := range s.params {
		switch p.Kind {
		case RestPositional:
			parts[i] = "*" + p.Name
		case Named:
			parts[i] = p.Name + ": " + p.Constraint.String()
		default:
			parts[i] = p.Name + " " + p.Constraint.String()
		}
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Describe returns the tags of positional and named arguments, for
// diagnostics when nothing binds.
func Describe(positional []value.T, named value.Map) string {
	parts := make([]string, 0, len(positional)+len(named))

	for _, v := range positional {
		parts = append(parts, v.Tag().String())
	}

	for _, k := range named.Keys() {
		parts = append(parts, k+": "+named[k].Tag().String())
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
