// Released under an MIT license. See LICENSE.

package signature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/quill/internal/type/value"
)

func TestBuilderRejectsRestNotLast(t *testing.T) {
	_, err := New().Rest("args").Positional("x", Any).Build()
	require.ErrorIs(t, err, ErrRestNotLast)

	_, err = New().Rest("a").Rest("b").Build()
	require.ErrorIs(t, err, ErrRestNotLast)

	s, err := New().Positional("x", Is(value.Number)).Rest("more").Build()
	require.NoError(t, err)
	require.Len(t, s.Params(), 2)
}

func TestSignatureIsImmutable(t *testing.T) {
	b := New().Positional("x", Any)
	s := b.MustBuild()

	b.Positional("y", Any)

	require.Len(t, s.Params(), 1)

	p := s.Params()
	p[0].Name = "changed"
	require.Equal(t, "x", s.Params()[0].Name)
}

func TestOfRejectsMalformedPairs(t *testing.T) {
	require.Panics(t, func() { Of("a", value.Number, "b") })
	require.Panics(t, func() { Of(1, value.Number) })
	require.Panics(t, func() { Of("a", "Number") })

	require.NotPanics(t, func() { Of() })
	require.Len(t, Of("a", value.Number, "b", Any).Params(), 2)
}

func TestBindPositional(t *testing.T) {
	s := Of("a", value.Number, "b", Any)

	bound, ok := s.Bind([]value.T{value.Int(1), value.Str("x")}, nil)
	require.True(t, ok)
	require.True(t, value.Equal(value.Int(1), bound["a"]))
	require.True(t, value.Equal(value.Str("x"), bound["b"]))

	_, ok = s.Bind([]value.T{value.Str("1"), value.Str("x")}, nil)
	require.False(t, ok, "constraint violated")

	_, ok = s.Bind([]value.T{value.Int(1)}, nil)
	require.False(t, ok, "missing argument")

	_, ok = s.Bind([]value.T{value.Int(1), value.Nil, value.Nil}, nil)
	require.False(t, ok, "surplus argument")
}

func TestBindRestAbsorbsRemainder(t *testing.T) {
	s := New().Positional("cmd", Is(value.String)).Rest("args").MustBuild()

	bound, ok := s.Bind([]value.T{value.Str("echo")}, nil)
	require.True(t, ok)

	l, err := bound["args"].AsList()
	require.NoError(t, err)
	require.Equal(t, 0, l.Len())

	bound, ok = s.Bind([]value.T{value.Str("echo"), value.Str("a"), value.Int(2)}, nil)
	require.True(t, ok)

	l, err = bound["args"].AsList()
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	require.True(t, value.Equal(value.Int(2), l.Items[1]))
}

func TestBindNamed(t *testing.T) {
	s := New().Positional("x", Any).Named("sep", Is(value.String)).MustBuild()

	bound, ok := s.Bind([]value.T{value.Int(1)}, value.Map{"sep": value.Str(",")})
	require.True(t, ok)
	require.True(t, value.Equal(value.Str(","), bound["sep"]))

	_, ok = s.Bind([]value.T{value.Int(1)}, nil)
	require.False(t, ok, "named argument missing")

	_, ok = s.Bind([]value.T{value.Int(1)}, value.Map{"sep": value.Int(1)})
	require.False(t, ok, "named argument of the wrong type")

	_, ok = s.Bind([]value.T{value.Int(1)}, value.Map{"sep": value.Str(","), "other": value.Nil})
	require.False(t, ok, "unexpected named argument")
}

func TestStrictness(t *testing.T) {
	require.Equal(t, 0, Of("x", Any).Strictness())
	require.Equal(t, 2, Of("a", value.Array, "i", value.Number, "v", Any).Strictness())
	require.Equal(t, 0, New().Rest("args").MustBuild().Strictness())
}

func TestString(t *testing.T) {
	s := New().Positional("a", Is(value.Number)).Named("k", Any).Rest("r").MustBuild()
	require.Equal(t, "(a Number, k: any, *r)", s.String())

	d := Describe([]value.T{value.Int(1)}, value.Map{"k": value.Nil})
	require.Equal(t, "(Number, k: Null)", d)
}
