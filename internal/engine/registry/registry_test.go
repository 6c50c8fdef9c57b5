// Released under an MIT license. See LICENSE.

package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func args(vs ...value.T) []value.T {
	return vs
}

func TestSingleMatch(t *testing.T) {
	r := New[string]()
	r.Register("__add", signature.Of("a", value.Number, "b", value.Number), "num")
	r.Register("__add", signature.Of("a", value.String, "b", value.String), "str")
	r.Register("__add", signature.Of("a", value.Array, "b", value.Array), "arr")

	e, bound, err := r.Dispatch("__add", args(value.Str("a"), value.Str("b")), nil)
	require.NoError(t, err)
	require.Equal(t, "str", e.Body)
	require.True(t, value.Equal(value.Str("a"), bound["a"]))

	e, _, err = r.Dispatch("__add", args(value.NewArray(), value.NewArray()), nil)
	require.NoError(t, err)
	require.Equal(t, "arr", e.Body)
}

func TestNoMatch(t *testing.T) {
	r := New[string]()
	r.Register("__add", signature.Of("a", value.Number, "b", value.Number), "num")

	_, _, err := r.Dispatch("__add", args(value.Int(1), value.Str("b")), nil)
	require.True(t, fault.Is(err, fault.ArgumentMismatch))
	require.Contains(t, err.Error(), "__add")
	require.Contains(t, err.Error(), "(Number, String)")

	_, _, err = r.Dispatch("missing", nil, nil)
	require.True(t, fault.Is(err, fault.ArgumentMismatch))
}

func TestStrictestWinsRegardlessOfOrder(t *testing.T) {
	r := New[string]()

	// Generic first, specific second.
	r.Register("Bool", signature.Of("x", signature.Any), "any")
	r.Register("Bool", signature.Of("p", value.Process), "process")

	p := value.Handle(value.Process, &struct{}{})

	e, _, err := r.Dispatch("Bool", args(p), nil)
	require.NoError(t, err)
	require.Equal(t, "process", e.Body)

	e, _, err = r.Dispatch("Bool", args(value.Int(0)), nil)
	require.NoError(t, err)
	require.Equal(t, "any", e.Body)
}

func TestTiesBreakByRegistrationOrder(t *testing.T) {
	r := New[string]()
	r.Register("f", signature.Of("a", value.Number, "b", signature.Any), "first")
	r.Register("f", signature.Of("a", signature.Any, "b", value.Number), "second")

	e, _, err := r.Dispatch("f", args(value.Int(1), value.Int(2)), nil)
	require.NoError(t, err)
	require.Equal(t, "first", e.Body)

	e, _, err = r.Dispatch("f", args(value.Str("x"), value.Int(2)), nil)
	require.NoError(t, err)
	require.Equal(t, "second", e.Body)
}

func TestArityDistinguishesOverloads(t *testing.T) {
	r := New[string]()
	r.Register("thread", signature.Of(), "current")
	r.Register("thread", signature.Of("f", value.Lambda), "spawn")

	e, _, err := r.Dispatch("thread", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "current", e.Body)

	l := value.Handle(value.Lambda, &struct{}{})

	e, _, err = r.Dispatch("thread", args(l), nil)
	require.NoError(t, err)
	require.Equal(t, "spawn", e.Body)
}

func TestRestAndNamed(t *testing.T) {
	r := New[string]()
	r.Register("spawn", signature.New().Rest("args").MustBuild(), "spawn")
	r.Register("join", signature.New().
		Positional("a", signature.Is(value.Array)).
		Named("sep", signature.Is(value.String)).
		MustBuild(), "join")

	e, bound, err := r.Dispatch("spawn", args(value.Str("echo"), value.Str("hi")), nil)
	require.NoError(t, err)
	require.Equal(t, "spawn", e.Body)

	l, err := bound["args"].AsList()
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())

	_, _, err = r.Dispatch("join", args(value.NewArray()), nil)
	require.True(t, fault.Is(err, fault.ArgumentMismatch))

	e, _, err = r.Dispatch("join", args(value.NewArray()), value.Map{"sep": value.Str(",")})
	require.NoError(t, err)
	require.Equal(t, "join", e.Body)
}

func TestNamesAndOverloads(t *testing.T) {
	r := New[int]()
	r.Register("b", signature.Of(), 1)
	r.Register("a", signature.Of(), 2)
	r.Register("a", signature.Of("x", signature.Any), 3)

	require.Equal(t, []string{"a", "b"}, r.Names())
	require.True(t, r.Has("a"))
	require.False(t, r.Has("c"))

	os := r.Overloads("a")
	require.Len(t, os, 2)
	require.Equal(t, 2, os[0].Body)
	require.Equal(t, 3, os[1].Body)
}
