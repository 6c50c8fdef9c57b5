// Released under an MIT license. See LICENSE.

package scope

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/quill/internal/type/value"
)

func TestLookupInnermostFirst(t *testing.T) {
	g := value.Map{"x": value.Int(1), "y": value.Int(2)}
	l := value.Map{"x": value.Int(3)}

	s := New(g, l)

	v, ok := s.Lookup("x")
	require.True(t, ok)
	require.True(t, value.Equal(value.Int(3), v))

	v, ok = s.Lookup("y")
	require.True(t, ok)
	require.True(t, value.Equal(value.Int(2), v))

	_, ok = s.Lookup("z")
	require.False(t, ok)
}

func TestSetUpdatesExistingOrTarget(t *testing.T) {
	g := value.Map{"x": value.Int(1)}
	l := value.Map{}
	s := New(g, l)

	s.Set("x", value.Int(5), l)
	require.True(t, value.Equal(value.Int(5), g["x"]))
	require.NotContains(t, l, "x")

	s.Set("fresh", value.Int(6), l)
	require.Contains(t, l, "fresh")
	require.NotContains(t, g, "fresh")
}

func TestPushDoesNotModify(t *testing.T) {
	g := value.Map{}
	s := New(g)
	p := s.Push(value.Map{"k": value.Nil})

	require.Equal(t, 1, s.Depth())
	require.Equal(t, 2, p.Depth())

	_, ok := s.Lookup("k")
	require.False(t, ok)

	// Layers are shared.
	g["shared"] = value.Boolean(true)
	_, ok = p.Lookup("shared")
	require.True(t, ok)
}
