// Released under an MIT license. See LICENSE.

package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/quill/internal/type/fault"
)

type handle struct{ name string }

func TestAccessorsCheckTags(t *testing.T) {
	_, err := Str("x").AsNum()
	require.True(t, fault.Is(err, fault.TypeMismatch))

	_, err = Num(1).AsList()
	require.True(t, fault.Is(err, fault.TypeMismatch))

	_, err = NewHash().AsHandle(Process)
	require.True(t, fault.Is(err, fault.TypeMismatch))

	n, err := Num(2.5).AsNum()
	require.NoError(t, err)
	require.Equal(t, 2.5, n)

	_, err = Num(2.5).AsInt()
	require.True(t, fault.Is(err, fault.OutOfBounds))

	_, err = Num(1e300).AsInt()
	require.True(t, fault.Is(err, fault.OutOfBounds))
}

func TestNewRejectsWrongPayload(t *testing.T) {
	_, err := New(Number, "1")
	require.True(t, fault.Is(err, fault.TypeMismatch))

	_, err = New(Process, nil)
	require.Error(t, err)

	v, err := New(String, "ok")
	require.NoError(t, err)
	require.Equal(t, String, v.Tag())
}

func TestEqual(t *testing.T) {
	a := NewArray(Int(1), Str("two"), NewArray(Boolean(true)))
	b := NewArray(Int(1), Str("two"), NewArray(Boolean(true)))

	require.True(t, Equal(a, b))
	require.False(t, Equal(a, NewArray(Int(1))))
	require.False(t, Equal(Int(1), Str("1")))
	require.True(t, Equal(Nil, Nil))

	h1, h2 := NewHash(), NewHash()
	m1, _ := h1.AsHash()
	m2, _ := h2.AsHash()
	m1["k"] = Int(1)
	m2["k"] = Int(1)
	require.True(t, Equal(h1, h2))

	m2["k"] = Int(2)
	require.False(t, Equal(h1, h2))

	p := &handle{"p"}
	require.True(t, Equal(Handle(Process, p), Handle(Process, p)))
	require.False(t, Equal(Handle(Process, p), Handle(Process, &handle{"p"})))
	require.False(t, Equal(Handle(Process, p), Handle(Thread, p)))
}

func TestHostRoundTrip(t *testing.T) {
	h := map[string]any{
		"a": []any{1.0, "x", nil, true},
		"b": map[string]any{"c": 3.0},
	}

	v, err := Of(h)
	require.NoError(t, err)
	require.Equal(t, Hash, v.Tag())

	got, err := Host(v)
	require.NoError(t, err)

	if diff := cmp.Diff(h, got); diff != "" {
		t.Fatalf("host form mismatch (-want +got):\n%s", diff)
	}

	_, err = Of(struct{}{})
	require.True(t, fault.Is(err, fault.TypeMismatch))
}

func TestCycles(t *testing.T) {
	a, b := NewArray(Int(1)), NewArray(Int(1))
	la, _ := a.AsList()
	lb, _ := b.AsList()
	la.Append(a)
	lb.Append(b)

	require.True(t, Equal(a, b))
	require.False(t, Equal(a, NewArray(Int(1), NewArray(Int(1)))))

	_, err := Host(a)
	require.True(t, fault.Is(err, fault.TypeMismatch))

	h := NewHash()
	m, _ := h.AsHash()
	m["self"] = h
	require.True(t, Equal(h, h))

	_, err = Host(NewArray(h))
	require.True(t, fault.Is(err, fault.TypeMismatch))

	// Shared but acyclic.
	shared := NewArray(Int(2))
	got, err := Host(NewArray(shared, shared))
	require.NoError(t, err)
	require.Equal(t, []any{[]any{2.0}, []any{2.0}}, got)
}

func TestSharedPayloads(t *testing.T) {
	a := NewArray()
	b := a

	l, err := a.AsList()
	require.NoError(t, err)
	l.Append(Int(7))

	m, err := b.AsList()
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())
}

func TestTruth(t *testing.T) {
	for _, v := range []T{Nil, Boolean(false), Int(0), Str(""), NewArray(), NewHash()} {
		require.False(t, Truth(v), v.String())
	}

	for _, v := range []T{Boolean(true), Int(3), Str("x"), NewArray(Nil), Handle(Stream, &handle{})} {
		require.True(t, Truth(v), v.String())
	}
}

func TestString(t *testing.T) {
	v := NewArray(Int(1), Num(1.5), Str("s"), Nil)
	require.Equal(t, `[1, 1.5, "s", null]`, v.String())

	tag, ok := Lookup("Readline")
	require.True(t, ok)
	require.Equal(t, Readline, tag)
	require.True(t, tag.Handle())
}
