// Released under an MIT license. See LICENSE.

package commands

import (
	"sort"

	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func listMethods() []Method {
	a := signature.Of("a", value.Array)

	return []Method{
		method("Array", signature.Of(), func(*Call) (value.T, error) {
			return value.NewArray(), nil
		}),
		method("__get_item", signature.Of("a", value.Array, "i", value.Number), getItem),
		method("__set_item", signature.Of("a", value.Array, "i", value.Number, "v", signature.Any), setItem),
		method("init", a, func(c *Call) (value.T, error) {
			l := c.List("a")
			l.Items = l.Items[:0:0]

			return c.Arg("a"), nil
		}),
		method("len", a, func(c *Call) (value.T, error) {
			return value.Int(c.List("a").Len()), nil
		}),
		method("pop", a, pop),
		method("push", signature.Of("a", value.Array, "v", signature.Any), func(c *Call) (value.T, error) {
			c.List("a").Append(c.Arg("v"))

			return c.Arg("a"), nil
		}),
		method("reverse", a, reverse),
		method("sort", a, sortList),
		method("uniq", a, uniq),
	}
}

func getItem(c *Call) (value.T, error) {
	l := c.List("a")

	i := c.Int("i")
	if i < 0 || i >= l.Len() {
		return value.Nil, fault.Newf(fault.OutOfBounds, "index %d out of range [0, %d)", i, l.Len())
	}

	return l.Items[i], nil
}

func pop(c *Call) (value.T, error) {
	l := c.List("a")

	n := l.Len()
	if n == 0 {
		return value.Nil, fault.New(fault.OutOfBounds, "pop from an empty array")
	}

	v := l.Items[n-1]
	l.Items = l.Items[:n-1]

	return v, nil
}

func reverse(c *Call) (value.T, error) {
	items := c.List("a").Items
	n := len(items)

	r := make([]value.T, n)
	for i, v := range items {
		r[n-1-i] = v
	}

	return value.NewArray(r...), nil
}

// Indexes past the end extend the array, filling the gap with null.
// Assigning past the end pads with null, but only by up to maxGap items.
const maxGap = 1 << 20

func setItem(c *Call) (value.T, error) {
	l := c.List("a")
	v := c.Arg("v")

	i := c.Int("i")
	if i < 0 {
		return value.Nil, fault.Newf(fault.OutOfBounds, "negative index %d", i)
	}

	if i-l.Len() > maxGap {
		return value.Nil, fault.Newf(fault.OutOfBounds, "index %d is too far past the end %d", i, l.Len())
	}

	for l.Len() < i {
		l.Append(value.Nil)
	}

	if i == l.Len() {
		l.Append(v)
	} else {
		l.Items[i] = v
	}

	return v, nil
}

// Numbers order numerically and strings lexically. Anything else orders by
// tag and then by its literal rendering.
func less(a, b value.T) bool {
	if a.Tag() != b.Tag() {
		return a.Tag() < b.Tag()
	}

	switch a.Tag() {
	case value.Number:
		x, _ := a.AsNum()
		y, _ := b.AsNum()

		return x < y
	case value.String:
		x, _ := a.AsStr()
		y, _ := b.AsStr()

		return x < y
	}

	return a.String() < b.String()
}

func sortList(c *Call) (value.T, error) {
	items := c.List("a").Items

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})

	return c.Arg("a"), nil
}

func uniq(c *Call) (value.T, error) {
	var kept []value.T

outer:
	for _, v := range c.List("a").Items {
		for _, k := range kept {
			if value.Equal(k, v) {
				continue outer
			}
		}

		kept = append(kept, v)
	}

	return value.NewArray(kept...), nil
}
