// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func arithmeticMethods() []Method {
	nn := signature.Of("a", value.Number, "b", value.Number)

	return []Method{
		method("__add", nn, addNumbers),
		method("__add", signature.Of("a", value.String, "b", value.String), addStrings),
		method("__add", signature.Of("a", value.Array, "b", value.Array), addArrays),
		method("__mul", nn, mul),
		method("__sub", nn, sub),
	}
}

func addArrays(c *Call) (value.T, error) {
	a, b := c.List("a"), c.List("b")

	items := make([]value.T, 0, a.Len()+b.Len())
	items = append(items, a.Items...)
	items = append(items, b.Items...)

	return value.NewArray(items...), nil
}

func addNumbers(c *Call) (value.T, error) {
	return value.Num(c.Num("a") + c.Num("b")), nil
}

func addStrings(c *Call) (value.T, error) {
	return value.Str(c.Str("a") + c.Str("b")), nil
}

func mul(c *Call) (value.T, error) {
	return value.Num(c.Num("a") * c.Num("b")), nil
}

func sub(c *Call) (value.T, error) {
	return value.Num(c.Num("a") - c.Num("b")), nil
}
