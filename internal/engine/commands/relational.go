// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func relationalMethods() []Method {
	nn := signature.Of("a", value.Number, "b", value.Number)
	ss := signature.Of("a", value.String, "b", value.String)

	return []Method{
		method("__eq", signature.Of("a", signature.Any, "b", signature.Any), eq),
		method("__gt", nn, func(c *Call) (value.T, error) {
			return value.Boolean(c.Num("a") > c.Num("b")), nil
		}),
		method("__gt", ss, func(c *Call) (value.T, error) {
			return value.Boolean(c.Str("a") > c.Str("b")), nil
		}),
		method("__lt", nn, func(c *Call) (value.T, error) {
			return value.Boolean(c.Num("a") < c.Num("b")), nil
		}),
		method("__lt", ss, func(c *Call) (value.T, error) {
			return value.Boolean(c.Str("a") < c.Str("b")), nil
		}),
	}
}

func eq(c *Call) (value.T, error) {
	return value.Boolean(value.Equal(c.Arg("a"), c.Arg("b"))), nil
}
