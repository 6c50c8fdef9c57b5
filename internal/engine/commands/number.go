// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func numberMethods() []Method {
	return []Method{
		// Numbers are immutable so the initial value is a fresh zero.
		method("init", signature.Of("n", value.Number), func(*Call) (value.T, error) {
			return value.Int(0), nil
		}),
		method("String", signature.Of("n", value.Number), func(c *Call) (value.T, error) {
			return value.Str(value.FormatNum(c.Num("n"))), nil
		}),
	}
}
