// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

// Bool(Process) lives with the other process methods. Overload resolution
// prefers it to Bool(any) whatever the registration order.
func booleanMethods() []Method {
	return []Method{
		method("Bool", signature.Of("x", signature.Any), func(c *Call) (value.T, error) {
			return value.Boolean(value.Truth(c.Arg("x"))), nil
		}),
		method("Bool", signature.Of("b", value.Bool), func(c *Call) (value.T, error) {
			return c.Arg("b"), nil
		}),
	}
}
