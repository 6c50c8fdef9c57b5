// Released under an MIT license. See LICENSE.

package commands

import (
	"fmt"
	"io"

	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func coreMethods() []Method {
	s := signature.Of("s", value.String)
	x := signature.Of("x", signature.Any)

	return []Method{
		method("__throw", signature.Of("e", signature.Any), func(c *Call) (value.T, error) {
			e := c.Arg("e")

			f := fault.Newf(fault.Raised, "%s", e)
			f.Payload = e

			return value.Nil, f
		}),
		method("echo", s, func(c *Call) (value.T, error) {
			return write(c, c.Str("s")+"\n")
		}),
		method("id", x, identity),
		method("typeof", x, func(c *Call) (value.T, error) {
			return value.Str(c.Arg("x").Tag().String()), nil
		}),
		method("write", s, func(c *Call) (value.T, error) {
			return write(c, c.Str("s"))
		}),
	}
}

// Arrays, hashes and handles are identified by reference, everything else
// by its literal form.
func identity(c *Call) (value.T, error) {
	v := c.Arg("x")

	switch v.Tag() {
	case value.Null, value.Bool, value.Number, value.String:
		return value.Str(v.Tag().String() + ":" + v.String()), nil
	}

	return value.Str(fmt.Sprintf("%s:%p", v.Tag(), v.Payload())), nil
}

func write(c *Call, s string) (value.T, error) {
	if _, err := io.WriteString(c.Stdout(), s); err != nil {
		return value.Nil, fault.Wrap(fault.IOError, err)
	}

	return c.Arg("s"), nil
}
