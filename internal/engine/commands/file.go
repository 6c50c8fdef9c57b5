// Released under an MIT license. See LICENSE.

package commands

import (
	"os"

	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func fileMethods() []Method {
	f := signature.Of("f", value.String)

	return []Method{
		method("exists", f, func(c *Call) (value.T, error) {
			_, err := os.Stat(c.Str("f"))

			return value.Boolean(err == nil), nil
		}),
		method("fetch_file", f, func(c *Call) (value.T, error) {
			b, err := os.ReadFile(c.Str("f"))
			if err != nil {
				return value.Nil, fault.Wrap(fault.IOError, err)
			}

			return value.Str(string(b)), nil
		}),
	}
}
