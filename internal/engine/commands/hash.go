// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func hashMethods() []Method {
	h := signature.Of("h", value.Hash)
	hk := signature.Of("h", value.Hash, "k", value.String)
	hkv := signature.Of("h", value.Hash, "k", value.String, "v", signature.Any)

	return []Method{
		method("Hash", signature.Of(), func(*Call) (value.T, error) {
			return value.NewHash(), nil
		}),
		method("__get_attr", hk, lookup),
		method("__get_item", hk, lookup),
		method("__set_attr", hkv, func(c *Call) (value.T, error) {
			c.Hash("h")[c.Str("k")] = c.Arg("v")

			return c.Arg("h"), nil
		}),
		method("__set_item", hkv, func(c *Call) (value.T, error) {
			c.Hash("h")[c.Str("k")] = c.Arg("v")

			return c.Arg("v"), nil
		}),
		method("has", hk, func(c *Call) (value.T, error) {
			_, ok := c.Hash("h")[c.Str("k")]

			return value.Boolean(ok), nil
		}),
		method("init", h, func(c *Call) (value.T, error) {
			m := c.Hash("h")
			for k := range m {
				delete(m, k)
			}

			return c.Arg("h"), nil
		}),
		method("keys", h, func(c *Call) (value.T, error) {
			return value.Of(c.Hash("h").Keys())
		}),
		method("len", h, func(c *Call) (value.T, error) {
			return value.Int(len(c.Hash("h"))), nil
		}),
	}
}

func lookup(c *Call) (value.T, error) {
	k := c.Str("k")

	v, ok := c.Hash("h")[k]
	if !ok {
		return value.Nil, fault.Newf(fault.MissingAttribute, "no key %q", k)
	}

	return v, nil
}
