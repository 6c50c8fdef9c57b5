// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
	"github.com/michaelmacinnis/quill/internal/ui"
)

func streamMethods() []Method {
	return []Method{
		method("Readline", signature.Of(), func(c *Call) (value.T, error) {
			p, err := c.NewPrompter()
			if err != nil {
				return value.Nil, fault.Wrap(fault.IOError, err)
			}

			return value.Handle(value.Readline, ui.NewSession(c, c.Log(), p)), nil
		}),
		method("close", signature.Of("rl", value.Readline), func(c *Call) (value.T, error) {
			if err := c.Session("rl").Close(); err != nil {
				return value.Nil, fault.Wrap(fault.IOError, err)
			}

			return value.Nil, nil
		}),
		method("istty", signature.Of("s", value.Stream), func(c *Call) (value.T, error) {
			return value.Boolean(c.Stream("s").IsTTY()), nil
		}),
		method("read", signature.Of("rl", value.Readline, "prompt", value.String), read),
	}
}

func read(c *Call) (value.T, error) {
	s := c.Session("rl")

	var (
		line   string
		failed error
	)

	k := c.Suspend(func() (value.T, error) {
		if failed != nil {
			return value.Nil, failed
		}

		return value.Str(line), nil
	})

	err := s.Read(c.Str("prompt"), func(l string, err error) {
		line, failed = l, err
		k.Resume()
	})
	if err != nil {
		c.Cancel()

		return value.Nil, err
	}

	return value.Nil, nil
}
