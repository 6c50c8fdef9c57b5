// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/quill/internal/system/process"
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func processMethods() []Method {
	p := signature.Of("p", value.Process)

	return []Method{
		method("Bool", p, func(c *Call) (value.T, error) {
			pr := c.Process("p")
			if !pr.Done() {
				return value.Nil, fault.Newf(fault.GuardViolation, "%s has not finished", pr)
			}

			code, ok := pr.ExitCode()

			return value.Boolean(ok && code == 0), nil
		}),
		method("__get_attr", signature.Of("p", value.Process, "attr", signature.Any), processAttr),
		method("spawn", signature.New().Rest("args").MustBuild(), spawn),
		method("wait", p, waitProcess),
	}
}

func processAttr(c *Call) (value.T, error) {
	name, err := c.Arg("attr").AsStr()
	if err != nil {
		return value.Nil, err
	}

	a, ok := c.Process("p").Attribute(name)
	if !ok {
		return value.Nil, fault.Newf(fault.MissingAttribute, "Process has no attribute %s", name)
	}

	return value.Of(a)
}

func spawn(c *Call) (value.T, error) {
	items := c.List("args").Items
	if len(items) == 0 {
		return value.Nil, fault.New(fault.ArgumentMismatch, "spawn requires a command")
	}

	argv := make([]string, len(items))

	for i, v := range items {
		s, err := v.AsStr()
		if err != nil {
			return value.Nil, err
		}

		argv[i] = s
	}

	p := process.Spawn(c, c.Log(), c.MaxOutput(), argv)

	return value.Handle(value.Process, p), nil
}

func waitProcess(c *Call) (value.T, error) {
	v := c.Arg("p")

	p := c.Process("p")
	if p.Done() {
		return v, nil
	}

	k := c.Suspend(func() (value.T, error) {
		return v, nil
	})

	p.Wait(func() { k.Resume() })

	return value.Nil, nil
}
