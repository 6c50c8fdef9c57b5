// Released under an MIT license. See LICENSE.

package commands

import (
	"time"

	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func threadMethods() []Method {
	t := signature.Of("t", value.Thread)

	return []Method{
		method("String", t, func(c *Call) (value.T, error) {
			return value.Str(c.Thread("t").String()), nil
		}),
		method("__get_attr", signature.Of("t", value.Thread, "k", value.String), threadAttr),
		method("kill", t, func(c *Call) (value.T, error) {
			c.Thread("t").Kill()

			return c.Arg("t"), nil
		}),
		method("locals", t, func(c *Call) (value.T, error) {
			return value.FromMap(c.Thread("t").Locals()), nil
		}),
		method("sleep", signature.Of("seconds", value.Number), sleep),
		method("thread", signature.Of(), func(c *Call) (value.T, error) {
			return c.Task.Value(), nil
		}),
		method("thread", signature.Of("l", value.Lambda), thread),
		method("wait", t, waitThread),
	}
}

func waitThread(c *Call) (value.T, error) {
	v := c.Arg("t")

	t := c.Thread("t")
	if t == c.Task {
		return value.Nil, fault.Newf(fault.GuardViolation, "%s cannot wait for itself", t)
	}

	if t.Done() {
		return v, nil
	}

	t.AddWaiter(c.Suspend(func() (value.T, error) {
		return v, nil
	}))

	return value.Nil, nil
}

func sleep(c *Call) (value.T, error) {
	s := c.Num("seconds")
	if s < 0 {
		return value.Nil, fault.Newf(fault.OutOfBounds, "negative duration %v", s)
	}

	k := c.Suspend(func() (value.T, error) {
		return value.Nil, nil
	})

	release := c.Hold()

	time.AfterFunc(time.Duration(s*float64(time.Second)), func() {
		c.Post(func() {
			k.Resume()
			release()
		})
	})

	return value.Nil, nil
}

func thread(c *Call) (value.T, error) {
	t, err := c.Spawn(c.Lambda("l"))
	if err != nil {
		return value.Nil, err
	}

	return t.Value(), nil
}

func threadAttr(c *Call) (value.T, error) {
	t := c.Thread("t")

	switch k := c.Str("k"); k {
	case "cycles":
		return value.Int(t.Cycles()), nil
	case "id":
		return value.Int(t.ID()), nil
	case "result":
		return t.Result(), nil
	case "state":
		return value.Str(t.State().String()), nil
	default:
		return value.Nil, fault.Newf(fault.MissingAttribute, "Thread has no attribute %s", k)
	}
}
