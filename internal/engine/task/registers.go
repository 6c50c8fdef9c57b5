// Released under an MIT license. See LICENSE.

package task

import (
	"github.com/michaelmacinnis/quill/internal/engine/code"
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/lambda"
	"github.com/michaelmacinnis/quill/internal/type/scope"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

// MaxDepth is the deepest a task's call stack may grow.
const MaxDepth = 4096

type handler struct {
	height int
	ip     int
	name   string
}

// The registers type holds the state of a single activation.
type registers struct {
	base     int
	handlers []handler
	ip       int
	name     string
	scopes   *scope.T
	target   value.Map
	unit     *code.T
}

// Enter pushes an activation of l with the parameter bindings bound.
func (t *T) Enter(l *lambda.T, bound value.Map) error {
	if len(t.frames) >= MaxDepth {
		return fault.Newf(fault.GuardViolation, "call depth exceeds %d", MaxDepth)
	}

	chain, target := l.Frame(bound)
	entry := l.Entry()

	t.frames = append(t.frames, &registers{
		base:   len(t.stack),
		ip:     entry.IP,
		name:   l.Name(),
		scopes: chain,
		target: target,
		unit:   entry.Unit,
	})

	return nil
}

// Push places v on t's value stack. It is how a native call delivers its
// result.
func (t *T) Push(v value.T) {
	if t.state == Done {
		return
	}

	t.stack = append(t.stack, v)
}

// Raise unwinds t to the innermost handler and binds the raised value there.
// If no handler exists t finishes with err.
func (t *T) Raise(err error) {
	if t.state == Done {
		return
	}

	v := Raised(err)

	for n := len(t.frames); n > 0; n = len(t.frames) {
		f := t.frames[n-1]

		if h := len(f.handlers); h > 0 {
			c := f.handlers[h-1]
			f.handlers = f.handlers[:h-1]

			t.stack = t.stack[:c.height]
			f.ip = c.ip
			f.scopes.Set(c.name, v, f.target)

			return
		}

		t.stack = t.stack[:f.base]
		t.frames = t.frames[:n-1]
	}

	t.finish(value.Nil, err)
}

// Raised converts err into the language-level value it raises.
func Raised(err error) value.T {
	f := fault.Wrap(fault.Raised, err)
	if v, ok := f.Payload.(value.T); ok {
		return v
	}

	return value.FromMap(value.Map{
		"kind":    value.Str(string(f.Kind)),
		"message": value.Str(f.Message),
	})
}

// Scopes returns the scope chain of t's current activation.
func (t *T) Scopes() *scope.T {
	if f := t.frame(); f != nil {
		return f.scopes
	}

	return nil
}

// Target returns the layer in which t's current activation creates new
// bindings.
func (t *T) Target() value.Map {
	if f := t.frame(); f != nil {
		return f.target
	}

	return nil
}

func (t *T) frame() *registers {
	if n := len(t.frames); n > 0 {
		return t.frames[n-1]
	}

	return nil
}

func (t *T) leave(v value.T) {
	n := len(t.frames)
	f := t.frames[n-1]

	t.stack = t.stack[:f.base]
	t.frames = t.frames[:n-1]

	if len(t.frames) == 0 {
		t.finish(v, nil)

		return
	}

	t.stack = append(t.stack, v)
}

func (t *T) pop() value.T {
	n := len(t.stack) - 1
	if f := t.frame(); f != nil && n < f.base {
		panic(fault.New(fault.GuardViolation, "value stack underflow"))
	}

	v := t.stack[n]
	t.stack = t.stack[:n]

	return v
}

func (t *T) popn(n int) []value.T {
	vs := make([]value.T, n)
	for i := n - 1; i >= 0; i-- {
		vs[i] = t.pop()
	}

	return vs
}

func (t *T) top() value.T {
	if f := t.frame(); f != nil && len(t.stack) > f.base {
		return t.stack[len(t.stack)-1]
	}

	return value.Nil
}
