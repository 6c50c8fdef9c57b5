// Released under an MIT license. See LICENSE.

// Package task provides quill's execution contexts.
//
// A task executes compiled code one instruction at a time on the
// scheduler's goroutine. Tasks switch only when a native call suspends the
// running task; a suspended task resumes when its token is resumed and the
// scheduler runs it again.
package task

import (
	"fmt"

	"github.com/michaelmacinnis/quill/internal/engine/code"
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/lambda"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

type machine interface {
	// Apply invokes callee.
	Apply(t *T, callee value.T, args []value.T, named value.Map) error
	// Call resolves and invokes name.
	Call(t *T, name string, args []value.T, named value.Map) error
	// Finished is called when t is done.
	Finished(t *T)
	// Ready is called when t becomes runnable.
	Ready(t *T)
}

// T (task) encapsulates a thread of execution.
type T struct {
	machine

	cycles  int
	err     error
	frames  []*registers
	id      int
	killed  bool
	locals  value.Map
	pending Step
	result  value.T
	stack   []value.T
	state   State
	waiters []*Token
}

type task = T

// New creates a task that will call l with no arguments.
func New(m machine, id int, l *lambda.T) (*T, error) {
	t := &task{
		machine: m,
		id:      id,
		result:  value.Nil,
		state:   Running,
	}

	bound, ok := l.Params().Bind(nil, nil)
	if !ok {
		return nil, fault.Newf(
			fault.ArgumentMismatch, "%s cannot be called with no arguments", l,
		)
	}

	if err := t.Enter(l, bound); err != nil {
		return nil, err
	}

	return t, nil
}

// Cycles returns the number of instructions t has executed.
func (t *T) Cycles() int {
	return t.cycles
}

// Done returns true if t has finished.
func (t *T) Done() bool {
	return t.state == Done
}

// Err returns the error that finished t, if any.
func (t *T) Err() error {
	return t.err
}

// ID returns t's identifier.
func (t *T) ID() int {
	return t.id
}

// Killed returns true if t was finished by Kill.
func (t *T) Killed() bool {
	return t.killed
}

// Locals returns t's thread-local mapping.
func (t *T) Locals() value.Map {
	if t.locals == nil {
		t.locals = value.Map{}
	}

	return t.locals
}

// Result returns the value t's code returned.
func (t *T) Result() value.T {
	return t.result
}

// State returns t's scheduling state.
func (t *T) State() State {
	return t.state
}

// String returns a short description of t.
func (t *T) String() string {
	return fmt.Sprintf("<Thread %d:%s>", t.id, t.state)
}

// Value wraps t as a Thread value.
func (t *T) Value() value.T {
	return value.Handle(value.Thread, t)
}

// From returns the task held by the Thread value v.
func From(v value.T) (*T, error) {
	h, err := v.AsHandle(value.Thread)
	if err != nil {
		return nil, err
	}

	return h.(*T), nil
}

// Run executes t until it suspends or is done.
func (t *T) Run() {
	if t.state != Running {
		return
	}

	for t.state == Running {
		if p := t.pending; p != nil {
			t.pending = nil

			v, err := p()
			if err != nil {
				t.Raise(err)
			} else {
				t.Push(v)
			}

			continue
		}

		t.Step()
	}
}

// Step executes a single instruction.
func (t *T) Step() {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err, ok := r.(error)
		if !ok {
			err = fault.Newf(fault.Raised, "%v", r)
		}

		t.Raise(err)
	}()

	f := t.frame()
	if f == nil {
		t.finish(value.Nil, nil)

		return
	}

	if f.ip >= len(f.unit.Instrs) {
		t.leave(t.top())

		return
	}

	i := &f.unit.Instrs[f.ip]
	f.ip++
	t.cycles++

	t.execute(f, i)
}

func (t *T) execute(f *registers, i *code.Instr) {
	switch i.Op {
	case code.Halt:
		t.leave(t.top())

	case code.Push:
		t.stack = append(t.stack, i.Value)

	case code.Pop:
		t.pop()

	case code.Get:
		v, ok := f.scopes.Lookup(i.Name)
		if !ok {
			t.Raise(fault.Newf(fault.MissingAttribute, "%s is not defined", i.Name))

			return
		}

		t.stack = append(t.stack, v)

	case code.Set:
		f.scopes.Set(i.Name, t.top(), f.target)

	case code.Call:
		named := t.named(i.Names)
		args := t.popn(i.Argc)

		if err := t.machine.Call(t, i.Name, args, named); err != nil {
			t.Raise(err)
		}

	case code.Apply:
		named := t.named(i.Names)
		args := t.popn(i.Argc)
		callee := t.pop()

		if err := t.machine.Apply(t, callee, args, named); err != nil {
			t.Raise(err)
		}

	case code.Closure:
		l := lambda.New(i.Name, i.Params, f.scopes, code.Pointer{Unit: f.unit, IP: i.IP})
		t.stack = append(t.stack, l.Value())

	case code.Jump:
		f.ip = i.IP

	case code.JumpUnless:
		b, err := t.pop().AsBool()
		if err != nil {
			t.Raise(err)

			return
		}

		if !b {
			f.ip = i.IP
		}

	case code.Return:
		t.leave(t.pop())

	case code.Try:
		f.handlers = append(f.handlers, handler{
			height: len(t.stack),
			ip:     i.IP,
			name:   i.Name,
		})

	case code.Untry:
		f.handlers = f.handlers[:len(f.handlers)-1]

	case code.Array:
		t.stack = append(t.stack, value.NewArray(t.popn(i.Argc)...))

	default:
		panic(fault.Newf(fault.GuardViolation, "unknown instruction %s", i.Op))
	}
}

func (t *T) named(names []string) value.Map {
	if len(names) == 0 {
		return nil
	}

	vs := t.popn(len(names))

	m := make(value.Map, len(names))
	for k, name := range names {
		m[name] = vs[k]
	}

	return m
}
