// Released under an MIT license. See LICENSE.

// Package commands provides quill's native methods.
package commands

import (
	"io"

	"github.com/tliron/commonlog"

	"github.com/michaelmacinnis/quill/internal/engine/code"
	"github.com/michaelmacinnis/quill/internal/engine/task"
	"github.com/michaelmacinnis/quill/internal/system/process"
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/lambda"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
	"github.com/michaelmacinnis/quill/internal/ui"
)

// Core is the interpreter core as seen by native methods.
type Core interface {
	Compile(source string) (*code.T, error)
	Hold() (release func())
	LoadCode(c *code.T) code.Pointer
	Log() commonlog.Logger
	MaxOutput() int
	NewPrompter() (ui.Prompter, error)
	Post(fn func())
	RegisterMethod(name string, l *lambda.T)
	Spawn(l *lambda.T) (*task.T, error)
	Stdout() io.Writer
}

// Native is the body of a native method. If the body suspends its task
// the value it returns is discarded; the suspension's step supplies the
// result instead.
type Native func(c *Call) (value.T, error)

// Method is a native method's registration.
type Method struct {
	Body      Native
	Name      string
	Signature signature.T
}

// Call is the handle a native method receives.
type Call struct {
	Core

	Args value.Map
	Name string
	Task *task.T

	token *task.Token
}

// NewCall creates the handle for a call to name by t.
func NewCall(core Core, t *task.T, name string, args value.Map) *Call {
	return &Call{Core: core, Args: args, Name: name, Task: t}
}

// Methods returns every native method in registration order.
func Methods() []Method {
	tables := [][]Method{
		arithmeticMethods(),
		relationalMethods(),
		booleanMethods(),
		stringMethods(),
		listMethods(),
		hashMethods(),
		numberMethods(),
		coreMethods(),
		fileMethods(),
		encodingMethods(),
		processMethods(),
		threadMethods(),
		streamMethods(),
		loaderMethods(),
	}

	n := 0
	for _, t := range tables {
		n += len(t)
	}

	ms := make([]Method, 0, n)
	for _, t := range tables {
		ms = append(ms, t...)
	}

	return ms
}

// Cancel undoes a suspension made by c that will not be resumed.
func (c *Call) Cancel() {
	if c.token != nil {
		c.token.Cancel()
		c.token = nil
	}
}

// Suspend parks the calling task. See task.T.Suspend.
func (c *Call) Suspend(step task.Step) *task.Token {
	c.token = c.Task.Suspend(step)

	return c.token
}

// Suspended returns true if c suspended its task.
func (c *Call) Suspended() bool {
	return c.token != nil
}

// Argument accessors. The registry has already checked tags against each
// signature, so a failure here means a parameter was declared Any. They
// panic in the manner of validate helpers; the native boundary recovers.

// Arg returns the argument bound to name.
func (c *Call) Arg(name string) value.T {
	v, ok := c.Args[name]
	if !ok {
		panic(fault.Newf(fault.ArgumentMismatch, "%s: missing argument %s", c.Name, name))
	}

	return v
}

// Bool returns the Bool argument name.
func (c *Call) Bool(name string) bool {
	b, err := c.Arg(name).AsBool()
	must(err)

	return b
}

// Hash returns the Hash argument name.
func (c *Call) Hash(name string) value.Map {
	m, err := c.Arg(name).AsHash()
	must(err)

	return m
}

// Int returns the integral Number argument name.
func (c *Call) Int(name string) int {
	i, err := c.Arg(name).AsInt()
	must(err)

	return i
}

// Lambda returns the Lambda argument name.
func (c *Call) Lambda(name string) *lambda.T {
	l, err := lambda.From(c.Arg(name))
	must(err)

	return l
}

// List returns the Array argument name.
func (c *Call) List(name string) *value.List {
	l, err := c.Arg(name).AsList()
	must(err)

	return l
}

// Num returns the Number argument name.
func (c *Call) Num(name string) float64 {
	n, err := c.Arg(name).AsNum()
	must(err)

	return n
}

// Process returns the Process argument name.
func (c *Call) Process(name string) *process.T {
	h, err := c.Arg(name).AsHandle(value.Process)
	must(err)

	return h.(*process.T)
}

// Session returns the Readline argument name.
func (c *Call) Session(name string) *ui.Session {
	h, err := c.Arg(name).AsHandle(value.Readline)
	must(err)

	return h.(*ui.Session)
}

// Str returns the String argument name.
func (c *Call) Str(name string) string {
	s, err := c.Arg(name).AsStr()
	must(err)

	return s
}

// Stream returns the Stream argument name.
func (c *Call) Stream(name string) *ui.Stream {
	h, err := c.Arg(name).AsHandle(value.Stream)
	must(err)

	return h.(*ui.Stream)
}

// Thread returns the Thread argument name.
func (c *Call) Thread(name string) *task.T {
	t, err := task.From(c.Arg(name))
	must(err)

	return t
}

// Unit returns the Code argument name.
func (c *Call) Unit(name string) *code.T {
	h, err := c.Arg(name).AsHandle(value.Code)
	must(err)

	return h.(*code.T)
}

func method(name string, s signature.T, body Native) Method {
	return Method{Body: body, Name: name, Signature: s}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
