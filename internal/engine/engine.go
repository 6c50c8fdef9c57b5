// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for compiled quill code.
package engine

import (
	"context"
	"io"

	"github.com/tliron/commonlog"

	"github.com/michaelmacinnis/quill/internal/engine/code"
	"github.com/michaelmacinnis/quill/internal/engine/commands"
	"github.com/michaelmacinnis/quill/internal/engine/monitor"
	"github.com/michaelmacinnis/quill/internal/engine/registry"
	"github.com/michaelmacinnis/quill/internal/engine/task"
	"github.com/michaelmacinnis/quill/internal/reader"
	"github.com/michaelmacinnis/quill/internal/system/config"
	"github.com/michaelmacinnis/quill/internal/system/history"
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/lambda"
	"github.com/michaelmacinnis/quill/internal/type/scope"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
	"github.com/michaelmacinnis/quill/internal/ui"
)

// Options configure an engine. Zero fields take defaults.
type Options struct {
	// Args is bound to the global ARGV.
	Args []string

	Config *config.T
	Log    commonlog.Logger

	// Prompter creates the line source behind each Readline session.
	Prompter func() (ui.Prompter, error)

	Stdout io.Writer
}

// A method body is either native or a closure defined by language code.
type body struct {
	closure *lambda.T
	native  commands.Native
}

// T (engine) is a facade in front of the machinery for evaluating quill
// code. It is the single runtime state shared by every task.
type T struct {
	config   *config.T
	globals  value.Map
	log      commonlog.Logger
	main     *task.T
	monitor  *monitor.T
	prompter func() (ui.Prompter, error)
	registry *registry.T[body]
	stdout   io.Writer
	threads  int
}

// New creates a new T with every native method registered.
func New(o Options) *T {
	e := &T{
		config:   o.Config,
		log:      o.Log,
		prompter: o.Prompter,
		registry: registry.New[body](),
		stdout:   o.Stdout,
	}

	if e.config == nil {
		e.config = config.Default()
	}

	if e.log == nil {
		e.log = commonlog.GetLogger("quill.engine")
	}

	if e.prompter == nil {
		path := history.Path(e.config.REPL.History)

		e.prompter = func() (ui.Prompter, error) {
			return ui.NewLiner(e.log, path), nil
		}
	}

	if e.stdout == nil {
		e.stdout = ui.Stdout
	}

	e.monitor = monitor.New(commonlog.GetLogger("quill.monitor"))

	for _, m := range commands.Methods() {
		e.registry.Register(m.Name, m.Signature, body{native: m.Body})
	}

	argv, _ := value.Of(o.Args)

	e.globals = value.Map{
		"ARGV":   argv,
		"PROMPT": value.Str(e.config.REPL.Prompt),
		"stderr": value.Handle(value.Stream, ui.Stderr),
		"stdin":  value.Handle(value.Stream, ui.Stdin),
		"stdout": value.Handle(value.Stream, ui.Stdout),
	}

	return e
}

// Evaluate compiles and runs source. It returns the value of the last
// statement.
func (e *T) Evaluate(ctx context.Context, source string) (value.T, error) {
	u, err := reader.Compile(source, reader.Options{LeaveValueInStack: true})
	if err != nil {
		return value.Nil, err
	}

	return e.Run(ctx, u)
}

// Globals returns the global scope.
func (e *T) Globals() value.Map {
	return e.globals
}

// Run executes u in a new main task and schedules every task until no
// more work remains. Top-level bindings made by u are globals. If the main
// task cannot finish because nothing remains that could resume it, Run
// reports a Deadlock.
func (e *T) Run(ctx context.Context, u *code.T) (value.T, error) {
	l := lambda.Loaded("main", scope.New(e.globals), e.LoadCode(u))

	t, err := e.Spawn(l)
	if err != nil {
		return value.Nil, err
	}

	e.main = t

	if err := e.monitor.Run(ctx); err != nil {
		return value.Nil, err
	}

	if !t.Done() {
		e.log.Errorf("%s cannot proceed", t)
		t.Kill()

		return value.Nil, fault.Newf(fault.Deadlock, "%s is waiting with nothing left to wake it", t)
	}

	return t.Result(), t.Err()
}

// Apply and Call satisfy the task's machine interface.

// Apply invokes callee, which must be a closure.
func (e *T) Apply(t *task.T, callee value.T, args []value.T, named value.Map) error {
	l, err := lambda.From(callee)
	if err != nil {
		return err
	}

	bound, ok := l.Params().Bind(args, named)
	if !ok {
		return fault.Newf(
			fault.ArgumentMismatch, "%s%s cannot be called with %s",
			l.Name(), l.Params(), signature.Describe(args, named),
		)
	}

	return t.Enter(l, bound)
}

// Call invokes the closure bound to name in t's scope or, if there is
// none, dispatches name to its overloads.
func (e *T) Call(t *task.T, name string, args []value.T, named value.Map) error {
	if v, ok := t.Scopes().Lookup(name); ok && v.Tag() == value.Lambda {
		return e.Apply(t, v, args, named)
	}

	m, bound, err := e.registry.Dispatch(name, args, named)
	if err != nil {
		return err
	}

	if l := m.Body.closure; l != nil {
		return t.Enter(l, bound)
	}

	return e.invoke(t, name, m.Body.native, bound)
}

// Finished logs tasks other than main that end with an error.
func (e *T) Finished(t *task.T) {
	switch {
	case t == e.main:
		e.log.Debugf("main finished after %d cycles", t.Cycles())
	case t.Killed():
		e.log.Debugf("%s killed", t)
	case t.Err() != nil:
		e.log.Errorf("%s: %v", t, t.Err())
	}
}

// Ready queues t to run.
func (e *T) Ready(t *task.T) {
	e.monitor.Ready(t)
}

// The remaining methods satisfy commands.Core.

// Compile compiles source so that its last statement's value is returned.
func (e *T) Compile(source string) (*code.T, error) {
	return reader.Compile(source, reader.Options{LeaveValueInStack: true})
}

// Hold records outstanding external work.
func (e *T) Hold() (release func()) {
	return e.monitor.Hold()
}

// LoadCode returns the entry point for u.
func (e *T) LoadCode(u *code.T) code.Pointer {
	return code.Pointer{Unit: u}
}

// Log returns the engine's logger.
func (e *T) Log() commonlog.Logger {
	return e.log
}

// MaxOutput returns the cap on each output stream of a spawned process.
func (e *T) MaxOutput() int {
	return e.config.Process.MaxOutput
}

// NewPrompter creates a line source for a Readline session.
func (e *T) NewPrompter() (ui.Prompter, error) {
	return e.prompter()
}

// Post queues fn to run between task turns.
func (e *T) Post(fn func()) {
	e.monitor.Post(fn)
}

// RegisterMethod adds l as an overload of name.
func (e *T) RegisterMethod(name string, l *lambda.T) {
	e.log.Debugf("registering %s%s", name, l.Params())
	e.registry.Register(name, l.Params(), body{closure: l})
}

// Spawn creates a task that calls l and queues it to run.
func (e *T) Spawn(l *lambda.T) (*task.T, error) {
	e.threads++

	t, err := task.New(e, e.threads, l)
	if err != nil {
		return nil, err
	}

	e.log.Debugf("spawned %s for %s", t, l)
	e.monitor.Ready(t)

	return t, nil
}

// Stdout returns where echo and write send their output.
func (e *T) Stdout() io.Writer {
	return e.stdout
}

func (e *T) invoke(t *task.T, name string, fn commands.Native, bound value.Map) (err error) {
	c := commands.NewCall(e, t, name, bound)

	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(error)
			if !ok {
				f = fault.Newf(fault.Raised, "%s: %v", name, r)
			}

			err = f
		}

		if err != nil {
			c.Cancel()
		}
	}()

	v, err := fn(c)
	if err != nil {
		return err
	}

	if !c.Suspended() {
		t.Push(v)
	}

	return nil
}
