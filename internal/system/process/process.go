// Released under an MIT license. See LICENSE.

// Package process bridges quill to external OS processes.
//
// A process is spawned on the scheduler's goroutine. Its output and exit
// are observed on other goroutines and posted back to the scheduler, so
// every change to a process record happens on the scheduler's goroutine.
package process

import (
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
)

// DefaultMaxOutput is the default cap, in bytes, on each output stream.
const DefaultMaxOutput = 16 << 20

// A process is done after its output streams close and it exits.
const finishEvents = 2

const chunkSize = 4096

// Scheduler is the part of the scheduler a process needs.
type Scheduler interface {
	Hold() (release func())
	Post(fn func())
}

// T (process) is the record of a spawned external process.
type T struct {
	args      []string
	cmd       string
	err       error
	exitCode  *int
	pending   int
	pid       int
	signal    string
	stderr    strings.Builder
	stdout    strings.Builder
	truncated bool
	waiters   []func()
}

type process = T

// Spawn starts argv[0] with the remaining elements of argv as arguments.
// A failure to start is recorded as the process's error and the process
// is immediately done. At most limit bytes of each output stream are kept.
func Spawn(s Scheduler, log commonlog.Logger, limit int, argv []string) *T {
	p := &process{
		args:    argv[1:],
		cmd:     argv[0],
		pending: finishEvents,
	}

	cmd := exec.Command(p.cmd, p.args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		p.fail(err)

		return p
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		p.fail(err)

		return p
	}

	if err = cmd.Start(); err != nil {
		log.Debugf("spawn %s: %v", p.cmd, err)
		p.fail(err)

		return p
	}

	p.pid = cmd.Process.Pid
	log.Debugf("spawned %s (pid %d)", p.cmd, p.pid)

	release := s.Hold()

	var wg sync.WaitGroup

	wg.Add(2)

	go p.collect(s, &wg, stdout, &p.stdout, limit)
	go p.collect(s, &wg, stderr, &p.stderr, limit)

	go func() {
		wg.Wait()

		s.Post(p.finish)

		err := cmd.Wait()

		s.Post(func() {
			p.exited(cmd, err)
			log.Debugf("%s (pid %d) exited", p.cmd, p.pid)
			p.finish()
			release()
		})
	}()

	return p
}

// Args returns the process's arguments.
func (p *process) Args() []string {
	return p.args
}

// Attribute returns the named attribute in plain host form.
func (p *process) Attribute(name string) (any, bool) {
	switch name {
	case "args":
		return p.args, true
	case "cmd":
		return p.cmd, true
	case "error":
		if p.err == nil {
			return nil, true
		}

		return p.err.Error(), true
	case "exit_code":
		return p.exitCode, true
	case "pid":
		return p.pid, true
	case "signal":
		if p.signal == "" {
			return nil, true
		}

		return p.signal, true
	case "state":
		return p.State(), true
	case "stderr":
		return p.stderr.String(), true
	case "stdout":
		return p.stdout.String(), true
	case "truncated":
		return p.truncated, true
	}

	return nil, false
}

// Cmd returns the process's executable.
func (p *process) Cmd() string {
	return p.cmd
}

// Done returns true if the process has exited and its output is complete.
func (p *process) Done() bool {
	return p.pending == 0
}

// Err returns the error, if any, encountered starting or waiting for the
// process.
func (p *process) Err() error {
	return p.err
}

// ExitCode returns the process's exit code. It is absent if the process
// has not exited, failed to start, or was killed by a signal.
func (p *process) ExitCode() (int, bool) {
	if p.exitCode == nil {
		return 0, false
	}

	return *p.exitCode, true
}

// Signal returns the name of the signal that terminated the process.
func (p *process) Signal() string {
	return p.signal
}

// State returns "running" or "done".
func (p *process) State() string {
	if p.Done() {
		return "done"
	}

	return "running"
}

// Stderr returns the standard error collected so far.
func (p *process) Stderr() string {
	return p.stderr.String()
}

// Stdout returns the standard output collected so far.
func (p *process) Stdout() string {
	return p.stdout.String()
}

// String returns a short description of the process p.
func (p *process) String() string {
	return "<Process " + p.cmd + " " + p.State() + ">"
}

// Truncated returns true if output beyond the cap was discarded.
func (p *process) Truncated() bool {
	return p.truncated
}

// Wait calls fn when the process is done, or immediately if it already is.
// Waiters are called in the order they were added.
func (p *process) Wait(fn func()) {
	if p.Done() {
		fn()

		return
	}

	p.waiters = append(p.waiters, fn)
}

func (p *process) collect(s Scheduler, wg *sync.WaitGroup, r io.Reader, b *strings.Builder, limit int) {
	defer wg.Done()

	kept := 0
	flagged := false
	buf := make([]byte, chunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			cut := false

			if room := limit - kept; n > room {
				chunk = chunk[:max(room, 0)]
				cut = !flagged
				flagged = true
			}

			kept += len(chunk)

			if len(chunk) > 0 || cut {
				text := string(chunk)

				s.Post(func() {
					b.WriteString(text)

					if cut {
						p.truncated = true
					}
				})
			}
		}

		if err != nil {
			return
		}
	}
}

func (p *process) exited(cmd *exec.Cmd, err error) {
	var ee *exec.ExitError
	if err != nil && !errors.As(err, &ee) {
		p.err = err
	}

	state := cmd.ProcessState
	if state == nil {
		return
	}

	if name, ok := signaled(state); ok {
		p.signal = name

		return
	}

	code := state.ExitCode()
	p.exitCode = &code
}

func (p *process) fail(err error) {
	p.err = err
	p.pending = 1
	p.finish()
}

func (p *process) finish() {
	p.pending--
	if p.pending > 0 {
		return
	}

	waiters := p.waiters
	p.waiters = nil

	for _, fn := range waiters {
		fn()
	}
}
