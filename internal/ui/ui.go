// Released under an MIT license. See LICENSE.

// Package ui provides quill's interactive line sessions and standard streams.
package ui

import (
	"errors"
	"io"
	"sync"

	"github.com/peterh/liner"
	"github.com/tliron/commonlog"

	"github.com/michaelmacinnis/quill/internal/type/fault"
)

// Prompter reads a line after writing a prompt.
type Prompter interface {
	Close() error
	Prompt(prompt string) (string, error)
}

// Scheduler is the part of the scheduler a session needs.
type Scheduler interface {
	Hold() (release func())
	Post(fn func())
}

// Session is an interactive line session. It holds at most one pending
// read; the read's listener is removed before it fires.
type Session struct {
	closed   bool
	listener func(line string, err error)
	log      commonlog.Logger
	prompter Prompter
	release  func()
	sched    Scheduler

	// The prompter is not closed under a running prompt. A Close during
	// one leaves it to the prompting goroutine.
	mu        sync.Mutex
	prompting bool
	shut      bool
}

// NewSession creates a session reading from p.
func NewSession(s Scheduler, log commonlog.Logger, p Prompter) *Session {
	return &Session{
		log:      log,
		prompter: p,
		sched:    s,
	}
}

// Close releases the session. A pending read is delivered a
// ClosedResourceError. If a prompt is still running the prompter is
// closed once it returns. Closing a closed session does nothing.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	if l := s.listener; l != nil {
		s.listener = nil
		s.release()

		l("", fault.New(fault.ClosedResourceError, "session closed while reading"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prompting {
		s.shut = true

		return nil
	}

	return s.prompter.Close()
}

// Closed returns true if the session has been closed.
func (s *Session) Closed() bool {
	return s.closed
}

// Read writes prompt and arranges for deliver to be called, on the
// scheduler's goroutine, with the next line. Read must be called on the
// scheduler's goroutine.
func (s *Session) Read(prompt string, deliver func(line string, err error)) error {
	if s.closed {
		return fault.New(fault.ClosedResourceError, "read from closed session")
	}

	if s.listener != nil {
		return fault.New(fault.GuardViolation, "session already has a pending read")
	}

	s.listener = deliver
	s.release = s.sched.Hold()

	s.mu.Lock()
	s.prompting = true
	s.mu.Unlock()

	go func() {
		line, err := s.prompter.Prompt(prompt)

		s.mu.Lock()
		defer s.mu.Unlock()

		s.prompting = false

		if s.shut {
			if err := s.prompter.Close(); err != nil {
				s.log.Errorf("closing prompter: %v", err)
			}

			return
		}

		s.sched.Post(func() {
			s.fire(line, err)
		})
	}()

	return nil
}

// String returns a short description of s.
func (s *Session) String() string {
	if s.closed {
		return "<Readline closed>"
	}

	return "<Readline>"
}

func (s *Session) fire(line string, err error) {
	l := s.listener
	if l == nil {
		return
	}

	s.listener = nil
	s.release()

	if err == nil {
		l(line, nil)

		return
	}

	// An interrupted prompt yields an empty line.
	if errors.Is(err, liner.ErrPromptAborted) {
		l("", nil)

		return
	}

	if errors.Is(err, io.EOF) {
		s.log.Debugf("end of input: %v", err)

		err = fault.New(fault.ClosedResourceError, "end of input")
	} else {
		err = fault.Wrap(fault.IOError, err)
	}

	// End of input or a failed read closes the session.
	if cerr := s.Close(); cerr != nil {
		s.log.Warningf("closing session: %v", cerr)
	}

	l("", err)
}
