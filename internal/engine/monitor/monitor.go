// Released under an MIT license. See LICENSE.

// Package monitor provides quill's cooperative scheduler.
//
// Exactly one runner executes at a time, on the goroutine that called Run.
// Other goroutines never touch runners directly. They Post closures, which
// the monitor executes between turns.
package monitor

import (
	"context"
	"sync"

	"github.com/tliron/commonlog"
)

// Runner is something the monitor can schedule.
type Runner interface {
	Run()
}

// T (monitor) holds the ready queue and the queue of posted events.
type T struct {
	log commonlog.Logger

	mu     sync.Mutex
	events []func()
	wake   chan struct{}

	outstanding int
	ready       []Runner
}

type monitor = T

// New creates a monitor.
func New(log commonlog.Logger) *T {
	return &monitor{
		log:  log,
		wake: make(chan struct{}, 1),
	}
}

// Hold records a unit of outstanding external work. The monitor keeps
// running while work is outstanding, even with nothing ready. The returned
// function releases the hold; it may be called from any goroutine and only
// the first call has an effect. Hold must be called from the monitor's
// goroutine.
func (m *monitor) Hold() (release func()) {
	m.outstanding++

	var once sync.Once

	return func() {
		once.Do(func() {
			m.Post(func() {
				m.outstanding--
			})
		})
	}
}

// Outstanding returns the number of unreleased holds.
func (m *monitor) Outstanding() int {
	return m.outstanding
}

// Post queues fn to run on the monitor's goroutine. Post never blocks.
func (m *monitor) Post(fn func()) {
	m.mu.Lock()
	m.events = append(m.events, fn)
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Ready appends r to the ready queue.
func (m *monitor) Ready(r Runner) {
	m.ready = append(m.ready, r)
}

// Run schedules runners until nothing is ready and nothing is outstanding,
// or until ctx is done.
func (m *monitor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.drain()

		if len(m.ready) > 0 {
			r := m.ready[0]
			m.ready[0] = nil
			m.ready = m.ready[1:]

			r.Run()

			continue
		}

		if m.outstanding == 0 {
			return nil
		}

		m.log.Debugf("idle with %d outstanding", m.outstanding)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.wake:
		}
	}
}

func (m *monitor) drain() {
	for {
		m.mu.Lock()
		events := m.events
		m.events = nil
		m.mu.Unlock()

		if len(events) == 0 {
			return
		}

		for _, fn := range events {
			fn()
		}
	}
}
