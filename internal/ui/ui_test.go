// Released under an MIT license. See LICENSE.

package ui

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"

	"github.com/michaelmacinnis/quill/internal/engine/monitor"
	"github.com/michaelmacinnis/quill/internal/type/fault"
)

type scripted struct {
	closed  atomic.Bool
	lines   []string
	prompts []string
	release chan struct{}
}

func (s *scripted) Close() error {
	s.closed.Store(true)

	return nil
}

func (s *scripted) Prompt(prompt string) (string, error) {
	if s.release != nil {
		<-s.release
	}

	s.prompts = append(s.prompts, prompt)

	if len(s.lines) == 0 {
		return "", io.EOF
	}

	line := s.lines[0]
	s.lines = s.lines[1:]

	return line, nil
}

type runner func()

func (r runner) Run() {
	r()
}

func drive(t *testing.T, m *monitor.T, fn func()) {
	t.Helper()

	m.Ready(runner(fn))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, m.Run(ctx))
}

func TestReadDeliversLinesOnce(t *testing.T) {
	log := commonlog.GetLogger("quill.ui")
	m := monitor.New(log)
	p := &scripted{lines: []string{"first", "second"}}
	s := NewSession(m, log, p)

	var got []string

	drive(t, m, func() {
		require.NoError(t, s.Read("> ", func(line string, err error) {
			require.NoError(t, err)
			got = append(got, line)

			require.NoError(t, s.Read(">> ", func(line string, err error) {
				require.NoError(t, err)
				got = append(got, line)
			}))
		}))

		err := s.Read("x", func(string, error) {})
		require.True(t, fault.Is(err, fault.GuardViolation))
	})

	require.Equal(t, []string{"first", "second"}, got)
	require.Equal(t, []string{"> ", ">> "}, p.prompts)
	require.False(t, s.Closed())
}

func TestEndOfInputCloses(t *testing.T) {
	log := commonlog.GetLogger("quill.ui")
	m := monitor.New(log)
	p := &scripted{}
	s := NewSession(m, log, p)

	var got error

	drive(t, m, func() {
		require.NoError(t, s.Read("> ", func(_ string, err error) {
			got = err
		}))
	})

	require.True(t, fault.Is(got, fault.ClosedResourceError))
	require.True(t, s.Closed())
	require.True(t, p.closed.Load())

	err := s.Read("> ", func(string, error) {})
	require.True(t, fault.Is(err, fault.ClosedResourceError))
}

func TestCloseFailsPendingRead(t *testing.T) {
	log := commonlog.GetLogger("quill.ui")
	m := monitor.New(log)
	p := &scripted{lines: []string{"late"}, release: make(chan struct{})}
	s := NewSession(m, log, p)

	var (
		calls int
		got   error
	)

	drive(t, m, func() {
		require.NoError(t, s.Read("> ", func(_ string, err error) {
			calls++
			got = err
		}))

		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		// The prompt is still blocked so the prompter stays open.
		require.False(t, p.closed.Load())

		close(p.release)
	})

	require.Equal(t, 1, calls)
	require.True(t, fault.Is(got, fault.ClosedResourceError))

	require.Eventually(t, p.closed.Load, time.Second, 10*time.Millisecond)
}

func TestCloseWhileIdle(t *testing.T) {
	log := commonlog.GetLogger("quill.ui")
	m := monitor.New(log)
	p := &scripted{lines: []string{"only"}}
	s := NewSession(m, log, p)

	var got string

	drive(t, m, func() {
		require.NoError(t, s.Read("> ", func(line string, err error) {
			require.NoError(t, err)
			got = line

			require.NoError(t, s.Close())
		}))
	})

	require.Equal(t, "only", got)
	require.True(t, p.closed.Load())
	require.True(t, s.Closed())
}

func TestStream(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stream")
	require.NoError(t, err)

	defer f.Close()

	s := NewStream("out", f)
	require.False(t, s.IsTTY())
	require.Equal(t, "<Stream out>", s.String())

	_, err = s.Write([]byte("hello"))
	require.NoError(t, err)
}
