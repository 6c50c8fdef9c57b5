// Released under an MIT license. See LICENSE.

package process

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"

	"github.com/michaelmacinnis/quill/internal/engine/monitor"
)

type runner func()

func (r runner) Run() {
	r()
}

func run(t *testing.T, limit int, argv ...string) (*T, int) {
	t.Helper()

	log := commonlog.GetLogger("quill.process")
	m := monitor.New(log)

	var (
		p     *T
		woken int
	)

	m.Ready(runner(func() {
		p = Spawn(m, log, limit, argv)

		p.Wait(func() {
			woken++
			require.True(t, p.Done())
		})
		p.Wait(func() {
			woken++
			require.True(t, p.Done())
		})
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, m.Run(ctx))

	return p, woken
}

func TestEcho(t *testing.T) {
	p, woken := run(t, DefaultMaxOutput, "echo", "hi")

	require.Equal(t, 2, woken)
	require.Equal(t, "done", p.State())

	code, ok := p.ExitCode()
	require.True(t, ok)
	require.Zero(t, code)

	require.Contains(t, p.Stdout(), "hi")
	require.Empty(t, p.Stderr())
	require.NoError(t, p.Err())
	require.Empty(t, p.Signal())
	require.False(t, p.Truncated())
}

func TestExitCodeAndStderr(t *testing.T) {
	p, _ := run(t, DefaultMaxOutput, "sh", "-c", "echo oops >&2; exit 3")

	code, ok := p.ExitCode()
	require.True(t, ok)
	require.Equal(t, 3, code)
	require.Equal(t, "oops\n", p.Stderr())
	require.NoError(t, p.Err())
}

func TestSignal(t *testing.T) {
	p, _ := run(t, DefaultMaxOutput, "sh", "-c", "kill -KILL $$")

	_, ok := p.ExitCode()
	require.False(t, ok)
	require.Equal(t, "SIGKILL", p.Signal())

	v, ok := p.Attribute("exit_code")
	require.True(t, ok)
	require.Nil(t, v)
}

func TestStartFailureIsImmediatelyDone(t *testing.T) {
	p, woken := run(t, DefaultMaxOutput, "/nonexistent/quill-test-binary")

	require.Equal(t, 2, woken)
	require.True(t, p.Done())
	require.Error(t, p.Err())

	_, ok := p.ExitCode()
	require.False(t, ok)

	v, ok := p.Attribute("error")
	require.True(t, ok)
	require.NotEmpty(t, v)
}

func TestOutputIsCapped(t *testing.T) {
	p, _ := run(t, 10, "sh", "-c", "printf '%0100d' 0")

	require.Equal(t, strings.Repeat("0", 10), p.Stdout())
	require.True(t, p.Truncated())

	code, ok := p.ExitCode()
	require.True(t, ok)
	require.Zero(t, code)
}

func TestAttributes(t *testing.T) {
	p, _ := run(t, DefaultMaxOutput, "echo", "a", "b")

	for name, want := range map[string]any{
		"cmd":       "echo",
		"args":      []string{"a", "b"},
		"state":     "done",
		"stdout":    "a b\n",
		"stderr":    "",
		"truncated": false,
		"signal":    nil,
		"error":     nil,
	} {
		got, ok := p.Attribute(name)
		require.True(t, ok, name)
		require.Equal(t, want, got, name)
	}

	_, ok := p.Attribute("bogus")
	require.False(t, ok)
}
