// Released under an MIT license. See LICENSE.

package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	o, err := Parse([]string{"-vv", "build.ql", "a", "b"}, "quill")
	require.NoError(t, err)

	require.Equal(t, "build.ql", o.Script)
	require.Equal(t, 2, o.Verbosity)
	require.Equal(t, []string{"build.ql", "a", "b"}, o.Args)
	require.False(t, o.Interactive)
}

func TestCommand(t *testing.T) {
	o, err := Parse([]string{"--config=q.toml", "-c", `echo("hi")`, "x"}, "quill")
	require.NoError(t, err)

	require.Equal(t, `echo("hi")`, o.Command)
	require.Equal(t, "q.toml", o.Config)
	require.Equal(t, []string{"quill", "x"}, o.Args)
	require.False(t, o.Interactive)
}

func TestInteractive(t *testing.T) {
	o, err := Parse([]string{"-i"}, "quill")
	require.NoError(t, err)

	require.True(t, o.Interactive)
	require.Equal(t, []string{"quill"}, o.Args)
}

func TestVerbosity(t *testing.T) {
	for argv, n := range map[string]int{"": 0, "-v": 1, "-vvv": 3} {
		args := []string{"build.ql"}
		if argv != "" {
			args = append([]string{argv}, args...)
		}

		o, err := Parse(args, "quill")
		require.NoError(t, err)
		require.Equal(t, n, o.Verbosity, argv)
	}
}
