// Released under an MIT license. See LICENSE.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	require.Equal(t, 0, run([]string{"-c", "x = 1 + 1"}, "quill"))
	require.Equal(t, 1, run([]string{"-c", "__throw(1)"}, "quill"))
	require.Equal(t, 1, run([]string{"-c", "("}, "quill"))
}

func TestScript(t *testing.T) {
	dir := t.TempDir()

	script := filepath.Join(dir, "args.ql")
	require.NoError(t, os.WriteFile(script, []byte(`
if len(ARGV) == 3 {
	null
} else {
	__throw(ARGV)
}
`), 0o600))

	require.Equal(t, 0, run([]string{script, "a", "b"}, "quill"))
	require.Equal(t, 1, run([]string{script}, "quill"))
	require.Equal(t, 1, run([]string{filepath.Join(dir, "missing.ql")}, "quill"))
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := filepath.Join(dir, "quill.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[repl]\nprompt = \"$ \"\n"), 0o600))

	require.Equal(t, 0, run([]string{"--config=" + cfg, "-c", `if PROMPT == "$ " { null } else { __throw(PROMPT) }`}, "quill"))
	require.Equal(t, 2, run([]string{"--config=" + filepath.Join(dir, "missing.toml"), "-c", "1"}, "quill"))
}
