// Released under an MIT license. See LICENSE.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/quill/internal/system/process"
)

func write(t *testing.T, text string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "quill.toml")
	require.NoError(t, os.WriteFile(p, []byte(text), 0o600))

	return p
}

func TestDefaultsWhenAbsent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}

	require.Equal(t, process.DefaultMaxOutput, c.Process.MaxOutput)
	require.Equal(t, "> ", c.REPL.Prompt)
}

func TestOverrides(t *testing.T) {
	p := write(t, `
[log]
verbosity = 2
file = "/tmp/quill.log"

[process]
max_output = 1024

[repl]
prompt = "quill> "
`)

	c, err := Load(p)
	require.NoError(t, err)

	want := Default()
	want.Log = Log{File: "/tmp/quill.log", Verbosity: 2}
	want.Process.MaxOutput = 1024
	want.REPL.Prompt = "quill> "
	want.Path = p

	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestMalformed(t *testing.T) {
	_, err := Load(write(t, "[log\nverbosity = "))
	require.ErrorContains(t, err, "parse error")
}

func TestNonPositiveMaxOutput(t *testing.T) {
	c, err := Load(write(t, "[process]\nmax_output = 0\n"))
	require.NoError(t, err)
	require.Equal(t, process.DefaultMaxOutput, c.Process.MaxOutput)
}
