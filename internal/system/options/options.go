// Released under an MIT license. See LICENSE.

// Package options parses quill's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is reported by --version.
const Version = "quill 0.1.0"

const usage = `quill

Usage:
  quill [-v...] [--config=FILE] SCRIPT [ARGUMENTS...]
  quill [-v...] [--config=FILE] -c COMMAND [ARGUMENTS...]
  quill [-v...] [--config=FILE] [-i]
  quill -h | --version

Arguments:
  ARGUMENTS  Bound to ARGV, after the script name.
  SCRIPT     Path to a quill script.

Options:
  -c, --command=COMMAND  Run the specified command.
  --config=FILE          Read configuration from FILE.
  -i, --interactive      Run the interactive loop even if stdin is not a TTY.
  -v, --verbose          Increase logging verbosity. May be repeated.
  -h, --help             Display this help.
  --version              Print quill's version.

With no script and no command, quill runs its interactive loop when stdin
is a TTY. Otherwise, it reads stdin whole and runs it as a script.
`

// T (options) holds the parsed command line.
type T struct {
	Args        []string
	Command     string
	Config      string
	Interactive bool
	Script      string
	Verbosity   int
}

// Parse parses argv, which excludes the program name. Help and version
// requests print and exit.
func Parse(argv []string, name string) (*T, error) {
	opts, err := docopt.ParseArgs(usage, argv, Version)
	if err != nil {
		return nil, err
	}

	o := &T{}

	o.Command, _ = opts.String("--command")
	o.Config, _ = opts.String("--config")
	o.Script, _ = opts.String("SCRIPT")
	// A counted flag is an int; Int would try to parse it as a string.
	o.Verbosity, _ = opts["--verbose"].(int)

	args, _ := opts["ARGUMENTS"].([]string)

	switch {
	case o.Script != "":
		name = o.Script
	case o.Command == "":
		o.Interactive, _ = opts.Bool("--interactive")
		o.Interactive = o.Interactive || isatty.IsTerminal(os.Stdin.Fd())
	}

	o.Args = append([]string{name}, args...)

	return o, nil
}
