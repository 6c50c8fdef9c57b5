// Released under an MIT license. See LICENSE.

/*
Quill is a small dynamic language for scripting processes.

	p = spawn("ls", "-l")
	wait(p)
	echo(p.stdout)

Language code defines methods that join the same overload sets as the
built-in ones. Threads are cooperative: a thread runs until it waits for a
process, another thread, a line of input, or a timer.

Quill is released under an MIT-style license.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/michaelmacinnis/quill/internal/engine"
	"github.com/michaelmacinnis/quill/internal/engine/boot"
	"github.com/michaelmacinnis/quill/internal/system/config"
	"github.com/michaelmacinnis/quill/internal/system/options"
)

func main() {
	os.Exit(run(os.Args[1:], os.Args[0]))
}

func run(argv []string, name string) int {
	o, err := options.Parse(argv, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 2
	}

	cfg, err := config.Load(o.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 2
	}

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}

	commonlog.Configure(cfg.Log.Verbosity+o.Verbosity, path)

	log := commonlog.GetLogger("quill")
	if cfg.Path != "" {
		log.Infof("configuration loaded from %s", cfg.Path)
	}

	source, err := load(o)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	e := engine.New(engine.Options{
		Args:   o.Args,
		Config: cfg,
		Log:    commonlog.GetLogger("quill.engine"),
	})

	if _, err := e.Evaluate(ctx, source); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)

		return 1
	}

	return 0
}

func load(o *options.T) (string, error) {
	switch {
	case o.Script != "":
		b, err := os.ReadFile(o.Script)
		if err != nil {
			return "", fmt.Errorf("cannot read script: %w", err)
		}

		return string(b), nil
	case o.Command != "":
		return o.Command, nil
	case o.Interactive:
		return boot.Script(), nil
	}

	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("cannot read stdin: %w", err)
	}

	return string(b), nil
}
