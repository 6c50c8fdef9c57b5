// Released under an MIT license. See LICENSE.

// Package config loads quill's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/michaelmacinnis/quill/internal/system/process"
)

// Name is the name of the configuration file in the user's home directory.
const Name = ".quill.toml"

// T (config) is quill's configuration.
type T struct {
	Log     Log     `toml:"log"`
	Process Process `toml:"process"`
	REPL    REPL    `toml:"repl"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Log configures logging.
type Log struct {
	File      string `toml:"file"`
	Verbosity int    `toml:"verbosity"`
}

// Process configures the process bridge.
type Process struct {
	MaxOutput int `toml:"max_output"`
}

// REPL configures the interactive loop.
type REPL struct {
	History string `toml:"history"`
	Prompt  string `toml:"prompt"`
}

// Default returns the configuration used when no file is present.
func Default() *T {
	return &T{
		Process: Process{MaxOutput: process.DefaultMaxOutput},
		REPL: REPL{
			History: "~/.quill_history",
			Prompt:  "> ",
		},
	}
}

// Load reads the configuration at path. If path is empty the file Name in
// the user's home directory is used, and its absence is not an error.
func Load(path string) (*T, error) {
	optional := path == ""
	if optional {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil //nolint:nilerr
		}

		path = filepath.Join(home, Name)
	}

	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}

		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	if c.Process.MaxOutput <= 0 {
		c.Process.MaxOutput = process.DefaultMaxOutput
	}

	c.Path = path

	return c, nil
}
