// Released under an MIT license. See LICENSE.

// Package history loads and saves line-editing history.
package history

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Path expands a leading "~" in p to the user's home directory.
func Path(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}

	return filepath.Join(home, p[1:])
}

// Load passes the history file at p to read. A missing file is not an error.
func Load(p string, read func(r io.Reader) (int, error)) error {
	f, err := os.Open(Path(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("history: %w", err)
	}
	defer f.Close()

	if _, err = read(f); err != nil {
		return fmt.Errorf("history: reading %s: %w", p, err)
	}

	return nil
}

// Save passes a newly created history file at p to write.
func Save(p string, write func(w io.Writer) (int, error)) error {
	f, err := os.Create(Path(p))
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	_, err = write(f)
	if err != nil {
		f.Close()

		return fmt.Errorf("history: writing %s: %w", p, err)
	}

	return f.Close()
}
