// Released under an MIT license. See LICENSE.

package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Stream is one of the process's standard streams.
type Stream struct {
	file *os.File
	name string
}

// Standard streams.
//
//nolint:gochecknoglobals
var (
	Stdin  = &Stream{file: os.Stdin, name: "stdin"}
	Stdout = &Stream{file: os.Stdout, name: "stdout"}
	Stderr = &Stream{file: os.Stderr, name: "stderr"}
)

// NewStream wraps f as a stream called name.
func NewStream(name string, f *os.File) *Stream {
	return &Stream{file: f, name: name}
}

// File returns the file underlying s.
func (s *Stream) File() *os.File {
	return s.file
}

// IsTTY returns true if s is a terminal.
func (s *Stream) IsTTY() bool {
	fd := s.file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Name returns the name of the stream s.
func (s *Stream) Name() string {
	return s.name
}

// String returns a short description of s.
func (s *Stream) String() string {
	return "<Stream " + s.name + ">"
}

// Write writes p to s.
func (s *Stream) Write(p []byte) (int, error) {
	return s.file.Write(p)
}
