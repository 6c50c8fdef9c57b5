// Released under an MIT license. See LICENSE.

package ui

import (
	"strings"

	"github.com/peterh/liner"
	"github.com/tliron/commonlog"

	"github.com/michaelmacinnis/quill/internal/system/history"
)

// Liner is a Prompter with line editing and history.
type Liner struct {
	history string
	log     commonlog.Logger
	state   *liner.State
}

// NewLiner creates a Liner. If path is not empty history is loaded from
// it now and saved to it on Close.
func NewLiner(log commonlog.Logger, path string) *Liner {
	s := liner.NewLiner()
	s.SetCtrlCAborts(true)

	l := &Liner{
		history: path,
		log:     log,
		state:   s,
	}

	if path != "" {
		if err := history.Load(path, s.ReadHistory); err != nil {
			log.Warningf("%v", err)
		}
	}

	return l
}

// Close saves history and restores the terminal.
func (l *Liner) Close() error {
	if l.history != "" {
		if err := history.Save(l.history, l.state.WriteHistory); err != nil {
			l.log.Warningf("%v", err)
		}
	}

	return l.state.Close()
}

// Prompt writes prompt and returns the next line.
func (l *Liner) Prompt(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}

	return line, nil
}
