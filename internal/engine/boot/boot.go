// Released under an MIT license. See LICENSE.

// Package boot provides what is necessary for bootstrapping quill's
// interactive loop.
package boot

import _ "embed" // Blank import required by embed.

//go:embed repl.ql
var script string //nolint:gochecknoglobals

// Script returns the source of the interactive loop.
func Script() string {
	return script
}
