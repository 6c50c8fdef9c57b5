// Released under an MIT license. See LICENSE.

// Package fault provides the error kinds raised across quill's native boundary.
package fault

import (
	"errors"
	"fmt"
)

// Kind is the category of a fault. Kinds are visible to language code.
type Kind string

// Fault kinds.
const (
	ArgumentMismatch    Kind = "ArgumentMismatch"
	ClosedResourceError Kind = "ClosedResourceError"
	CompileError        Kind = "CompileError"
	Deadlock            Kind = "Deadlock"
	GuardViolation      Kind = "GuardViolation"
	IOError             Kind = "IOError"
	MissingAttribute    Kind = "MissingAttribute"
	OutOfBounds         Kind = "OutOfBounds"
	ParseError          Kind = "ParseError"
	Raised              Kind = "Raised"
	TypeMismatch        Kind = "TypeMismatch"
)

// T (fault) is an error with a kind. The payload, if set, is the
// language-level value that was raised; it is opaque to this package.
type T struct {
	Kind    Kind
	Message string
	Payload any
}

type fault = T

// New creates a fault of kind k.
func New(k Kind, msg string) *T {
	return &fault{Kind: k, Message: msg}
}

// Newf creates a fault of kind k with a formatted message.
func Newf(k Kind, format string, args ...any) *T {
	return New(k, fmt.Sprintf(format, args...))
}

// Wrap converts err into a fault of kind k unless it already is a fault.
func Wrap(k Kind, err error) *T {
	if err == nil {
		return nil
	}

	if f, ok := As(err); ok {
		return f
	}

	return New(k, err.Error())
}

// As returns the fault in err's chain, if there is one.
func As(err error) (*T, bool) {
	var f *T
	if errors.As(err, &f) {
		return f, true
	}

	return nil, false
}

// Is returns true if err is a fault of kind k.
func Is(err error, k Kind) bool {
	f, ok := As(err)

	return ok && f.Kind == k
}

// Error returns the kind and message of the fault f.
func (f *fault) Error() string {
	return string(f.Kind) + ": " + f.Message
}
