// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for the quill language.
//
// The lexer adapts the state function approach used by Go's text/template
// lexer and described in detail in Rob Pike's talk "Lexical Scanning in Go".
// See https://talks.golang.org/2011/lex.slide for more information.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Class is a token's class.
type Class int

// Token classes.
const (
	Error Class = iota
	EOF
	Newline
	Ident
	Number
	String
	Punct
)

var classes = [...]string{
	Error:   "error",
	EOF:     "end of input",
	Newline: "newline",
	Ident:   "identifier",
	Number:  "number",
	String:  "string",
	Punct:   "punctuation",
}

func (c Class) String() string {
	return classes[c]
}

// Token is a lexical token.
type Token struct {
	Class Class
	Text  string
	Line  int
	Col   int
}

// Is returns true if t is the punctuation or identifier s.
func (t *Token) Is(s string) bool {
	return (t.Class == Punct || t.Class == Ident) && t.Text == s
}

func (t *Token) String() string {
	switch t.Class {
	case EOF, Newline:
		return t.Class.String()
	case String:
		return "string " + t.Text
	}

	return fmt.Sprintf("%q", t.Text)
}

// T holds the state of the scanner.
type T struct {
	bytes string // Buffer being scanned.
	first int    // Index of the current token's first byte.
	index int    // Index of the current byte.

	line  int // Line of the current byte.
	col   int // Column of the current byte.
	fline int // Line of the current token's first byte.
	fcol  int // Column of the current token's first byte.

	tokens []*Token
}

// Scan returns the tokens in text. The final token is EOF or, if text is
// malformed, an Error token whose text describes the problem.
func Scan(text string) []*Token {
	l := &T{bytes: text, line: 1, col: 1, fline: 1, fcol: 1}

	for state := skipWhitespace; state != nil; {
		state = state(l)
	}

	return l.tokens
}

type action func(*T) action

const eof = -1

// Two-character operators. Any other operator is a single character.
var pairs = map[string]bool{"==": true} //nolint:gochecknoglobals

const singles = "()[]{},:;.=<>+-*~"

func (l *T) emit(c Class, v string) {
	l.tokens = append(l.tokens, &Token{Class: c, Text: v, Line: l.fline, Col: l.fcol})
	l.skip()
}

func (l *T) errorf(format string, args ...any) action {
	l.tokens = append(l.tokens, &Token{
		Class: Error,
		Text:  fmt.Sprintf(format, args...),
		Line:  l.fline,
		Col:   l.fcol,
	})

	return nil
}

func (l *T) next() rune {
	r, w := l.peek()
	if w == 0 {
		return eof
	}

	l.index += w

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *T) peek() (rune, int) {
	if l.index >= len(l.bytes) {
		return eof, 0
	}

	return utf8.DecodeRuneInString(l.bytes[l.index:])
}

func (l *T) skip() {
	l.first = l.index
	l.fline = l.line
	l.fcol = l.col
}

func (l *T) text() string {
	return l.bytes[l.first:l.index]
}

// T states.

func skipWhitespace(l *T) action {
	for {
		r, _ := l.peek()

		switch {
		case r == eof:
			l.emit(EOF, "")

			return nil
		case r == '\n':
			l.next()
			l.emit(Newline, "\n")
		case r == '#':
			return skipComment
		case unicode.IsSpace(r):
			l.next()
			l.skip()
		case r == '"':
			return doubleQuoted
		case r == '\'':
			return singleQuoted
		case unicode.IsDigit(r):
			return number
		case r == '_' || unicode.IsLetter(r):
			return identifier
		default:
			return operator
		}
	}
}

func skipComment(l *T) action {
	for r, _ := l.peek(); r != '\n' && r != eof; r, _ = l.peek() {
		l.next()
	}

	l.skip()

	return skipWhitespace
}

func doubleQuoted(l *T) action {
	l.next()

	for {
		switch l.next() {
		case '\\':
			if l.next() == eof {
				return l.errorf("unterminated string")
			}
		case '"':
			l.emit(String, l.text())

			return skipWhitespace
		case eof:
			return l.errorf("unterminated string")
		}
	}
}

func singleQuoted(l *T) action {
	l.next()

	for {
		switch l.next() {
		case '\'':
			l.emit(String, l.text())

			return skipWhitespace
		case eof:
			return l.errorf("unterminated string")
		}
	}
}

func number(l *T) action {
	digits := func() {
		for r, _ := l.peek(); unicode.IsDigit(r); r, _ = l.peek() {
			l.next()
		}
	}

	digits()

	if r, _ := l.peek(); r == '.' {
		l.next()
		digits()
	}

	if r, _ := l.peek(); r == 'e' || r == 'E' {
		l.next()

		if r, _ := l.peek(); r == '+' || r == '-' {
			l.next()
		}

		digits()
	}

	l.emit(Number, l.text())

	return skipWhitespace
}

func identifier(l *T) action {
	for r, _ := l.peek(); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r); r, _ = l.peek() {
		l.next()
	}

	l.emit(Ident, l.text())

	return skipWhitespace
}

func operator(l *T) action {
	if rest := l.bytes[l.index:]; len(rest) >= 2 && pairs[rest[:2]] {
		l.next()
		l.next()
		l.emit(Punct, l.text())

		return skipWhitespace
	}

	r := l.next()
	if !strings.ContainsRune(singles, r) {
		return l.errorf("unexpected character %q", r)
	}

	l.emit(Punct, l.text())

	return skipWhitespace
}
