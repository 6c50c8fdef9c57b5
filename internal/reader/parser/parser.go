// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for the quill language.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/quill/internal/reader/lexer"
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

// T holds the state of the parser.
type T struct {
	index  int            // Index of the lookahead token.
	nested []string       // Open brackets, innermost last.
	tokens []*lexer.Token // Tokens being parsed.
}

// Parse parses the program text into a block of statements. A malformed
// program yields a CompileError fault.
func Parse(text string) (b *Block, err error) {
	p := &T{tokens: lexer.Scan(text)}

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		f, ok := r.(*fault.T)
		if !ok {
			panic(r)
		}

		b, err = nil, f
	}()

	b = p.statements(At{Line: 1, Col: 1}, lexer.EOF)
	p.expectClass(lexer.EOF)

	return b, nil
}

func (p *T) advance() *lexer.Token {
	t := p.peek()
	p.index++

	switch {
	case t.Is("("), t.Is("["):
		p.nested = append(p.nested, t.Text)
	case t.Is("{"):
		p.nested = append(p.nested, "{")
	case t.Is(")"), t.Is("]"), t.Is("}"):
		if n := len(p.nested); n > 0 {
			p.nested = p.nested[:n-1]
		}
	}

	return t
}

func (p *T) expect(s string) *lexer.Token {
	t := p.peek()
	if !t.Is(s) {
		p.fail(t, "expected %q, found %s", s, t)
	}

	return p.advance()
}

func (p *T) expectClass(c lexer.Class) *lexer.Token {
	t := p.peek()
	if t.Class != c {
		p.fail(t, "expected %s, found %s", c, t)
	}

	return p.advance()
}

func (p *T) fail(t *lexer.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(fault.Newf(fault.CompileError, "%d:%d: %s", t.Line, t.Col, msg))
}

// Newlines are insignificant inside parentheses and square brackets.
func (p *T) insignificant() bool {
	n := len(p.nested)

	return n > 0 && p.nested[n-1] != "{"
}

func (p *T) peek() *lexer.Token {
	for {
		t := p.tokens[p.index]

		switch {
		case t.Class == lexer.Error:
			p.fail(t, "%s", t.Text)
		case t.Class == lexer.Newline && p.insignificant():
			p.index++

			continue
		}

		return t
	}
}

func (p *T) skipNewlines() {
	for t := p.peek(); t.Class == lexer.Newline || t.Is(";"); t = p.peek() {
		p.advance()
	}
}

// Statements.

func (p *T) block() *Block {
	t := p.expect("{")
	b := p.statements(at(t), lexer.Punct)
	p.expect("}")

	return b
}

func (p *T) statements(pos At, end lexer.Class) *Block {
	b := &Block{At: pos}

	for {
		p.skipNewlines()

		t := p.peek()
		if t.Class == end && (end == lexer.EOF || t.Is("}")) {
			return b
		}

		b.Stmts = append(b.Stmts, p.statement())

		t = p.peek()
		if t.Class != lexer.Newline && !t.Is(";") && !t.Is("}") && t.Class != lexer.EOF {
			p.fail(t, "unexpected %s", t)
		}
	}
}

func (p *T) statement() Node {
	t := p.peek()

	if t.Class == lexer.Ident {
		switch t.Text {
		case "def":
			return p.def()
		case "if":
			return p.ifStatement()
		case "return":
			return p.returnStatement()
		case "try":
			return p.tryStatement()
		case "while":
			return p.whileStatement()
		}
	}

	lhs := p.expression()

	if !p.peek().Is("=") {
		return lhs
	}

	eq := p.advance()

	switch lhs.(type) {
	case *Attr, *Ident, *Index:
	default:
		p.fail(eq, "cannot assign to this expression")
	}

	return &Assign{At: at(eq), Target: lhs, Value: p.expression()}
}

func (p *T) def() Node {
	t := p.advance()
	name := p.expectClass(lexer.Ident)
	params := p.params()

	return &Def{At: at(t), Body: p.block(), Name: name.Text, Params: params}
}

func (p *T) ifStatement() Node {
	t := p.advance()
	n := &If{At: at(t), Cond: p.expression(), Then: p.block()}

	if p.peek().Is("else") {
		p.advance()

		if p.peek().Is("if") {
			n.Else = p.ifStatement()
		} else {
			n.Else = p.block()
		}
	}

	return n
}

func (p *T) returnStatement() Node {
	t := p.advance()
	n := &Return{At: at(t)}

	if next := p.peek(); next.Class != lexer.Newline && !next.Is(";") && !next.Is("}") && next.Class != lexer.EOF {
		n.Value = p.expression()
	}

	return n
}

func (p *T) tryStatement() Node {
	t := p.advance()
	body := p.block()

	p.expect("catch")

	name := p.expectClass(lexer.Ident)

	return &Try{At: at(t), Body: body, Catch: p.block(), Name: name.Text}
}

func (p *T) whileStatement() Node {
	t := p.advance()

	return &While{At: at(t), Cond: p.expression(), Body: p.block()}
}

// Expressions.

func (p *T) expression() Node {
	left := p.additive()

	if t := p.peek(); t.Is("<") || t.Is(">") || t.Is("==") {
		p.advance()

		return &Binary{At: at(t), Left: left, Op: t.Text, Right: p.additive()}
	}

	return left
}

func (p *T) additive() Node {
	left := p.multiplicative()

	for t := p.peek(); t.Is("+") || t.Is("-"); t = p.peek() {
		p.advance()

		left = &Binary{At: at(t), Left: left, Op: t.Text, Right: p.multiplicative()}
	}

	return left
}

func (p *T) multiplicative() Node {
	left := p.unary()

	for t := p.peek(); t.Is("*"); t = p.peek() {
		p.advance()

		left = &Binary{At: at(t), Left: left, Op: t.Text, Right: p.unary()}
	}

	return left
}

func (p *T) unary() Node {
	t := p.peek()
	if !t.Is("-") {
		return p.postfix()
	}

	p.advance()

	operand := p.unary()
	if l, ok := operand.(*Literal); ok {
		if n, err := l.Value.AsNum(); err == nil {
			return &Literal{At: at(t), Value: value.Num(-n)}
		}
	}

	zero := &Literal{At: at(t), Value: value.Int(0)}

	return &Binary{At: at(t), Left: zero, Op: "-", Right: operand}
}

func (p *T) postfix() Node {
	n := p.primary()

	for {
		t := p.peek()

		switch {
		case t.Is("("):
			n = p.call(n)
		case t.Is("["):
			p.advance()
			n = &Index{At: at(t), Index: p.expression(), Object: n}
			p.expect("]")
		case t.Is("."):
			p.advance()
			n = &Attr{At: at(t), Name: p.expectClass(lexer.Ident).Text, Object: n}
		default:
			return n
		}
	}
}

func (p *T) call(callee Node) Node {
	t := p.expect("(")
	c := &Call{At: at(t), Callee: callee}

	for !p.peek().Is(")") {
		if len(c.Args)+len(c.Named) > 0 {
			p.expect(",")
		}

		k := p.peek()
		if k.Class == lexer.Ident && p.tokens[p.index+1].Is(":") {
			p.advance()
			p.advance()

			c.Names = append(c.Names, k.Text)
			c.Named = append(c.Named, p.expression())

			continue
		}

		if len(c.Named) > 0 {
			p.fail(k, "positional argument after named argument")
		}

		c.Args = append(c.Args, p.expression())
	}

	p.expect(")")

	return c
}

func (p *T) primary() Node {
	t := p.peek()

	switch t.Class {
	case lexer.Number:
		p.advance()

		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			p.fail(t, "malformed number %s", t.Text)
		}

		return &Literal{At: at(t), Value: value.Num(f)}

	case lexer.String:
		p.advance()

		return &Literal{At: at(t), Value: value.Str(p.unquote(t))}

	case lexer.Ident:
		p.advance()

		switch t.Text {
		case "true":
			return &Literal{At: at(t), Value: value.Boolean(true)}
		case "false":
			return &Literal{At: at(t), Value: value.Boolean(false)}
		case "null":
			return &Literal{At: at(t), Value: value.Nil}
		case "fn":
			params := p.params()

			return &Fn{At: at(t), Body: p.block(), Params: params}
		case "catch", "def", "else", "if", "return", "try", "while":
			p.fail(t, "unexpected %s", t)
		}

		return &Ident{At: at(t), Name: t.Text}
	}

	switch {
	case t.Is("("):
		p.advance()

		n := p.expression()

		p.expect(")")

		return n

	case t.Is("["):
		p.advance()

		a := &Array{At: at(t)}

		for !p.peek().Is("]") {
			if len(a.Items) > 0 {
				p.expect(",")
			}

			a.Items = append(a.Items, p.expression())
		}

		p.expect("]")

		return a
	}

	p.fail(t, "unexpected %s", t)

	return nil
}

func (p *T) params() []Param {
	p.expect("(")

	var ps []Param

	for !p.peek().Is(")") {
		if len(ps) > 0 {
			p.expect(",")
		}

		k := signature.Positional

		switch t := p.peek(); {
		case t.Is("*"):
			p.advance()

			k = signature.RestPositional
		case t.Is("~"):
			p.advance()

			k = signature.Named
		}

		param := Param{Kind: k, Name: p.expectClass(lexer.Ident).Text}

		if k != signature.RestPositional && p.peek().Is(":") {
			p.advance()

			typ := p.expectClass(lexer.Ident)
			if _, ok := value.Lookup(typ.Text); !ok && typ.Text != "any" {
				p.fail(typ, "unknown type %s", typ.Text)
			}

			param.Type = typ.Text
		}

		ps = append(ps, param)
	}

	p.expect(")")

	return ps
}

func (p *T) unquote(t *lexer.Token) string {
	if strings.HasPrefix(t.Text, "'") {
		return t.Text[1 : len(t.Text)-1]
	}

	s, err := strconv.Unquote(t.Text)
	if err != nil {
		p.fail(t, "malformed string %s", t.Text)
	}

	return s
}

func at(t *lexer.Token) At {
	return At{Line: t.Line, Col: t.Col}
}
