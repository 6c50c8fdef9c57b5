// Released under an MIT license. See LICENSE.

// Package reader compiles quill source text into code.
package reader

import (
	"github.com/michaelmacinnis/quill/internal/engine/code"
	"github.com/michaelmacinnis/quill/internal/reader/parser"
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

// Options control compilation.
type Options struct {
	// LeaveValueInStack makes the unit return its last statement's value
	// rather than null.
	LeaveValueInStack bool
}

// Every statement leaves exactly one value on the stack. Conditions are
// coerced with Bool before a conditional jump.
var operators = map[string]string{ //nolint:gochecknoglobals
	"*":  "__mul",
	"+":  "__add",
	"-":  "__sub",
	"<":  "__lt",
	"==": "__eq",
	">":  "__gt",
}

type compiler struct {
	unit *code.T
}

// Compile compiles source into a code unit. Malformed source yields a
// CompileError fault.
func Compile(source string, o Options) (c *code.T, err error) {
	b, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		f, ok := r.(*fault.T)
		if !ok {
			panic(r)
		}

		c, err = nil, f
	}()

	k := &compiler{unit: &code.T{Source: source}}

	k.block(b)

	if !o.LeaveValueInStack {
		k.emit(b, code.Instr{Op: code.Pop})
		k.emit(b, code.Instr{Op: code.Push, Value: value.Nil})
	}

	k.emit(b, code.Instr{Op: code.Return})

	return k.unit, nil
}

func (k *compiler) emit(n parser.Node, i code.Instr) int {
	i.Line = n.Pos().Line
	k.unit.Instrs = append(k.unit.Instrs, i)

	return len(k.unit.Instrs) - 1
}

func (k *compiler) here() int {
	return len(k.unit.Instrs)
}

func (k *compiler) patch(at int) {
	k.unit.Instrs[at].IP = k.here()
}

func (k *compiler) block(b *parser.Block) {
	if len(b.Stmts) == 0 {
		k.emit(b, code.Instr{Op: code.Push, Value: value.Nil})

		return
	}

	for i, s := range b.Stmts {
		if i > 0 {
			k.emit(s, code.Instr{Op: code.Pop})
		}

		k.node(s)
	}
}

func (k *compiler) body(n parser.Node, name string, ps []parser.Param, b *parser.Block) {
	params := k.params(n, ps)

	over := k.emit(n, code.Instr{Op: code.Jump})
	entry := k.here()

	k.block(b)
	k.emit(b, code.Instr{Op: code.Return})
	k.patch(over)

	k.emit(n, code.Instr{Op: code.Closure, Name: name, IP: entry, Params: params})
}

func (k *compiler) condition(n parser.Node) int {
	k.node(n)
	k.emit(n, code.Instr{Op: code.Call, Name: "Bool", Argc: 1})

	return k.emit(n, code.Instr{Op: code.JumpUnless})
}

//nolint:cyclop,funlen
func (k *compiler) node(n parser.Node) {
	switch n := n.(type) {
	case *parser.Array:
		for _, item := range n.Items {
			k.node(item)
		}

		k.emit(n, code.Instr{Op: code.Array, Argc: len(n.Items)})

	case *parser.Assign:
		k.assign(n)

	case *parser.Attr:
		k.node(n.Object)
		k.emit(n, code.Instr{Op: code.Push, Value: value.Str(n.Name)})
		k.emit(n, code.Instr{Op: code.Call, Name: "__get_attr", Argc: 2})

	case *parser.Binary:
		k.node(n.Left)
		k.node(n.Right)
		k.emit(n, code.Instr{Op: code.Call, Name: operators[n.Op], Argc: 2})

	case *parser.Block:
		k.block(n)

	case *parser.Call:
		k.call(n)

	case *parser.Def:
		k.body(n, n.Name, n.Params, n.Body)
		k.emit(n, code.Instr{Op: code.Push, Value: value.Str(n.Name)})
		k.emit(n, code.Instr{Op: code.Push, Value: value.Boolean(true)})
		k.emit(n, code.Instr{Op: code.Call, Name: "__register_method", Argc: 3})

	case *parser.Fn:
		k.body(n, "lambda", n.Params, n.Body)

	case *parser.Ident:
		k.emit(n, code.Instr{Op: code.Get, Name: n.Name})

	case *parser.If:
		otherwise := k.condition(n.Cond)

		k.block(n.Then)

		end := k.emit(n, code.Instr{Op: code.Jump})

		k.patch(otherwise)

		if n.Else != nil {
			k.node(n.Else)
		} else {
			k.emit(n, code.Instr{Op: code.Push, Value: value.Nil})
		}

		k.patch(end)

	case *parser.Index:
		k.node(n.Object)
		k.node(n.Index)
		k.emit(n, code.Instr{Op: code.Call, Name: "__get_item", Argc: 2})

	case *parser.Literal:
		k.emit(n, code.Instr{Op: code.Push, Value: n.Value})

	case *parser.Return:
		if n.Value != nil {
			k.node(n.Value)
		} else {
			k.emit(n, code.Instr{Op: code.Push, Value: value.Nil})
		}

		k.emit(n, code.Instr{Op: code.Return})

	case *parser.Try:
		handler := k.emit(n, code.Instr{Op: code.Try, Name: n.Name})

		k.block(n.Body)
		k.emit(n, code.Instr{Op: code.Untry})

		end := k.emit(n, code.Instr{Op: code.Jump})

		k.patch(handler)
		k.block(n.Catch)
		k.patch(end)

	case *parser.While:
		top := k.here()
		end := k.condition(n.Cond)

		k.block(n.Body)
		k.emit(n, code.Instr{Op: code.Pop})
		k.emit(n, code.Instr{Op: code.Jump, IP: top})
		k.patch(end)
		k.emit(n, code.Instr{Op: code.Push, Value: value.Nil})

	default:
		panic(fault.Newf(fault.CompileError, "%d:%d: cannot compile %T", n.Pos().Line, n.Pos().Col, n))
	}
}

func (k *compiler) assign(n *parser.Assign) {
	switch t := n.Target.(type) {
	case *parser.Attr:
		k.node(t.Object)
		k.emit(n, code.Instr{Op: code.Push, Value: value.Str(t.Name)})
		k.node(n.Value)
		k.emit(n, code.Instr{Op: code.Call, Name: "__set_attr", Argc: 3})

	case *parser.Ident:
		k.node(n.Value)
		k.emit(n, code.Instr{Op: code.Set, Name: t.Name})

	case *parser.Index:
		k.node(t.Object)
		k.node(t.Index)
		k.node(n.Value)
		k.emit(n, code.Instr{Op: code.Call, Name: "__set_item", Argc: 3})
	}
}

func (k *compiler) call(n *parser.Call) {
	ident, direct := n.Callee.(*parser.Ident)
	if !direct {
		k.node(n.Callee)
	}

	for _, a := range n.Args {
		k.node(a)
	}

	for _, a := range n.Named {
		k.node(a)
	}

	i := code.Instr{Op: code.Apply, Argc: len(n.Args), Names: n.Names}
	if direct {
		i.Op = code.Call
		i.Name = ident.Name
	}

	k.emit(n, i)
}

func (k *compiler) params(n parser.Node, ps []parser.Param) signature.T {
	b := signature.New()

	for _, p := range ps {
		c := signature.Any
		if t, ok := value.Lookup(p.Type); ok {
			c = signature.Is(t)
		}

		switch p.Kind {
		case signature.Named:
			b.Named(p.Name, c)
		case signature.Positional:
			b.Positional(p.Name, c)
		case signature.RestPositional:
			b.Rest(p.Name)
		}
	}

	s, err := b.Build()
	if err != nil {
		pos := n.Pos()
		panic(fault.Newf(fault.CompileError, "%d:%d: %v", pos.Line, pos.Col, err))
	}

	return s
}
