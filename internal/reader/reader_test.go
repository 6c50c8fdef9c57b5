// Released under an MIT license. See LICENSE.

package reader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/quill/internal/engine/code"
	"github.com/michaelmacinnis/quill/internal/type/fault"
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

func ops(c *code.T) []code.Op {
	os := make([]code.Op, len(c.Instrs))
	for i, in := range c.Instrs {
		os[i] = in.Op
	}

	return os
}

func TestAssignmentLeavesValue(t *testing.T) {
	c, err := Compile("x = 1 + 2", Options{LeaveValueInStack: true})
	require.NoError(t, err)

	require.Equal(t, []code.Op{
		code.Push, code.Push, code.Call, code.Set, code.Return,
	}, ops(c))
	require.Equal(t, "__add", c.Instrs[2].Name)
	require.Equal(t, "x", c.Instrs[3].Name)
	require.Equal(t, "x = 1 + 2", c.Source)
}

func TestValueDiscardedByDefault(t *testing.T) {
	c, err := Compile("1", Options{})
	require.NoError(t, err)

	require.Equal(t, []code.Op{
		code.Push, code.Pop, code.Push, code.Return,
	}, ops(c))
	require.Equal(t, value.Null, c.Instrs[2].Value.Tag())
}

func TestStatementsArePopped(t *testing.T) {
	c, err := Compile("a\nb; c", Options{LeaveValueInStack: true})
	require.NoError(t, err)

	require.Equal(t, []code.Op{
		code.Get, code.Pop, code.Get, code.Pop, code.Get, code.Return,
	}, ops(c))
	require.Equal(t, 2, c.Instrs[2].Line)
}

func TestCalls(t *testing.T) {
	c, err := Compile(`join(a, sep: ",")`, Options{LeaveValueInStack: true})
	require.NoError(t, err)

	i := c.Instrs[2]
	require.Equal(t, code.Call, i.Op)
	require.Equal(t, "join", i.Name)
	require.Equal(t, 1, i.Argc)
	require.Equal(t, []string{"sep"}, i.Names)

	c, err = Compile("f(1)(2)", Options{LeaveValueInStack: true})
	require.NoError(t, err)
	require.Equal(t, []code.Op{
		code.Push, code.Call, code.Push, code.Apply, code.Return,
	}, ops(c))
}

func TestIndexAndAttr(t *testing.T) {
	c, err := Compile("a[0] = p.stdout", Options{LeaveValueInStack: true})
	require.NoError(t, err)

	names := []string{}
	for _, in := range c.Instrs {
		if in.Op == code.Call {
			names = append(names, in.Name)
		}
	}

	require.Equal(t, []string{"__get_attr", "__set_item"}, names)
}

func TestDef(t *testing.T) {
	c, err := Compile("def f(a: Number, ~k, *rest) { a }", Options{})
	require.NoError(t, err)

	var closure code.Instr
	for _, in := range c.Instrs {
		if in.Op == code.Closure {
			closure = in
		}
	}

	require.Equal(t, "f", closure.Name)

	ps := closure.Params.Params()
	require.Len(t, ps, 3)
	require.Equal(t, signature.Positional, ps[0].Kind)
	require.Equal(t, value.Number, ps[0].Constraint.Tag())
	require.Equal(t, signature.Named, ps[1].Kind)
	require.Equal(t, signature.RestPositional, ps[2].Kind)
	require.Equal(t, code.Get, c.Instrs[closure.IP].Op)

	last := c.Instrs[len(c.Instrs)-4]
	require.Equal(t, "__register_method", last.Name)
	require.Equal(t, 3, last.Argc)
}

func TestControlFlowShapes(t *testing.T) {
	for _, src := range []string{
		"if x { 1 } else if y { 2 } else { 3 }",
		"while x < 10 {\n  x = x + 1\n}",
		"try { boom() } catch e { e.kind }",
		"f = fn(x) { return x * 2 }",
		"a = [1, 2,\n  3]",
		"g(fn() {\n  a = 1\n  b = 2\n})",
		"x = -y + -3",
		`s = "tab\t" + 'raw\n'`,
		"if x {}",
	} {
		_, err := Compile(src, Options{})
		require.NoError(t, err, src)
	}
}

func TestJumpTargetsInRange(t *testing.T) {
	c, err := Compile("while a { if b { 1 } }\ntry { c } catch e { d }", Options{})
	require.NoError(t, err)

	for _, in := range c.Instrs {
		switch in.Op {
		case code.Jump, code.JumpUnless, code.Try, code.Closure:
			require.GreaterOrEqual(t, in.IP, 0)
			require.Less(t, in.IP, len(c.Instrs))
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for src, msg := range map[string]string{
		"x = ":               "1:5",
		"1 = 2":              "cannot assign",
		"f(a: 1, 2)":         "positional argument after named",
		"def f(x: Bogus) {}": "unknown type Bogus",
		"def f(*a, b) {}":    "rest parameter must be last",
		`"open`:              "unterminated string",
		"if x { 1 ":          "end of input",
		"a b":                "unexpected",
		"}":                  "unexpected",
	} {
		_, err := Compile(src, Options{})
		require.True(t, fault.Is(err, fault.CompileError), src)
		require.Contains(t, err.Error(), msg, src)
	}
}
