// Released under an MIT license. See LICENSE.

// Package code defines the artifact produced by quill's compiler and
// consumed by its interpreter core.
package code

import (
	"fmt"
	"strings"

	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

// Op is an instruction's operation.
type Op uint8

// Operations.
const (
	Halt Op = iota
	Push
	Pop
	Get
	Set
	Call
	Apply
	Closure
	Jump
	JumpUnless
	Return
	Try
	Untry
	Array
)

var ops = [...]string{
	Halt:       "halt",
	Push:       "push",
	Pop:        "pop",
	Get:        "get",
	Set:        "set",
	Call:       "call",
	Apply:      "apply",
	Closure:    "closure",
	Jump:       "jump",
	JumpUnless: "jump-unless",
	Return:     "return",
	Try:        "try",
	Untry:      "untry",
	Array:      "array",
}

func (o Op) String() string {
	if int(o) < len(ops) {
		return ops[o]
	}

	return fmt.Sprintf("op(%d)", o)
}

// Instr is a single instruction.
//
//	Push       Value            push Value
//	Pop                         discard the top of the stack
//	Get        Name             push the binding for Name
//	Set        Name             bind Name to the top of the stack (left in place)
//	Call       Name Argc Names  call Name with Argc positional and len(Names) named arguments
//	Apply      Argc Names       as Call, with the callee below the arguments
//	Closure    Name IP Params   push a closure whose body starts at IP
//	Jump       IP               continue at IP
//	JumpUnless IP               pop a Bool and continue at IP if it is false
//	Return                      return the top of the stack to the caller
//	Try        Name IP          install a handler at IP binding the raised value to Name
//	Untry                       remove the innermost handler
//	Array      Argc             replace the top Argc values with an Array of them
type Instr struct {
	Op     Op
	Value  value.T
	Name   string
	Argc   int
	Names  []string
	IP     int
	Params signature.T
	Line   int
}

// T (code) is a compiled unit.
type T struct {
	Source string
	Instrs []Instr
}

type unit = T

// Pointer identifies an instruction within a unit.
type Pointer struct {
	Unit *T
	IP   int
}

// String returns a short description of the unit c.
func (c *unit) String() string {
	return fmt.Sprintf("<Code %d>", len(c.Instrs))
}

// Disassemble returns a listing of the instructions in c.
func (c *unit) Disassemble() string {
	var b strings.Builder

	for ip, i := range c.Instrs {
		fmt.Fprintf(&b, "%4d  %-11s", ip, i.Op)

		switch i.Op {
		case Push:
			b.WriteString(" " + i.Value.String())
		case Get, Set:
			b.WriteString(" " + i.Name)
		case Call:
			fmt.Fprintf(&b, " %s %d %v", i.Name, i.Argc, i.Names)
		case Apply:
			fmt.Fprintf(&b, " %d %v", i.Argc, i.Names)
		case Closure:
			fmt.Fprintf(&b, " %s @%d %s", i.Name, i.IP, i.Params)
		case Jump, JumpUnless:
			fmt.Fprintf(&b, " @%d", i.IP)
		case Try:
			fmt.Fprintf(&b, " %s @%d", i.Name, i.IP)
		case Array:
			fmt.Fprintf(&b, " %d", i.Argc)
		}

		b.WriteByte('\n')
	}

	return b.String()
}
