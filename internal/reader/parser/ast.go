// Released under an MIT license. See LICENSE.

package parser

import (
	"github.com/michaelmacinnis/quill/internal/type/signature"
	"github.com/michaelmacinnis/quill/internal/type/value"
)

// Node is a node in the syntax tree.
type Node interface {
	Pos() At
}

// At is the source position of a node.
type At struct {
	Line int
	Col  int
}

// Pos returns the position a.
func (a At) Pos() At {
	return a
}

// Param is a declared parameter.
type Param struct {
	Kind signature.Kind
	Name string
	Type string // Empty for any.
}

// Syntax tree nodes.
type (
	Array struct {
		At
		Items []Node
	}

	Assign struct {
		At
		Target Node
		Value  Node
	}

	Attr struct {
		At
		Name   string
		Object Node
	}

	Binary struct {
		At
		Left  Node
		Op    string
		Right Node
	}

	Block struct {
		At
		Stmts []Node
	}

	Call struct {
		At
		Args   []Node
		Callee Node
		Named  []Node
		Names  []string
	}

	Def struct {
		At
		Body   *Block
		Name   string
		Params []Param
	}

	Fn struct {
		At
		Body   *Block
		Params []Param
	}

	Ident struct {
		At
		Name string
	}

	If struct {
		At
		Cond Node
		Else Node // *Block, *If or nil.
		Then *Block
	}

	Index struct {
		At
		Index  Node
		Object Node
	}

	Literal struct {
		At
		Value value.T
	}

	Return struct {
		At
		Value Node // May be nil.
	}

	Try struct {
		At
		Body  *Block
		Catch *Block
		Name  string
	}

	While struct {
		At
		Body *Block
		Cond Node
	}
)
