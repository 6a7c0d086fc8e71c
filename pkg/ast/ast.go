// Package ast defines the Rono abstract syntax tree produced by pkg/parser
// and consumed by pkg/resolver and pkg/interpreter.
package ast

import "rono/pkg/token"

// Node is implemented by every AST node so diagnostics can point at a
// precise source location.
type Node interface {
	Position() token.Pos
}

// Program is the parsed contents of a single .rono source file: an ordered
// sequence of top-level items (spec.md §3 "AST").
type Program struct {
	Imports []*Import
	Structs []*StructDecl
	Impls   []*ImplBlock
	Fns     []*FnDecl
	Chif    *ChifDecl // nil for a module that is only ever imported, never run
}

// Import is `import "path"` or `import "path" as alias`.
type Import struct {
	Path     string
	Alias    string
	HasAlias bool
	Pos_     token.Pos
}

func (n *Import) Position() token.Pos { return n.Pos_ }

// FieldDecl is one `name: Type` entry in a struct declaration.
type FieldDecl struct {
	Name string
	Type Type
}

// StructDecl is `struct Name { field: Type, ... }`.
type StructDecl struct {
	Name   string
	Fields []FieldDecl
	Pos_   token.Pos
}

func (n *StructDecl) Position() token.Pos { return n.Pos_ }

// ImplBlock is `fn_for TypeName { fn ... }`.
type ImplBlock struct {
	TypeName string
	Methods  []*FnDecl
	Pos_     token.Pos
}

func (n *ImplBlock) Position() token.Pos { return n.Pos_ }

// Param is one `name: Type` function parameter. A method's first parameter
// may instead be the bare word `self`, recorded via IsSelf.
type Param struct {
	Name   string
	Type   Type
	IsSelf bool
}

// FnDecl is `fn name(params) ReturnType? { body }`.
type FnDecl struct {
	Name       string
	Params     []Param
	ReturnType Type // nil means the omitted return type, i.e. Nil
	Body       *Block
	Pos_       token.Pos
}

func (n *FnDecl) Position() token.Pos { return n.Pos_ }

// HasSelfReceiver reports whether the first parameter is the bare `self`.
func (f *FnDecl) HasSelfReceiver() bool {
	return len(f.Params) > 0 && f.Params[0].IsSelf
}

// ChifDecl is the program entry point, `chif main() { ... }`.
type ChifDecl struct {
	Body *Block
	Pos_ token.Pos
}

func (n *ChifDecl) Position() token.Pos { return n.Pos_ }
