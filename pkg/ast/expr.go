package ast

import "rono/pkg/token"

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

type ExprBase struct{ Pos_ token.Pos }

func (b ExprBase) Position() token.Pos { return b.Pos_ }
func (ExprBase) exprNode()             {}

// NewExprBase builds the embeddable position-carrying base for an
// expression node; used by pkg/parser when constructing nodes outside
// this package.
func NewExprBase(pos token.Pos) ExprBase { return ExprBase{Pos_: pos} }

type IntLit struct {
	ExprBase
	Value int64
}

type FloatLit struct {
	ExprBase
	Value float64
}

type BoolLit struct {
	ExprBase
	Value bool
}

type NilLit struct{ ExprBase }

// StrLit is an interpolated string literal split into alternating literal
// and expression segments (spec.md §4.3).
type StrLit struct {
	ExprBase
	Segments []StringSegment
}

// StringSegment is one piece of an interpolated string: either raw literal
// text, or a parsed sub-expression to be evaluated and stringified.
type StringSegment struct {
	IsExpr bool
	Text   string
	Expr   Expr
}

type Ident struct {
	ExprBase
	Name string
}

type SelfExpr struct{ ExprBase }

// UnaryExpr covers `!expr` and `-expr`.
type UnaryExpr struct {
	ExprBase
	Op      token.Kind // Not or Minus
	Operand Expr
}

// AddrOf is `&expr` — produce a pointer locating expr's storage slot.
type AddrOf struct {
	ExprBase
	Operand Expr
}

// Deref is `*expr` — read (as an rvalue) or write (as an assignment target)
// through a pointer value.
type Deref struct {
	ExprBase
	Operand Expr
}

type BinaryExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// FieldAccess is the `.ident` postfix segment.
type FieldAccess struct {
	ExprBase
	Object Expr
	Field  string
}

// IndexExpr is the `[expr]` postfix segment.
type IndexExpr struct {
	ExprBase
	Object Expr
	Index  Expr
}

// CallExpr is the `(args)` postfix segment. A bare-name call has Callee
// *Ident; a qualified/method call has Callee *FieldAccess, unifying free
// function calls, built-in dispatch, and method dispatch under one node,
// exactly as the postfix chain in spec.md §3/§4.6 describes.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// ConstructorField is one `field = expr` entry in a constructor literal.
type ConstructorField struct {
	Name  string
	Value Expr
}

// ConstructorLit is `TypeName { field = expr, ... }`.
type ConstructorLit struct {
	ExprBase
	TypeName string
	Fields   []ConstructorField
}

// ArrayLit is `[expr, ...]`, used for list/array literals and map values.
type ArrayLit struct {
	ExprBase
	Elements []Expr
}

// MapEntryExpr is one `"key": expr` entry in a map literal.
type MapEntryExpr struct {
	Key   Expr
	Value Expr
}

// MapLit is `{ "k": v, ... }`.
type MapLit struct {
	ExprBase
	Entries []MapEntryExpr
}

