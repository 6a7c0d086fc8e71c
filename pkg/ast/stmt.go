package ast

import "rono/pkg/token"

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

type StmtBase struct{ Pos_ token.Pos }

func (b StmtBase) Position() token.Pos { return b.Pos_ }
func (StmtBase) stmtNode()             {}

// NewStmtBase builds the embeddable position-carrying base for a statement
// node; used by pkg/parser when constructing nodes outside this package.
func NewStmtBase(pos token.Pos) StmtBase { return StmtBase{Pos_: pos} }

// Block is a brace-delimited statement sequence introducing its own scope.
type Block struct {
	StmtBase
	Stmts []Stmt
}

// VarDecl is `var name: Type = expr` or `let name: Type = expr`
// (spec.md §3 "Declarations"). Mutable distinguishes var from let.
type VarDecl struct {
	StmtBase
	Name    string
	Type    Type // nil when the declared type is inferred from Value
	Value   Expr
	Mutable bool
}

// ListDecl is `list name: T[] = [elems]`, a growable sequence declaration.
type ListDecl struct {
	StmtBase
	Name     string
	ElemType Type
	Elements []Expr
}

// ArrayDecl is `array name: T[N] = [elems]`, a fixed-size declaration.
type ArrayDecl struct {
	StmtBase
	Name     string
	ElemType Type
	Size     int
	Elements []Expr
}

// Assign is `target = expr`. Target is an Ident, FieldAccess, IndexExpr, or
// Deref — anything that resolves to a runtime.Locator. ImplicitDeclare is
// set only for a for-header init clause, where a bare new name is declared
// as a mutable local rather than requiring a prior declaration.
type Assign struct {
	StmtBase
	Target          Expr
	Value           Expr
	ImplicitDeclare bool
}

type If struct {
	StmtBase
	Cond Expr
	Then *Block
	// Else holds either an *If (else-if chain) or a *Block (plain else), or
	// nil when there is no else clause.
	Else Stmt
}

type While struct {
	StmtBase
	Cond Expr
	Body *Block
}

// For is the parenthesized three-clause loop header
// `for (init; cond; step) { body }` (spec.md §4.2). Init is `name = expr`,
// declaring name as a new mutable local if it is not already in scope.
// Step is any simple assignment; the bare-expression sugar `i + 1` (no
// explicit `i =`) is desugared by the parser into `i = i + 1`. The sugar
// applies to any binary expression whose left operand is a bare
// identifier: that identifier is not required to be the loop variable,
// and neither its type nor its mutability is checked by the parser.
type For struct {
	StmtBase
	Init *Assign
	Cond Expr
	Step *Assign
	Body *Block
}

// SwitchCase is one `case v1, v2 { ... }` arm, or the `default { ... }` arm
// when Values is empty and IsDefault is true.
type SwitchCase struct {
	Values    []Expr
	Body      *Block
	IsDefault bool
}

type Switch struct {
	StmtBase
	Subject Expr
	Cases   []SwitchCase
}

// Return is `ret` (bare) or `ret expr`.
type Return struct {
	StmtBase
	Value Expr // nil for a bare ret
}

type Break struct{ StmtBase }

type Continue struct{ StmtBase }

// ExprStmt is an expression evaluated for its side effect, e.g. a bare call.
type ExprStmt struct {
	StmtBase
	X Expr
}
