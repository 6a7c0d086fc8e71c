package ast

import "fmt"

// Type is the purely syntactic type grammar recorded by the parser
// (spec.md §3 "AST" Types). No type-checking is performed on it; it is
// carried into runtime for declared-slot bookkeeping and con.in coercion.
type Type interface {
	String() string
}

type IntType struct{}
type FloatType struct{}
type BoolType struct{}
type StrType struct{}
type NilType struct{}

func (IntType) String() string   { return "int" }
func (FloatType) String() string { return "float" }
func (BoolType) String() string  { return "bool" }
func (StrType) String() string   { return "str" }
func (NilType) String() string   { return "nil" }

// NamedType references a user-declared struct type.
type NamedType struct{ Name string }

func (t NamedType) String() string { return t.Name }

// PointerType is the bare type word `pointer`. The parser records it with
// a nil Elem; nothing in the module fills Elem in.
type PointerType struct{ Elem Type }

func (t PointerType) String() string {
	if t.Elem == nil {
		return "pointer"
	}
	return fmt.Sprintf("pointer[%s]", t.Elem)
}

// ArrayType is `T[N]`: a fixed-size, compile-time-known bound.
type ArrayType struct {
	Elem Type
	Size int
}

func (t ArrayType) String() string { return fmt.Sprintf("%s[%d]", t.Elem, t.Size) }

// ListType is `T[]`: a growable sequence.
type ListType struct{ Elem Type }

func (t ListType) String() string { return fmt.Sprintf("%s[]", t.Elem) }

// MapType is `map[K:V]`.
type MapType struct {
	Key   Type
	Value Type
}

func (t MapType) String() string { return fmt.Sprintf("map[%s:%s]", t.Key, t.Value) }
