package runtime

import "rono/pkg/ast"

// MethodKey identifies one entry of the global method table, keyed on
// (receiver-type, method-name) so methods never collide with same-named
// free functions (spec.md §9 "Methods and free functions are distinct
// namespaces").
type MethodKey struct {
	TypeName string
	Method   string
}

// Module is the bottom scope of a resolved source file: struct
// declarations, the method table, free functions, and any namespaces
// bound by aliased imports (spec.md §3 "Environment" — "the bottom scope
// is the module globals").  It is distinct from the variable Environment
// that statements execute against.
type Module struct {
	Structs   map[string]*ast.StructDecl
	Methods   map[MethodKey]*ast.FnDecl
	Functions map[string]*ast.FnDecl
	// Namespaces holds aliased-import bundles, reached as `alias.name`.
	Namespaces map[string]*Module
	Chif       *ast.ChifDecl

	Globals *Environment
}

// NewModule creates an empty module with its global variable scope.
func NewModule() *Module {
	return &Module{
		Structs:    make(map[string]*ast.StructDecl),
		Methods:    make(map[MethodKey]*ast.FnDecl),
		Functions:  make(map[string]*ast.FnDecl),
		Namespaces: make(map[string]*Module),
		Globals:    NewEnvironment(nil),
	}
}

// LookupMethod finds the method declared for (typeName, name), or nil.
func (m *Module) LookupMethod(typeName, name string) *ast.FnDecl {
	return m.Methods[MethodKey{TypeName: typeName, Method: name}]
}

// Merge folds src's declarations into m, later declarations overriding
// earlier ones for the same (kind, name) pair (spec.md §4.4 "Name
// collisions on merge"). Used for unaliased imports.
func (m *Module) Merge(src *Module) {
	for name, decl := range src.Structs {
		m.Structs[name] = decl
	}
	for key, decl := range src.Methods {
		m.Methods[key] = decl
	}
	for name, decl := range src.Functions {
		m.Functions[name] = decl
	}
	for alias, ns := range src.Namespaces {
		m.Namespaces[alias] = ns
	}
}
