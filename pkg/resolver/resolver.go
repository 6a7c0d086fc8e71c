// Package resolver loads a Rono module and recursively resolves its
// imports into merged or aliased namespaces (spec.md §4.4 "Module
// Resolver").
package resolver

import (
	"os"
	"path/filepath"

	"rono/pkg/ast"
	"rono/pkg/diag"
	"rono/pkg/parser"
	"rono/pkg/runtime"
)

// Resolver loads sibling .rono files on demand, tracking in-progress and
// completed loads so cyclic imports terminate safely (spec.md §4.4
// "Cycles").
type Resolver struct {
	// loaded maps an absolute file path to its resolved module.
	loaded map[string]*runtime.Module
	// inProgress marks files currently being resolved, so a cycle yields
	// the partially populated module rather than recursing forever.
	inProgress map[string]*runtime.Module
	errs       []*diag.Error
}

func New() *Resolver {
	return &Resolver{
		loaded:     make(map[string]*runtime.Module),
		inProgress: make(map[string]*runtime.Module),
	}
}

// ResolveFile parses the named entry file and recursively resolves its
// imports, returning the fully merged module.
func (r *Resolver) ResolveFile(path string) (*runtime.Module, []*diag.Error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		r.errs = append(r.errs, diag.New(diag.Resolve, path, 0, 0, "resolve path: %v", err))
		return nil, r.errs
	}
	mod := r.resolve(abs)
	return mod, r.errs
}

func (r *Resolver) resolve(abs string) *runtime.Module {
	if mod, ok := r.loaded[abs]; ok {
		return mod
	}
	if mod, ok := r.inProgress[abs]; ok {
		return mod
	}

	mod := runtime.NewModule()
	r.inProgress[abs] = mod

	src, err := os.ReadFile(abs)
	if err != nil {
		r.errs = append(r.errs, diag.New(diag.Resolve, abs, 0, 0, "import file not found: %v", err))
		delete(r.inProgress, abs)
		r.loaded[abs] = mod
		return mod
	}

	prog, perrs := parser.Parse(abs, string(src))
	r.errs = append(r.errs, perrs...)

	r.populate(mod, prog, filepath.Dir(abs))

	delete(r.inProgress, abs)
	r.loaded[abs] = mod
	return mod
}

// populate fills mod's declaration tables from prog and recursively
// resolves prog's imports, merging or aliasing each into mod.
func (r *Resolver) populate(mod *runtime.Module, prog *ast.Program, baseDir string) {
	for _, s := range prog.Structs {
		mod.Structs[s.Name] = s
	}
	for _, impl := range prog.Impls {
		for _, fn := range impl.Methods {
			mod.Methods[runtime.MethodKey{TypeName: impl.TypeName, Method: fn.Name}] = fn
		}
	}
	for _, fn := range prog.Fns {
		mod.Functions[fn.Name] = fn
	}
	if prog.Chif != nil {
		mod.Chif = prog.Chif
	}

	for _, imp := range prog.Imports {
		importPath := filepath.Join(baseDir, imp.Path+".rono")
		imported := r.resolve(importPath)
		if imp.HasAlias {
			mod.Namespaces[imp.Alias] = imported
		} else {
			mod.Merge(imported)
		}
	}
}

// Errors returns diagnostics accumulated across every file this resolver
// has loaded.
func (r *Resolver) Errors() []*diag.Error { return r.errs }
