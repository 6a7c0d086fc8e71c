// Package interpreter tree-walks a resolved Module, evaluating the chif
// entry point against an Environment (spec.md §4.6 "Interpreter").
package interpreter

import (
	"fmt"

	"rono/pkg/ast"
	"rono/pkg/builtins"
	"rono/pkg/diag"
	"rono/pkg/runtime"
)

// Interpreter evaluates one resolved module, single-threaded and
// synchronous throughout (spec.md §5 "Concurrency & Resource Model").
type Interpreter struct {
	mod      *runtime.Module
	builtins *builtins.Registry
	file     string
}

// New creates an interpreter bound to a resolved module.
func New(mod *runtime.Module, file string) *Interpreter {
	return &Interpreter{mod: mod, builtins: builtins.New(), file: file}
}

// Run evaluates the module's chif entry point to completion.
func (i *Interpreter) Run() error {
	if i.mod.Chif == nil {
		return fmt.Errorf("no chif entry point declared")
	}
	env := i.mod.Globals.Child()
	_, err := i.execBlock(i.mod.Chif.Body, env)
	if err != nil {
		if _, ok := err.(returnSignal); ok {
			return nil
		}
		return i.wrapRuntimeErr(err, i.mod.Chif)
	}
	return nil
}

// wrapRuntimeErr promotes a bare Go error into a diag.Error tagged with the
// runtime phase, unless it already carries its own diagnostic.
func (i *Interpreter) wrapRuntimeErr(err error, pos ast.Node) error {
	if _, ok := err.(*diag.Error); ok {
		return err
	}
	p := pos.Position()
	return diag.New(diag.Runtime, i.file, p.Line, p.Col, "%s", err.Error())
}

// control-flow signals unwind the Go call stack as error values, the same
// idiom used throughout the reference interpreter this module is built
// from: break/continue/return are not exceptional, but they are cheapest
// to propagate through the existing (Value, error) return shape.

type returnSignal struct{ value runtime.Value }

func (returnSignal) Error() string { return "return outside function" }

type breakSignal struct{}

func (breakSignal) Error() string { return "break outside loop" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue outside loop" }
