package interpreter

import (
	"fmt"

	"rono/pkg/ast"
	"rono/pkg/runtime"
)

// execBlock runs a statement sequence in a fresh child scope, stopping and
// propagating the first error (including control-flow signals) unchanged
// (spec.md §4.6 "Block execution").
func (i *Interpreter) execBlock(b *ast.Block, env *runtime.Environment) (runtime.Value, error) {
	inner := env.Child()
	for _, s := range b.Stmts {
		v, err := i.execStmt(s, inner)
		if err != nil {
			switch err.(type) {
			case returnSignal, breakSignal, continueSignal:
			default:
				err = i.wrapRuntimeErr(err, s)
			}
			return v, err
		}
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) execStmt(s ast.Stmt, env *runtime.Environment) (runtime.Value, error) {
	switch st := s.(type) {
	case *ast.VarDecl:
		return i.execVarDecl(st, env)
	case *ast.ListDecl:
		return i.execListDecl(st, env)
	case *ast.ArrayDecl:
		return i.execArrayDecl(st, env)
	case *ast.Assign:
		return runtime.NilValue{}, i.execAssign(st, env)
	case *ast.If:
		return i.execIf(st, env)
	case *ast.While:
		return i.execWhile(st, env)
	case *ast.For:
		return i.execFor(st, env)
	case *ast.Switch:
		return i.execSwitch(st, env)
	case *ast.Return:
		var val runtime.Value = runtime.NilValue{}
		if st.Value != nil {
			v, err := i.eval(st.Value, env)
			if err != nil {
				return nil, err
			}
			val = v
		}
		return nil, returnSignal{value: val}
	case *ast.Break:
		return nil, breakSignal{}
	case *ast.Continue:
		return nil, continueSignal{}
	case *ast.ExprStmt:
		v, err := i.eval(st.X, env)
		return v, err
	case *ast.Block:
		return i.execBlock(st, env)
	default:
		return nil, fmt.Errorf("unhandled statement type %T", s)
	}
}

func (i *Interpreter) execVarDecl(st *ast.VarDecl, env *runtime.Environment) (runtime.Value, error) {
	if env.HasLocal(st.Name) {
		return nil, fmt.Errorf("%q is already declared in this scope", st.Name)
	}
	var v runtime.Value
	if st.Value == nil {
		v = zeroValue(st.Type)
	} else {
		val, err := i.eval(st.Value, env)
		if err != nil {
			return nil, err
		}
		v = val
	}
	env.Define(st.Name, st.Mutable, v, st.Type)
	return runtime.NilValue{}, nil
}

func (i *Interpreter) execListDecl(st *ast.ListDecl, env *runtime.Environment) (runtime.Value, error) {
	if env.HasLocal(st.Name) {
		return nil, fmt.Errorf("%q is already declared in this scope", st.Name)
	}
	elems := make([]runtime.Value, 0, len(st.Elements))
	for _, e := range st.Elements {
		v, err := i.eval(e, env)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	lst := &runtime.ListValue{Elements: elems}
	env.Define(st.Name, true, lst, ast.ListType{Elem: st.ElemType})
	return runtime.NilValue{}, nil
}

func (i *Interpreter) execArrayDecl(st *ast.ArrayDecl, env *runtime.Environment) (runtime.Value, error) {
	if env.HasLocal(st.Name) {
		return nil, fmt.Errorf("%q is already declared in this scope", st.Name)
	}
	elems := make([]runtime.Value, st.Size)
	for idx := range elems {
		elems[idx] = zeroValue(st.ElemType)
	}
	for idx, e := range st.Elements {
		if idx >= st.Size {
			return nil, fmt.Errorf("array %q declared with size %d but given %d elements", st.Name, st.Size, len(st.Elements))
		}
		v, err := i.eval(e, env)
		if err != nil {
			return nil, err
		}
		elems[idx] = v
	}
	arr := &runtime.ArrayValue{Elements: elems, Size: st.Size}
	env.Define(st.Name, true, arr, ast.ArrayType{Elem: st.ElemType, Size: st.Size})
	return runtime.NilValue{}, nil
}

// zeroValue produces the default for a declared type: an array slot's value
// before an initializer supplies an element, and the value of a `var`
// declared without an initializer.
func zeroValue(t ast.Type) runtime.Value {
	switch t.(type) {
	case ast.IntType:
		return runtime.IntValue{}
	case ast.FloatType:
		return runtime.FloatValue{}
	case ast.BoolType:
		return runtime.BoolValue{}
	case ast.StrType:
		return runtime.StrValue{}
	default:
		return runtime.NilValue{}
	}
}

func (i *Interpreter) execAssign(st *ast.Assign, env *runtime.Environment) error {
	v, err := i.eval(st.Value, env)
	if err != nil {
		return err
	}

	if ident, ok := st.Target.(*ast.Ident); ok {
		if st.ImplicitDeclare && env.Resolve(ident.Name) == nil {
			env.Define(ident.Name, true, v, nil)
			return nil
		}
	}

	loc, err := i.lvalue(st.Target, env)
	if err != nil {
		return err
	}
	return loc.Set(v)
}

func (i *Interpreter) execIf(st *ast.If, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.eval(st.Cond, env)
	if err != nil {
		return nil, err
	}
	b, ok := runtime.Truthy(cond)
	if !ok {
		return nil, fmt.Errorf("if condition must be bool, got %s", cond.Kind())
	}
	if b {
		return i.execBlock(st.Then, env)
	}
	switch e := st.Else.(type) {
	case nil:
		return runtime.NilValue{}, nil
	case *ast.If:
		return i.execIf(e, env)
	case *ast.Block:
		return i.execBlock(e, env)
	default:
		return nil, fmt.Errorf("unhandled else clause type %T", st.Else)
	}
}

func (i *Interpreter) execWhile(st *ast.While, env *runtime.Environment) (runtime.Value, error) {
	for {
		cond, err := i.eval(st.Cond, env)
		if err != nil {
			return nil, err
		}
		b, ok := runtime.Truthy(cond)
		if !ok {
			return nil, fmt.Errorf("while condition must be bool, got %s", cond.Kind())
		}
		if !b {
			return runtime.NilValue{}, nil
		}
		_, err = i.execBlock(st.Body, env)
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return runtime.NilValue{}, nil
			case continueSignal:
				continue
			default:
				return nil, err
			}
		}
	}
}

func (i *Interpreter) execFor(st *ast.For, env *runtime.Environment) (runtime.Value, error) {
	loopEnv := env.Child()
	if st.Init != nil {
		if err := i.execAssign(st.Init, loopEnv); err != nil {
			return nil, err
		}
	}
	for {
		if st.Cond != nil {
			cond, err := i.eval(st.Cond, loopEnv)
			if err != nil {
				return nil, err
			}
			b, ok := runtime.Truthy(cond)
			if !ok {
				return nil, fmt.Errorf("for condition must be bool, got %s", cond.Kind())
			}
			if !b {
				return runtime.NilValue{}, nil
			}
		}
		_, err := i.execBlock(st.Body, loopEnv)
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return runtime.NilValue{}, nil
			case continueSignal:
				// fall through to step
			default:
				return nil, err
			}
		}
		if st.Step != nil {
			if err := i.execAssign(st.Step, loopEnv); err != nil {
				return nil, err
			}
		}
	}
}

func (i *Interpreter) execSwitch(st *ast.Switch, env *runtime.Environment) (runtime.Value, error) {
	subj, err := i.eval(st.Subject, env)
	if err != nil {
		return nil, err
	}
	var defaultCase *ast.SwitchCase
	for idx := range st.Cases {
		c := &st.Cases[idx]
		if c.IsDefault {
			defaultCase = c
			continue
		}
		for _, ve := range c.Values {
			cv, err := i.eval(ve, env)
			if err != nil {
				return nil, err
			}
			eq, err := valuesEqual(subj, cv)
			if err != nil {
				return nil, err
			}
			if eq {
				return i.execBlock(c.Body, env)
			}
		}
	}
	if defaultCase != nil {
		return i.execBlock(defaultCase.Body, env)
	}
	return runtime.NilValue{}, nil
}
