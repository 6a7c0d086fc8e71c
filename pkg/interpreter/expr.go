package interpreter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"rono/pkg/ast"
	"rono/pkg/runtime"
	"rono/pkg/token"
)

func (i *Interpreter) eval(e ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch ex := e.(type) {
	case *ast.IntLit:
		return runtime.IntValue{Val: ex.Value}, nil
	case *ast.FloatLit:
		return runtime.FloatValue{Val: ex.Value}, nil
	case *ast.BoolLit:
		return runtime.BoolValue{Val: ex.Value}, nil
	case *ast.NilLit:
		return runtime.NilValue{}, nil
	case *ast.StrLit:
		return i.evalStrLit(ex, env)
	case *ast.Ident:
		v, err := env.Get(ex.Name)
		if err != nil {
			if fn, ok := i.mod.Functions[ex.Name]; ok {
				return &runtime.FnValue{Decl: fn}, nil
			}
			return nil, err
		}
		return v, nil
	case *ast.SelfExpr:
		return env.Get("self")
	case *ast.UnaryExpr:
		return i.evalUnary(ex, env)
	case *ast.AddrOf:
		loc, err := i.lvalue(ex.Operand, env)
		if err != nil {
			return nil, err
		}
		return runtime.PointerValue{Loc: loc}, nil
	case *ast.Deref:
		v, err := i.eval(ex.Operand, env)
		if err != nil {
			return nil, err
		}
		ptr, ok := v.(runtime.PointerValue)
		if !ok {
			return nil, fmt.Errorf("cannot dereference non-pointer value (%s)", v.Kind())
		}
		return ptr.Loc.Get()
	case *ast.BinaryExpr:
		return i.evalBinary(ex, env)
	case *ast.FieldAccess:
		return i.evalFieldAccess(ex, env)
	case *ast.IndexExpr:
		return i.evalIndex(ex, env)
	case *ast.CallExpr:
		return i.evalCall(ex, env)
	case *ast.ConstructorLit:
		return i.evalConstructor(ex, env)
	case *ast.ArrayLit:
		return i.evalArrayLit(ex, env)
	case *ast.MapLit:
		return i.evalMapLit(ex, env)
	default:
		return nil, fmt.Errorf("unhandled expression type %T", e)
	}
}

// lvalue resolves e to the Locator it names, for `&e` and assignment targets
// (spec.md §4.5 "Value Model & Mutation").
func (i *Interpreter) lvalue(e ast.Expr, env *runtime.Environment) (runtime.Locator, error) {
	switch ex := e.(type) {
	case *ast.Ident:
		slot := env.Resolve(ex.Name)
		if slot == nil {
			return nil, fmt.Errorf("undefined identifier %q", ex.Name)
		}
		return runtime.SlotLocator{Slot: slot}, nil
	case *ast.FieldAccess:
		obj, err := i.eval(ex.Object, env)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*runtime.StructInstance)
		if !ok {
			return nil, fmt.Errorf("cannot take the address of field %q on non-struct value (%s)", ex.Field, obj.Kind())
		}
		return runtime.FieldLocator{Inst: inst, Field: ex.Field}, nil
	case *ast.IndexExpr:
		obj, err := i.eval(ex.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := i.eval(ex.Index, env)
		if err != nil {
			return nil, err
		}
		switch c := obj.(type) {
		case *runtime.ListValue:
			n, ok := idx.(runtime.IntValue)
			if !ok {
				return nil, fmt.Errorf("list index must be int")
			}
			return runtime.ListIndexLocator{List: c, Index: int(n.Val)}, nil
		case *runtime.ArrayValue:
			n, ok := idx.(runtime.IntValue)
			if !ok {
				return nil, fmt.Errorf("array index must be int")
			}
			return runtime.ArrayIndexLocator{Array: c, Index: int(n.Val)}, nil
		case *runtime.MapValue:
			k, ok := idx.(runtime.StrValue)
			if !ok {
				return nil, fmt.Errorf("map key must be str")
			}
			return runtime.MapKeyLocator{Map: c, Key: k.Val}, nil
		default:
			return nil, fmt.Errorf("cannot index into value of kind %s", obj.Kind())
		}
	case *ast.Deref:
		v, err := i.eval(ex.Operand, env)
		if err != nil {
			return nil, err
		}
		ptr, ok := v.(runtime.PointerValue)
		if !ok {
			return nil, fmt.Errorf("cannot dereference non-pointer value (%s)", v.Kind())
		}
		return ptr.Loc, nil
	default:
		return nil, fmt.Errorf("expression of type %T is not assignable", e)
	}
}

func (i *Interpreter) evalStrLit(sl *ast.StrLit, env *runtime.Environment) (runtime.Value, error) {
	var b strings.Builder
	for _, seg := range sl.Segments {
		if !seg.IsExpr {
			b.WriteString(seg.Text)
			continue
		}
		v, err := i.eval(seg.Expr, env)
		if err != nil {
			return nil, err
		}
		b.WriteString(runtime.Format(v))
	}
	return runtime.StrValue{Val: b.String()}, nil
}

func (i *Interpreter) evalUnary(ue *ast.UnaryExpr, env *runtime.Environment) (runtime.Value, error) {
	v, err := i.eval(ue.Operand, env)
	if err != nil {
		return nil, err
	}
	switch ue.Op {
	case token.Not:
		b, ok := runtime.Truthy(v)
		if !ok {
			return nil, fmt.Errorf("operand of ! must be bool, got %s", v.Kind())
		}
		return runtime.BoolValue{Val: !b}, nil
	case token.Minus:
		switch val := v.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Val: -val.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -val.Val}, nil
		default:
			return nil, fmt.Errorf("operand of unary - must be int or float, got %s", v.Kind())
		}
	default:
		return nil, fmt.Errorf("unhandled unary operator %s", ue.Op)
	}
}

func (i *Interpreter) evalBinary(be *ast.BinaryExpr, env *runtime.Environment) (runtime.Value, error) {
	if be.Op == token.And || be.Op == token.Or {
		left, err := i.eval(be.Left, env)
		if err != nil {
			return nil, err
		}
		lb, ok := runtime.Truthy(left)
		if !ok {
			return nil, fmt.Errorf("operand of %s must be bool, got %s", be.Op, left.Kind())
		}
		if be.Op == token.And && !lb {
			return runtime.BoolValue{Val: false}, nil
		}
		if be.Op == token.Or && lb {
			return runtime.BoolValue{Val: true}, nil
		}
		right, err := i.eval(be.Right, env)
		if err != nil {
			return nil, err
		}
		rb, ok := runtime.Truthy(right)
		if !ok {
			return nil, fmt.Errorf("operand of %s must be bool, got %s", be.Op, right.Kind())
		}
		return runtime.BoolValue{Val: rb}, nil
	}

	left, err := i.eval(be.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(be.Right, env)
	if err != nil {
		return nil, err
	}

	switch be.Op {
	case token.Eq:
		eq, err := valuesEqual(left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: eq}, nil
	case token.NotEq:
		eq, err := valuesEqual(left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !eq}, nil
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return compareValues(be.Op, left, right)
	case token.Plus:
		if ls, ok := left.(runtime.StrValue); ok {
			rs, ok := right.(runtime.StrValue)
			if !ok {
				return nil, fmt.Errorf("cannot add str and %s", right.Kind())
			}
			return runtime.StrValue{Val: ls.Val + rs.Val}, nil
		}
		return arith(be.Op, left, right)
	case token.Minus, token.Star, token.Slash, token.Percent:
		return arith(be.Op, left, right)
	default:
		return nil, fmt.Errorf("unhandled binary operator %s", be.Op)
	}
}

// arith implements +, -, *, /, % with int/float promotion: an int paired
// with a float promotes to float (spec.md §4.6 "Arithmetic").
func arith(op token.Kind, left, right runtime.Value) (runtime.Value, error) {
	if li, ok := left.(runtime.IntValue); ok {
		if ri, ok := right.(runtime.IntValue); ok {
			switch op {
			case token.Plus:
				return runtime.IntValue{Val: li.Val + ri.Val}, nil
			case token.Minus:
				return runtime.IntValue{Val: li.Val - ri.Val}, nil
			case token.Star:
				return runtime.IntValue{Val: li.Val * ri.Val}, nil
			case token.Slash:
				if ri.Val == 0 {
					return nil, fmt.Errorf("division by zero")
				}
				return runtime.IntValue{Val: li.Val / ri.Val}, nil
			case token.Percent:
				if ri.Val == 0 {
					return nil, fmt.Errorf("division by zero")
				}
				return runtime.IntValue{Val: li.Val % ri.Val}, nil
			}
		}
	}
	lf, lok := asFloatOperand(left)
	rf, rok := asFloatOperand(right)
	if !lok || !rok {
		return nil, fmt.Errorf("arithmetic requires int or float operands, got %s and %s", left.Kind(), right.Kind())
	}
	switch op {
	case token.Plus:
		return runtime.FloatValue{Val: lf + rf}, nil
	case token.Minus:
		return runtime.FloatValue{Val: lf - rf}, nil
	case token.Star:
		return runtime.FloatValue{Val: lf * rf}, nil
	case token.Slash:
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return runtime.FloatValue{Val: lf / rf}, nil
	case token.Percent:
		return nil, fmt.Errorf("%% is not defined for float operands")
	}
	return nil, fmt.Errorf("unhandled arithmetic operator %s", op)
}

func asFloatOperand(v runtime.Value) (float64, bool) {
	switch val := v.(type) {
	case runtime.IntValue:
		return float64(val.Val), true
	case runtime.FloatValue:
		return val.Val, true
	default:
		return 0, false
	}
}

func compareValues(op token.Kind, left, right runtime.Value) (runtime.Value, error) {
	if lf, lok := asFloatOperand(left); lok {
		if rf, rok := asFloatOperand(right); rok {
			switch op {
			case token.Lt:
				return runtime.BoolValue{Val: lf < rf}, nil
			case token.LtEq:
				return runtime.BoolValue{Val: lf <= rf}, nil
			case token.Gt:
				return runtime.BoolValue{Val: lf > rf}, nil
			case token.GtEq:
				return runtime.BoolValue{Val: lf >= rf}, nil
			}
		}
	}
	if ls, ok := left.(runtime.StrValue); ok {
		if rs, ok := right.(runtime.StrValue); ok {
			switch op {
			case token.Lt:
				return runtime.BoolValue{Val: ls.Val < rs.Val}, nil
			case token.LtEq:
				return runtime.BoolValue{Val: ls.Val <= rs.Val}, nil
			case token.Gt:
				return runtime.BoolValue{Val: ls.Val > rs.Val}, nil
			case token.GtEq:
				return runtime.BoolValue{Val: ls.Val >= rs.Val}, nil
			}
		}
	}
	return nil, fmt.Errorf("cannot compare %s and %s", left.Kind(), right.Kind())
}

// valuesEqual implements == and switch-case matching (spec.md §4.6
// "Equality"): scalars compare by value (int/float compare numerically
// across kinds), heap cells and pointers compare by identity.
func valuesEqual(left, right runtime.Value) (bool, error) {
	switch l := left.(type) {
	case runtime.IntValue:
		if r, ok := right.(runtime.IntValue); ok {
			return l.Val == r.Val, nil
		}
		if r, ok := right.(runtime.FloatValue); ok {
			return float64(l.Val) == r.Val, nil
		}
		return false, nil
	case runtime.FloatValue:
		if r, ok := right.(runtime.FloatValue); ok {
			return l.Val == r.Val, nil
		}
		if r, ok := right.(runtime.IntValue); ok {
			return l.Val == float64(r.Val), nil
		}
		return false, nil
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val, nil
	case runtime.StrValue:
		r, ok := right.(runtime.StrValue)
		return ok && l.Val == r.Val, nil
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok, nil
	case *runtime.StructInstance:
		r, ok := right.(*runtime.StructInstance)
		return ok && l == r, nil
	case *runtime.ListValue:
		r, ok := right.(*runtime.ListValue)
		return ok && l == r, nil
	case *runtime.ArrayValue:
		r, ok := right.(*runtime.ArrayValue)
		return ok && l == r, nil
	case *runtime.MapValue:
		r, ok := right.(*runtime.MapValue)
		return ok && l == r, nil
	case runtime.PointerValue:
		r, ok := right.(runtime.PointerValue)
		return ok && l.Loc == r.Loc, nil
	default:
		return false, fmt.Errorf("cannot compare values of kind %s", left.Kind())
	}
}

func (i *Interpreter) evalFieldAccess(fa *ast.FieldAccess, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.eval(fa.Object, env)
	if err != nil {
		return nil, err
	}
	return i.readField(obj, fa.Field)
}

func (i *Interpreter) readField(obj runtime.Value, field string) (runtime.Value, error) {
	switch o := obj.(type) {
	case *runtime.StructInstance:
		v, ok := o.Fields[field]
		if !ok {
			return nil, fmt.Errorf("unknown field %q on %s", field, o.TypeName)
		}
		return v, nil
	case runtime.PointerValue:
		target, err := o.Loc.Get()
		if err != nil {
			return nil, err
		}
		return i.readField(target, field)
	default:
		return nil, fmt.Errorf("cannot access field %q on value of kind %s", field, obj.Kind())
	}
}

func (i *Interpreter) evalIndex(ie *ast.IndexExpr, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.eval(ie.Object, env)
	if err != nil {
		return nil, err
	}
	idx, err := i.eval(ie.Index, env)
	if err != nil {
		return nil, err
	}
	switch c := obj.(type) {
	case *runtime.ListValue:
		n, ok := idx.(runtime.IntValue)
		if !ok {
			return nil, fmt.Errorf("list index must be int")
		}
		loc := runtime.ListIndexLocator{List: c, Index: int(n.Val)}
		return loc.Get()
	case *runtime.ArrayValue:
		n, ok := idx.(runtime.IntValue)
		if !ok {
			return nil, fmt.Errorf("array index must be int")
		}
		loc := runtime.ArrayIndexLocator{Array: c, Index: int(n.Val)}
		return loc.Get()
	case *runtime.MapValue:
		k, ok := idx.(runtime.StrValue)
		if !ok {
			return nil, fmt.Errorf("map key must be str")
		}
		loc := runtime.MapKeyLocator{Map: c, Key: k.Val}
		return loc.Get()
	case runtime.StrValue:
		n, ok := idx.(runtime.IntValue)
		if !ok {
			return nil, fmt.Errorf("str index must be int")
		}
		runes := []rune(c.Val)
		if n.Val < 0 || int(n.Val) >= len(runes) {
			return nil, fmt.Errorf("index %d out of range (len %d)", n.Val, len(runes))
		}
		return runtime.StrValue{Val: string(runes[n.Val])}, nil
	default:
		return nil, fmt.Errorf("cannot index into value of kind %s", obj.Kind())
	}
}

func (i *Interpreter) evalConstructor(cl *ast.ConstructorLit, env *runtime.Environment) (runtime.Value, error) {
	decl, ok := i.mod.Structs[cl.TypeName]
	if !ok {
		return nil, fmt.Errorf("unknown struct type %q", cl.TypeName)
	}
	order := make([]string, len(decl.Fields))
	for idx, f := range decl.Fields {
		order[idx] = f.Name
	}
	inst := runtime.NewStructInstance(cl.TypeName, order)
	given := make(map[string]bool, len(cl.Fields))
	for _, cf := range cl.Fields {
		if !fieldExists(decl, cf.Name) {
			return nil, fmt.Errorf("unknown field %q on struct %s", cf.Name, cl.TypeName)
		}
		v, err := i.eval(cf.Value, env)
		if err != nil {
			return nil, err
		}
		inst.Fields[cf.Name] = v
		given[cf.Name] = true
	}
	for _, f := range decl.Fields {
		if !given[f.Name] {
			return nil, fmt.Errorf("missing field %q in constructor for %s", f.Name, cl.TypeName)
		}
	}
	return inst, nil
}

func fieldExists(decl *ast.StructDecl, name string) bool {
	for _, f := range decl.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (i *Interpreter) evalArrayLit(al *ast.ArrayLit, env *runtime.Environment) (runtime.Value, error) {
	elems := make([]runtime.Value, 0, len(al.Elements))
	for _, e := range al.Elements {
		v, err := i.eval(e, env)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return &runtime.ListValue{Elements: elems}, nil
}

func (i *Interpreter) evalMapLit(ml *ast.MapLit, env *runtime.Environment) (runtime.Value, error) {
	m := runtime.NewMapValue()
	for _, entry := range ml.Entries {
		k, err := i.eval(entry.Key, env)
		if err != nil {
			return nil, err
		}
		ks, ok := k.(runtime.StrValue)
		if !ok {
			return nil, fmt.Errorf("map key must be str, got %s", k.Kind())
		}
		v, err := i.eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		m.Set(ks.Val, v)
	}
	return m, nil
}

func (i *Interpreter) evalArgs(exprs []ast.Expr, env *runtime.Environment) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, e := range exprs {
		v, err := i.eval(e, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// evalCall dispatches a postfix call chain to a built-in, a free function,
// a namespaced (aliased-import) function, or a method, in that priority
// order (spec.md §4.6 "Built-in dispatch").
func (i *Interpreter) evalCall(ce *ast.CallExpr, env *runtime.Environment) (runtime.Value, error) {
	switch callee := ce.Callee.(type) {
	case *ast.Ident:
		if bf, ok := i.builtins.Lookup(callee.Name); ok {
			args, err := i.evalArgs(ce.Args, env)
			if err != nil {
				return nil, err
			}
			return bf.Fn(args)
		}
		if fn, ok := i.mod.Functions[callee.Name]; ok {
			args, err := i.evalArgs(ce.Args, env)
			if err != nil {
				return nil, err
			}
			return i.callFn(fn, args, nil)
		}
		if slot := env.Resolve(callee.Name); slot != nil {
			if fv, ok := slot.Value.(*runtime.FnValue); ok {
				args, err := i.evalArgs(ce.Args, env)
				if err != nil {
					return nil, err
				}
				return i.callFn(fv.Decl, args, nil)
			}
		}
		return nil, fmt.Errorf("undefined function %q", callee.Name)

	case *ast.FieldAccess:
		if ident, ok := callee.Object.(*ast.Ident); ok {
			qualified := ident.Name + "." + callee.Field
			if bf, ok := i.builtins.Lookup(qualified); ok {
				args, err := i.evalArgs(ce.Args, env)
				if err != nil {
					return nil, err
				}
				return bf.Fn(args)
			}
			if ns, ok := i.mod.Namespaces[ident.Name]; ok {
				fn, ok := ns.Functions[callee.Field]
				if !ok {
					return nil, fmt.Errorf("undefined function %q in namespace %q", callee.Field, ident.Name)
				}
				args, err := i.evalArgs(ce.Args, env)
				if err != nil {
					return nil, err
				}
				sub := &Interpreter{mod: ns, builtins: i.builtins, file: i.file}
				return sub.callFn(fn, args, nil)
			}
		}
		return i.evalMethodCall(callee, ce.Args, env)

	default:
		v, err := i.eval(ce.Callee, env)
		if err != nil {
			return nil, err
		}
		fv, ok := v.(*runtime.FnValue)
		if !ok {
			return nil, fmt.Errorf("expression of type %T is not callable", ce.Callee)
		}
		args, err := i.evalArgs(ce.Args, env)
		if err != nil {
			return nil, err
		}
		return i.callFn(fv.Decl, args, nil)
	}
}

// evalMethodCall handles `receiver.name(args)` where receiver is an
// arbitrary expression: a user method on a struct, or a built-in collection
// intrinsic (len/add/addAt/del) per spec.md §4.6's postfix-chain table.
func (i *Interpreter) evalMethodCall(fa *ast.FieldAccess, argExprs []ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	recv, err := i.eval(fa.Object, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evalArgs(argExprs, env)
	if err != nil {
		return nil, err
	}
	return i.dispatchMethod(recv, fa.Field, args)
}

func (i *Interpreter) dispatchMethod(recv runtime.Value, name string, args []runtime.Value) (runtime.Value, error) {
	switch r := recv.(type) {
	case *runtime.StructInstance:
		method := i.mod.LookupMethod(r.TypeName, name)
		if method == nil {
			return nil, fmt.Errorf("unknown method %q on %s", name, r.TypeName)
		}
		return i.callFn(method, args, r)
	case *runtime.ListValue:
		return listIntrinsic(r, name, args)
	case *runtime.ArrayValue:
		return arrayIntrinsic(r, name, args)
	case *runtime.MapValue:
		return mapIntrinsic(r, name, args)
	case runtime.StrValue:
		return strIntrinsic(r, name, args)
	case runtime.PointerValue:
		target, err := r.Loc.Get()
		if err != nil {
			return nil, err
		}
		return i.dispatchMethod(target, name, args)
	default:
		return nil, fmt.Errorf("cannot call method %q on value of kind %s", name, recv.Kind())
	}
}

func listIntrinsic(l *runtime.ListValue, name string, args []runtime.Value) (runtime.Value, error) {
	switch name {
	case "len":
		return runtime.IntValue{Val: int64(len(l.Elements))}, nil
	case "add":
		if len(args) != 1 {
			return nil, fmt.Errorf("add expects 1 argument, got %d", len(args))
		}
		l.Elements = append(l.Elements, args[0])
		return runtime.NilValue{}, nil
	case "addAt":
		if len(args) != 2 {
			return nil, fmt.Errorf("addAt expects 2 arguments, got %d", len(args))
		}
		idx, ok := args[1].(runtime.IntValue)
		if !ok {
			return nil, fmt.Errorf("addAt index must be int")
		}
		n := int(idx.Val)
		if n < 0 || n > len(l.Elements) {
			return nil, fmt.Errorf("index %d out of range (len %d)", n, len(l.Elements))
		}
		l.Elements = append(l.Elements, nil)
		copy(l.Elements[n+1:], l.Elements[n:])
		l.Elements[n] = args[0]
		return runtime.NilValue{}, nil
	case "del":
		if len(args) != 1 {
			return nil, fmt.Errorf("del expects 1 argument, got %d", len(args))
		}
		idx, ok := args[0].(runtime.IntValue)
		if !ok {
			return nil, fmt.Errorf("del index must be int")
		}
		n := int(idx.Val)
		if n < 0 || n >= len(l.Elements) {
			return nil, fmt.Errorf("index %d out of range (len %d)", n, len(l.Elements))
		}
		l.Elements = append(l.Elements[:n], l.Elements[n+1:]...)
		return runtime.NilValue{}, nil
	default:
		return nil, fmt.Errorf("unknown method %q on list", name)
	}
}

func arrayIntrinsic(a *runtime.ArrayValue, name string, args []runtime.Value) (runtime.Value, error) {
	switch name {
	case "len":
		return runtime.IntValue{Val: int64(len(a.Elements))}, nil
	default:
		return nil, fmt.Errorf("unknown method %q on array", name)
	}
}

func mapIntrinsic(m *runtime.MapValue, name string, args []runtime.Value) (runtime.Value, error) {
	switch name {
	case "len":
		return runtime.IntValue{Val: int64(len(m.Entries))}, nil
	default:
		return nil, fmt.Errorf("unknown method %q on map", name)
	}
}

func strIntrinsic(s runtime.StrValue, name string, args []runtime.Value) (runtime.Value, error) {
	switch name {
	case "len":
		return runtime.IntValue{Val: int64(utf8.RuneCountInString(s.Val))}, nil
	default:
		return nil, fmt.Errorf("unknown method %q on str", name)
	}
}

// callFn runs a user function or method body in a fresh scope nested under
// the module globals, binding self when the declaration has a receiver
// (spec.md §4.6 "Function & method calls").
func (i *Interpreter) callFn(fn *ast.FnDecl, args []runtime.Value, self runtime.Value) (runtime.Value, error) {
	env := i.mod.Globals.Child()
	params := fn.Params
	start := 0
	if fn.HasSelfReceiver() {
		env.Define("self", true, self, nil)
		start = 1
	}
	expected := len(params) - start
	if len(args) != expected {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", fn.Name, expected, len(args))
	}
	for idx, p := range params[start:] {
		env.Define(p.Name, true, args[idx], p.Type)
	}
	_, err := i.execBlock(fn.Body, env)
	if err != nil {
		if rs, ok := err.(returnSignal); ok {
			return rs.value, nil
		}
		return nil, err
	}
	return runtime.NilValue{}, nil
}
