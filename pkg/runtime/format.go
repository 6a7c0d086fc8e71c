package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a Value as text for con.out and string interpolation
// (spec.md §6 "Value formatting for interpolation and con.out"). Floats
// print with a forced fractional part via strconv's shortest round-trip
// form, pinning down the Open Question the specification leaves to the
// implementation (spec.md §9 "the exact formatting of floats ... is
// unspecified").
func Format(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return formatFloat(val.Val)
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case StrValue:
		return val.Val
	case NilValue:
		return "nil"
	case *ListValue:
		return formatSeq(val.Elements)
	case *ArrayValue:
		return formatSeq(val.Elements)
	case *MapValue:
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range val.KeyOrder {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q: %s", k, Format(val.Entries[k]))
		}
		b.WriteByte('}')
		return b.String()
	case *StructInstance:
		var b strings.Builder
		fmt.Fprintf(&b, "%s { ", val.TypeName)
		for i, name := range val.FieldOrder {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", name, Format(val.Fields[name]))
		}
		b.WriteString(" }")
		return b.String()
	case PointerValue:
		return "&" + val.Loc.String()
	case *FnValue:
		return fmt.Sprintf("<fn %s>", val.Decl.Name)
	case BuiltinFnValue:
		return fmt.Sprintf("<builtin %s>", val.Name)
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

func formatSeq(elems []Value) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Format(e))
	}
	b.WriteByte(']')
	return b.String()
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
