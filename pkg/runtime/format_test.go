package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatScalars(t *testing.T) {
	require.Equal(t, "42", Format(IntValue{Val: 42}))
	require.Equal(t, "true", Format(BoolValue{Val: true}))
	require.Equal(t, "false", Format(BoolValue{Val: false}))
	require.Equal(t, "hi", Format(StrValue{Val: "hi"}))
	require.Equal(t, "nil", Format(NilValue{}))
}

func TestFormatFloatAlwaysHasFractionalPart(t *testing.T) {
	require.Equal(t, "1.0", Format(FloatValue{Val: 1}))
	require.Equal(t, "3.14", Format(FloatValue{Val: 3.14}))
	require.Equal(t, "-2.5", Format(FloatValue{Val: -2.5}))
}

func TestFormatList(t *testing.T) {
	l := &ListValue{Elements: []Value{IntValue{Val: 1}, IntValue{Val: 2}}}
	require.Equal(t, "[1, 2]", Format(l))
}

func TestFormatMapPreservesInsertionOrder(t *testing.T) {
	m := NewMapValue()
	m.Set("b", IntValue{Val: 2})
	m.Set("a", IntValue{Val: 1})
	require.Equal(t, `{"b": 2, "a": 1}`, Format(m))
}

func TestFormatStruct(t *testing.T) {
	inst := NewStructInstance("Point", []string{"x", "y"})
	inst.Fields["x"] = IntValue{Val: 1}
	inst.Fields["y"] = IntValue{Val: 2}
	require.Equal(t, "Point { x: 1, y: 2 }", Format(inst))
}
