package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotLocatorGetSetAndImmutability(t *testing.T) {
	env := NewEnvironment(nil)
	slot := env.Define("x", true, IntValue{Val: 1}, nil)
	loc := SlotLocator{Slot: slot}

	v, err := loc.Get()
	require.NoError(t, err)
	require.Equal(t, IntValue{Val: 1}, v)

	require.NoError(t, loc.Set(IntValue{Val: 2}))
	v, _ = loc.Get()
	require.Equal(t, IntValue{Val: 2}, v)

	constSlot := env.Define("y", false, IntValue{Val: 1}, nil)
	constLoc := SlotLocator{Slot: constSlot}
	require.Error(t, constLoc.Set(IntValue{Val: 5}))
}

func TestFieldLocatorGetSetAndUnknownField(t *testing.T) {
	inst := NewStructInstance("Point", []string{"x"})
	inst.Fields["x"] = IntValue{Val: 1}
	loc := FieldLocator{Inst: inst, Field: "x"}

	v, err := loc.Get()
	require.NoError(t, err)
	require.Equal(t, IntValue{Val: 1}, v)

	require.NoError(t, loc.Set(IntValue{Val: 9}))
	require.Equal(t, IntValue{Val: 9}, inst.Fields["x"])

	bad := FieldLocator{Inst: inst, Field: "z"}
	_, err = bad.Get()
	require.Error(t, err)
	require.Error(t, bad.Set(IntValue{Val: 1}))
}

func TestListIndexLocatorBoundsChecks(t *testing.T) {
	list := &ListValue{Elements: []Value{IntValue{Val: 1}, IntValue{Val: 2}}}
	loc := ListIndexLocator{List: list, Index: 1}

	v, err := loc.Get()
	require.NoError(t, err)
	require.Equal(t, IntValue{Val: 2}, v)

	require.NoError(t, loc.Set(IntValue{Val: 99}))
	require.Equal(t, IntValue{Val: 99}, list.Elements[1])

	oob := ListIndexLocator{List: list, Index: 5}
	_, err = oob.Get()
	require.Error(t, err)
}

func TestMapKeyLocatorGetSetAndMissingKey(t *testing.T) {
	m := NewMapValue()
	m.Set("a", IntValue{Val: 1})
	loc := MapKeyLocator{Map: m, Key: "a"}

	v, err := loc.Get()
	require.NoError(t, err)
	require.Equal(t, IntValue{Val: 1}, v)

	require.NoError(t, loc.Set(IntValue{Val: 2}))
	require.Equal(t, IntValue{Val: 2}, m.Entries["a"])

	missing := MapKeyLocator{Map: m, Key: "b"}
	_, err = missing.Get()
	require.Error(t, err)

	// Set on a missing key inserts it (used by map[key] = v assignment).
	require.NoError(t, missing.Set(IntValue{Val: 3}))
	require.Equal(t, IntValue{Val: 3}, m.Entries["b"])
}
