package builtins

import (
	"bufio"
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rono/pkg/runtime"
)

func newTestRegistry(stdin string) (*Registry, *bytes.Buffer) {
	var out bytes.Buffer
	r := &Registry{
		in:  bufio.NewReader(strings.NewReader(stdin)),
		out: &out,
		rng: rand.New(rand.NewSource(1)),
	}
	r.fns = map[string]runtime.BuiltinFnValue{
		"con.out": {Name: "con.out", Fn: r.conOut},
		"con.in":  {Name: "con.in", Fn: r.conIn},
		"randi":   {Name: "randi", Fn: r.randi},
		"randf":   {Name: "randf", Fn: r.randf},
		"rands":   {Name: "rands", Fn: r.rands},
	}
	return r, &out
}

func TestConOutFormatsAndNewlines(t *testing.T) {
	r, out := newTestRegistry("")
	_, err := r.conOut([]runtime.Value{runtime.IntValue{Val: 42}})
	require.NoError(t, err)
	require.Equal(t, "42\n", out.String())
}

func TestConInCoercesToDeclaredSlotType(t *testing.T) {
	r, _ := newTestRegistry("123\n")
	env := runtime.NewEnvironment(nil)
	slot := env.Define("x", true, runtime.IntValue{Val: 0}, nil)
	loc := runtime.SlotLocator{Slot: slot}

	_, err := r.conIn([]runtime.Value{runtime.PointerValue{Loc: loc}})
	require.NoError(t, err)
	v, _ := loc.Get()
	require.Equal(t, runtime.IntValue{Val: 123}, v)
}

func TestConInRejectsNonPointerArgument(t *testing.T) {
	r, _ := newTestRegistry("123\n")
	_, err := r.conIn([]runtime.Value{runtime.IntValue{Val: 1}})
	require.Error(t, err)
}

func TestConInInvalidIntInput(t *testing.T) {
	r, _ := newTestRegistry("not-a-number\n")
	env := runtime.NewEnvironment(nil)
	slot := env.Define("x", true, runtime.IntValue{Val: 0}, nil)
	loc := runtime.SlotLocator{Slot: slot}

	_, err := r.conIn([]runtime.Value{runtime.PointerValue{Loc: loc}})
	require.Error(t, err)
}

func TestRandiSwapsInvertedBounds(t *testing.T) {
	r, _ := newTestRegistry("")
	for i := 0; i < 20; i++ {
		v, err := r.randi([]runtime.Value{runtime.IntValue{Val: 10}, runtime.IntValue{Val: 1}})
		require.NoError(t, err)
		iv := v.(runtime.IntValue)
		require.GreaterOrEqual(t, iv.Val, int64(1))
		require.LessOrEqual(t, iv.Val, int64(10))
	}
}

func TestRandfWithinBounds(t *testing.T) {
	r, _ := newTestRegistry("")
	v, err := r.randf([]runtime.Value{runtime.FloatValue{Val: 0}, runtime.FloatValue{Val: 1}})
	require.NoError(t, err)
	fv := v.(runtime.FloatValue)
	require.GreaterOrEqual(t, fv.Val, 0.0)
	require.Less(t, fv.Val, 1.0)
}

func TestRandsSingleCharacterWithinRange(t *testing.T) {
	r, _ := newTestRegistry("")
	v, err := r.rands([]runtime.Value{runtime.StrValue{Val: "a"}, runtime.StrValue{Val: "e"}})
	require.NoError(t, err)
	sv := v.(runtime.StrValue)
	require.Len(t, sv.Val, 1)
	require.GreaterOrEqual(t, sv.Val[0], byte('a'))
	require.LessOrEqual(t, sv.Val[0], byte('e'))
}

func TestRandiRejectsNonIntegerArguments(t *testing.T) {
	r, _ := newTestRegistry("")
	_, err := r.randi([]runtime.Value{runtime.StrValue{Val: "x"}, runtime.IntValue{Val: 1}})
	require.Error(t, err)
}
