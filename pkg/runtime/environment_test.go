package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", true, IntValue{Val: 1}, nil)

	v, err := env.Get("x")
	require.NoError(t, err)
	require.Equal(t, IntValue{Val: 1}, v)

	_, err = env.Get("missing")
	require.Error(t, err)
}

func TestEnvironmentChildResolvesThroughParent(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("x", true, IntValue{Val: 1}, nil)
	child := parent.Child()

	require.True(t, child.Resolve("x") != nil)
	require.False(t, child.HasLocal("x"))

	v, err := child.Get("x")
	require.NoError(t, err)
	require.Equal(t, IntValue{Val: 1}, v)
}

func TestEnvironmentSetWritesThroughToEnclosingScope(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("x", true, IntValue{Val: 1}, nil)
	child := parent.Child()

	require.NoError(t, child.Set("x", IntValue{Val: 42}))
	v, _ := parent.Get("x")
	require.Equal(t, IntValue{Val: 42}, v)
}

func TestEnvironmentSetRejectsImmutableAndUndefined(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("y", false, IntValue{Val: 1}, nil)
	require.Error(t, env.Set("y", IntValue{Val: 2}))
	require.Error(t, env.Set("z", IntValue{Val: 2}))
}

func TestEnvironmentShadowing(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("x", true, IntValue{Val: 1}, nil)
	child := parent.Child()
	child.Define("x", true, IntValue{Val: 2}, nil)

	v, _ := child.Get("x")
	require.Equal(t, IntValue{Val: 2}, v)
	pv, _ := parent.Get("x")
	require.Equal(t, IntValue{Val: 1}, pv)
}
