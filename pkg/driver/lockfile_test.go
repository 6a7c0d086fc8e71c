package driver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockfileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rono.lock")

	lock := NewLockfile("rono-cli 0.0.0-dev")
	lock.Put(&LockedPackage{Name: "collections", Source: "git:https://example.com/collections.git", Commit: "deadbeef"})
	lock.Put(&LockedPackage{Name: "aaa", Source: "path:../aaa", Commit: ""})

	require.NoError(t, WriteLockfile(lock, path))

	loaded, err := LoadLockfile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Packages, 2)
	// normalize() sorts by name
	require.Equal(t, "aaa", loaded.Packages[0].Name)
	require.Equal(t, "collections", loaded.Packages[1].Name)
	require.Equal(t, "deadbeef", loaded.Packages[1].Commit)
}

func TestLockfilePutReplacesExisting(t *testing.T) {
	lock := NewLockfile("tool")
	lock.Put(&LockedPackage{Name: "x", Commit: "1"})
	lock.Put(&LockedPackage{Name: "x", Commit: "2"})
	require.Len(t, lock.Packages, 1)
	require.Equal(t, "2", lock.Find("x").Commit)
}

func TestLockfileFindMissing(t *testing.T) {
	lock := NewLockfile("tool")
	require.Nil(t, lock.Find("nope"))
}
