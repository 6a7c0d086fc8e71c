package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// localRepoFixture creates a non-bare on-disk git repository with a single
// commit, suitable as a clone source with no network access.
func localRepoFixture(t *testing.T) string {
	t.Helper()
	srcDir := t.TempDir()
	repo, err := git.PlainInit(srcDir, false)
	require.NoError(t, err)

	filePath := filepath.Join(srcDir, "main.rono")
	require.NoError(t, os.WriteFile(filePath, []byte("chif main() {}\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("main.rono")
	require.NoError(t, err)

	sig := &object.Signature{Name: "Fixture", Email: "fixture@example.com", When: time.Unix(0, 0)}
	_, err = wt.Commit("initial", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)

	return srcDir
}

func TestGitFetcherFetchClonesAndChecksOut(t *testing.T) {
	src := localRepoFixture(t)
	cacheDir := t.TempDir()
	fetcher := NewGitFetcher(cacheDir)

	pkg, dir, err := fetcher.Fetch("collections", &DependencySpec{Git: src})
	require.NoError(t, err)
	require.Equal(t, "collections", pkg.Name)
	require.NotEmpty(t, pkg.Commit)

	data, err := os.ReadFile(filepath.Join(dir, "main.rono"))
	require.NoError(t, err)
	require.Contains(t, string(data), "chif main")
}

func TestGitFetcherReusesExistingCheckout(t *testing.T) {
	src := localRepoFixture(t)
	cacheDir := t.TempDir()
	fetcher := NewGitFetcher(cacheDir)

	_, dir1, err := fetcher.Fetch("collections", &DependencySpec{Git: src})
	require.NoError(t, err)

	_, dir2, err := fetcher.Fetch("collections", &DependencySpec{Git: src})
	require.NoError(t, err)
	require.Equal(t, dir1, dir2)
}

func TestInstallHandlesPathAndGitDependencies(t *testing.T) {
	src := localRepoFixture(t)
	cacheDir := t.TempDir()

	manifestDir := t.TempDir()
	localDepDir := t.TempDir()

	manifest := &Manifest{
		Path: filepath.Join(manifestDir, "rono.yml"),
		Name: "demo",
		Main: "main.rono",
		Dependencies: map[string]*DependencySpec{
			"collections": {Git: src},
			"local_util":  {Path: localDepDir},
		},
	}
	lock := NewLockfile("tool")
	fetcher := NewGitFetcher(cacheDir)

	roots, err := Install(manifest, lock, fetcher)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	require.NotNil(t, lock.Find("collections"))
	require.NotNil(t, lock.Find("local_util"))
	require.Equal(t, "path:"+localDepDir, lock.Find("local_util").Source)
}
