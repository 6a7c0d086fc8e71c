package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFetcher clones dependency sources into a cache directory and checks
// out a pinned revision, adapted from the teacher's (v11-generation)
// `gitFetcher`/`ensureGitCheckout` to Rono's simpler single-target
// manifest (SPEC_FULL.md §9 "Lockfile + dependency fetch").
type GitFetcher struct {
	CacheDir string
}

func NewGitFetcher(cacheDir string) *GitFetcher {
	return &GitFetcher{CacheDir: cacheDir}
}

// Fetch resolves spec's git source into a checkout under the fetcher's
// cache directory, returning the resolved package to lock and its checkout
// directory (returned by Install as one of the dependency search roots).
func (g *GitFetcher) Fetch(name string, spec *DependencySpec) (*LockedPackage, string, error) {
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return nil, "", fmt.Errorf("dependency %q: git URL required", name)
	}

	revision, err := gitRevision(spec)
	if err != nil {
		return nil, "", fmt.Errorf("dependency %q: %w", name, err)
	}

	baseDir := filepath.Join(g.CacheDir, "pkg", "src", sanitizeName(name))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, "", err
	}

	tmpDir, err := os.MkdirTemp(baseDir, "fetch-*")
	if err != nil {
		return nil, "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return nil, "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	targetDir := filepath.Join(baseDir, hash.String())
	if _, statErr := os.Stat(targetDir); statErr == nil {
		os.RemoveAll(tmpDir)
		return &LockedPackage{Name: name, Source: spec.Source(), Commit: hash.String()}, targetDir, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		os.RemoveAll(tmpDir)
		return nil, "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		os.RemoveAll(tmpDir)
		return nil, "", err
	}
	return &LockedPackage{Name: name, Source: spec.Source(), Commit: hash.String()}, targetDir, nil
}

func gitRevision(spec *DependencySpec) (plumbing.Revision, error) {
	switch {
	case spec.Rev != "":
		return plumbing.Revision(spec.Rev), nil
	case spec.Tag != "":
		return plumbing.Revision("refs/tags/" + spec.Tag), nil
	case spec.Branch != "":
		return plumbing.Revision("refs/heads/" + spec.Branch), nil
	default:
		return plumbing.Revision("HEAD"), nil
	}
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// Install resolves every git dependency in manifest into lock. Each git
// dependency is cloned and its revision resolved on every call; the
// checkout is reused when the cache already holds a directory for the
// resolved commit. Commits already recorded in lock are not consulted.
// Path dependencies are recorded in the lock as-is, with no fetch.
// Returns the search roots (one per dependency) for the module resolver.
func Install(manifest *Manifest, lock *Lockfile, fetcher *GitFetcher) ([]string, error) {
	var roots []string
	for name, spec := range manifest.Dependencies {
		if spec.Path != "" {
			root := spec.Path
			if !filepath.IsAbs(root) {
				root = filepath.Join(filepath.Dir(manifest.Path), filepath.FromSlash(root))
			}
			lock.Put(&LockedPackage{Name: name, Source: spec.Source(), Commit: ""})
			roots = append(roots, root)
			continue
		}
		pkg, dir, err := fetcher.Fetch(name, spec)
		if err != nil {
			return nil, err
		}
		lock.Put(pkg)
		roots = append(roots, dir)
	}
	return roots, nil
}
