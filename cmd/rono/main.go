// Command rono runs Rono source files and manages their git-backed
// dependencies, in the shape of the teacher's `cmd/able/main.go`: plain
// stderr diagnostics, no logging framework, `os.Exit` wrapping an int
// return from `run(args)` (SPEC_FULL.md §9 "CLI driver").
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rono/pkg/driver"
	"rono/pkg/interpreter"
	"rono/pkg/resolver"
)

const cliToolVersion = "rono-cli 0.0.0-dev"

var errManifestNotFound = errors.New("rono.yml not found")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}
	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "deps":
		return runDeps(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	var entry string
	var manifest *driver.Manifest

	switch len(args) {
	case 0:
		m, err := loadManifestFrom(".")
		if err != nil {
			if errors.Is(err, errManifestNotFound) {
				fmt.Fprintln(os.Stderr, "rono run requires a source file or a rono.yml manifest in the working directory")
				return 1
			}
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		manifest = m
		entry = manifest.MainPath()
	case 1:
		entry = args[0]
		if dir := filepath.Dir(entry); dir != "." {
			if manifestPath, err := findManifest(dir); err == nil {
				m, err := driver.LoadManifest(manifestPath)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to read manifest for %s: %v\n", entry, err)
					return 1
				}
				manifest = m
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	searchRoots, err := prepareSearchRoots(manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to prepare execution environment: %v\n", err)
		return 1
	}

	return executeEntry(entry, searchRoots)
}

func executeEntry(entry string, searchRoots []string) int {
	res := resolver.New()
	mod, errs := res.ResolveFile(entry)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if len(errs) > 0 {
		return 1
	}
	_ = searchRoots // reserved: resolver.ResolveFile is file-relative; a future multi-root resolver would consult these.

	interp := interpreter.New(mod, entry)
	if err := interp.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// prepareSearchRoots installs (or re-uses) a manifest's locked
// dependencies, returning the root directories the module resolver can
// later search for a `import "name/path"` naming a dependency.
func prepareSearchRoots(manifest *driver.Manifest) ([]string, error) {
	if manifest == nil || len(manifest.Dependencies) == 0 {
		return nil, nil
	}
	lockPath := filepath.Join(filepath.Dir(manifest.Path), "rono.lock")
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("rono.lock missing for %q; run `rono deps install`", manifest.Name)
		}
		return nil, err
	}
	cacheDir, err := resolveRonoHome()
	if err != nil {
		return nil, err
	}
	fetcher := driver.NewGitFetcher(cacheDir)
	return driver.Install(manifest, lock, fetcher)
}

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "rono deps requires a subcommand (install, update)")
		return 1
	}
	switch args[0] {
	case "install", "update":
		return runDepsInstall()
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q\n", args[0])
		return 1
	}
}

func runDepsInstall() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to determine working directory: %v\n", err)
		return 1
	}
	manifestPath, err := findManifest(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate rono.yml: %v\n", err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read manifest: %v\n", err)
		return 1
	}
	cacheDir, err := resolveRonoHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve RONO_HOME: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Package: %s\n", manifest.Name)
	fmt.Fprintf(os.Stdout, "Dependencies: %d\n", len(manifest.Dependencies))

	lockPath := filepath.Join(filepath.Dir(manifest.Path), "rono.lock")
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to read lockfile: %v\n", err)
			return 1
		}
		lock = driver.NewLockfile(cliToolVersion)
	}

	fetcher := driver.NewGitFetcher(cacheDir)
	if _, err := driver.Install(manifest, lock, fetcher); err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve dependencies: %v\n", err)
		return 1
	}

	if err := driver.WriteLockfile(lock, lockPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write lockfile: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "Wrote rono.lock: %s\n", lockPath)
	return 0
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	absStart, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest search path %q: %w", start, err)
	}
	manifestPath, err := findManifest(absStart)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, "rono.yml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no rono.yml found from %s upwards: %w", origin, errManifestNotFound)
		}
		dir = parent
	}
}

func resolveRonoHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("RONO_HOME")); home != "" {
		return filepath.Abs(home)
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".rono"), nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  rono run <file.rono>")
	fmt.Fprintln(os.Stderr, "  rono <file.rono>")
	fmt.Fprintln(os.Stderr, "  rono run")
	fmt.Fprintln(os.Stderr, "  rono deps install")
	fmt.Fprintln(os.Stderr, "  rono deps update")
}
