// Package driver implements the package manifest (rono.yml), lockfile
// (rono.lock), and git-based dependency fetch used by `rono deps`
// (SPEC_FULL.md §9 "Package manifest", "Lockfile + dependency fetch").
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the parsed contents of rono.yml: a single executable's
// identity plus its declared dependencies, trimmed from the teacher's
// multi-target manifest to Rono's one-script-one-entry-point model
// (SPEC_FULL.md §9).
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Authors      []string
	Main         string
	Dependencies map[string]*DependencySpec
}

// DependencySpec describes one dependency entry: either a git source
// (optionally pinned to a rev/tag/branch) or a local path override.
type DependencySpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

// Source reports the normalized dependency source kind for the lockfile:
// "git:<url>" or "path:<dir>".
func (d *DependencySpec) Source() string {
	if d.Path != "" {
		return "path:" + d.Path
	}
	return "git:" + d.Git
}

// Ref returns the git ref to check out: Rev takes priority over Tag over
// Branch, defaulting to the empty string (the remote's default branch).
func (d *DependencySpec) Ref() string {
	switch {
	case d.Rev != "":
		return d.Rev
	case d.Tag != "":
		return d.Tag
	case d.Branch != "":
		return d.Branch
	default:
		return ""
	}
}

func (d *DependencySpec) validate(name string) error {
	if d.Path != "" && (d.Git != "" || d.Rev != "" || d.Tag != "" || d.Branch != "") {
		return fmt.Errorf("dependency %q: path overrides cannot also specify a git source", name)
	}
	if d.Path == "" && d.Git == "" {
		return fmt.Errorf("dependency %q: must specify git or path", name)
	}
	set := 0
	for _, v := range []string{d.Rev, d.Tag, d.Branch} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("dependency %q: specify at most one of rev, tag, branch", name)
	}
	return nil
}

type manifestFile struct {
	Name         string                     `yaml:"name"`
	Version      string                     `yaml:"version"`
	Authors      []string                   `yaml:"authors"`
	Main         string                     `yaml:"main"`
	Dependencies map[string]*DependencySpec `yaml:"dependencies"`
}

// LoadManifest parses rono.yml from disk with strict field checking,
// exactly as the teacher's `driver.LoadManifest`/`manifestFile.toManifest`
// (SPEC_FULL.md §9).
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", abs, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", abs)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}

	deps := raw.Dependencies
	if deps == nil {
		deps = make(map[string]*DependencySpec)
	}
	m := &Manifest{
		Path:         abs,
		Name:         strings.TrimSpace(raw.Name),
		Version:      strings.TrimSpace(raw.Version),
		Authors:      raw.Authors,
		Main:         strings.TrimSpace(raw.Main),
		Dependencies: deps,
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest %s: name must be provided", m.Path)
	}
	if m.Main == "" {
		return fmt.Errorf("manifest %s: main must name the entry .rono file", m.Path)
	}
	for name, dep := range m.Dependencies {
		if dep == nil {
			return fmt.Errorf("manifest %s: dependency %q has no descriptor", m.Path, name)
		}
		if err := dep.validate(name); err != nil {
			return fmt.Errorf("manifest %s: %w", m.Path, err)
		}
	}
	return nil
}

// MainPath resolves Main relative to the manifest's own directory.
func (m *Manifest) MainPath() string {
	if filepath.IsAbs(m.Main) {
		return filepath.Clean(m.Main)
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(m.Main))
}
