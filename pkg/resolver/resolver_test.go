package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveFileMergesUnaliasedImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.rono", `
fn double(x: int) int {
  ret x * 2
}
`)
	entry := writeFile(t, dir, "main.rono", `
import "util"

chif main() {
  var x: int = double(3)
}
`)

	r := New()
	mod, errs := r.ResolveFile(entry)
	require.Empty(t, errs)
	require.Contains(t, mod.Functions, "double")
	require.NotNil(t, mod.Chif)
}

func TestResolveFileAliasedImportIsNamespaced(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.rono", `
fn double(x: int) int {
  ret x * 2
}
`)
	entry := writeFile(t, dir, "main.rono", `
import "util" as u

chif main() {
  var x: int = u.double(3)
}
`)

	r := New()
	mod, errs := r.ResolveFile(entry)
	require.Empty(t, errs)
	require.NotContains(t, mod.Functions, "double")
	require.Contains(t, mod.Namespaces, "u")
	require.Contains(t, mod.Namespaces["u"].Functions, "double")
}

func TestResolveFileCyclicImportDoesNotHang(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rono", `import "b"`)
	entry := writeFile(t, dir, "b.rono", `import "a"`)

	r := New()
	_, errs := r.ResolveFile(entry)
	require.Empty(t, errs)
}

func TestResolveFileMissingImportReportsError(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.rono", `import "missing"`)

	r := New()
	_, errs := r.ResolveFile(entry)
	require.NotEmpty(t, errs)
}
