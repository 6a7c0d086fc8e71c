package interpreter

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rono/pkg/resolver"
)

// runSource writes src to a temp .rono file, resolves and runs it, and
// returns whatever it wrote to stdout via con.out.
func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.rono")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	res := resolver.New()
	mod, errs := res.ResolveFile(path)
	require.Empty(t, errs)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	origStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	interp := New(mod, path)
	runErr := interp.Run()

	w.Close()
	os.Stdout = origStdout
	out, _ := io.ReadAll(r)
	return string(out), runErr
}

func TestRunBasicArithmeticAndInterpolation(t *testing.T) {
	out, err := runSource(t, `
chif main() {
  var x: int = 2 + 3 * 4
  con.out("x = {x}")
}
`)
	require.NoError(t, err)
	require.Equal(t, "x = 14\n", out)
}

func TestRunStructMethodsAndMutation(t *testing.T) {
	out, err := runSource(t, `
struct Counter {
  n: int,
}

fn_for Counter {
  fn increment(self) {
    self.n = self.n + 1
  }
  fn value(self) int {
    ret self.n
  }
}

chif main() {
  var c: Counter = Counter { n = 0 }
  c.increment()
  c.increment()
  con.out("{c.value()}")
}
`)
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
}

func TestRunWhileLoopAndBreakContinue(t *testing.T) {
	out, err := runSource(t, `
chif main() {
  var i: int = 0
  var total: int = 0
  while i < 10 {
    i = i + 1
    if i % 2 == 0 {
      continue
    }
    if i > 7 {
      break
    }
    total = total + i
  }
  con.out("{total}")
}
`)
	require.NoError(t, err)
	// odd numbers 1,3,5,7 summed before breaking at i=9
	require.Equal(t, "16\n", out)
}

func TestRunForLoopHeader(t *testing.T) {
	out, err := runSource(t, `
chif main() {
  var total: int = 0
  for (i = 0; i < 5; i = i + 1) {
    total = total + i
  }
  con.out("{total}")
}
`)
	require.NoError(t, err)
	require.Equal(t, "10\n", out)
}

func TestRunListIntrinsics(t *testing.T) {
	out, err := runSource(t, `
chif main() {
  list xs: int[] = [1, 2, 3]
  xs.add(4)
  con.out("{xs.len()}")
  con.out("{xs}")
}
`)
	require.NoError(t, err)
	require.Equal(t, "4\n[1, 2, 3, 4]\n", out)
}

func TestRunPointerMutationThroughFunctionArg(t *testing.T) {
	out, err := runSource(t, `
fn increment(p: pointer) {
  *p = *p + 1
}

chif main() {
  var x: int = 5
  increment(&x)
  con.out("{x}")
}
`)
	require.NoError(t, err)
	require.Equal(t, "6\n", out)
}

func TestRunSwitchStatement(t *testing.T) {
	out, err := runSource(t, `
chif main() {
  var x: int = 2
  switch x {
    case 1 {
      con.out("one")
    }
    case 2, 3 {
      con.out("two-or-three")
    }
    default {
      con.out("other")
    }
  }
}
`)
	require.NoError(t, err)
	require.Equal(t, "two-or-three\n", out)
}

func TestRunDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := runSource(t, `
chif main() {
  var x: int = 1 / 0
}
`)
	require.Error(t, err)
}

func TestRunUnknownFieldInConstructorIsError(t *testing.T) {
	_, err := runSource(t, `
struct Point {
  x: int,
}

chif main() {
  var p: Point = Point { x = 1, y = 2 }
}
`)
	require.Error(t, err)
}

func TestRunVarDeclWithoutInitializerZeroValue(t *testing.T) {
	out, err := runSource(t, `
chif main() {
  var x: int
  var s: str
  var b: bool
  con.out("{x}")
  con.out("{s}")
  con.out("{b}")
}
`)
	require.NoError(t, err)
	require.Equal(t, "0\n\nfalse\n", out)
}

func TestRunFunctionValueAssignment(t *testing.T) {
	out, err := runSource(t, `
fn add(a: int, b: int) int {
  ret a + b
}

chif main() {
  var f = add
  con.out("{f(2, 3)}")
}
`)
	require.NoError(t, err)
	require.Equal(t, "5\n", out)
}
