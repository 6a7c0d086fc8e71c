package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rono/pkg/ast"
)

func TestParseStructFnAndChif(t *testing.T) {
	src := `
struct Point {
  x: int,
  y: int,
}

fn_for Point {
  fn sum(self) int {
    ret self.x + self.y
  }
}

fn add(a: int, b: int) int {
  ret a + b
}

chif main() {
  var p: Point = Point { x = 1, y = 2 }
  var total: int = p.sum()
  con.out("{total}")
}
`
	prog, errs := Parse("prog.rono", src)
	require.Empty(t, errs)
	require.Len(t, prog.Structs, 1)
	require.Equal(t, "Point", prog.Structs[0].Name)
	require.Len(t, prog.Impls, 1)
	require.Len(t, prog.Fns, 1)
	require.NotNil(t, prog.Chif)
}

func TestParseIfElseAndBlockDisambiguation(t *testing.T) {
	src := `
chif main() {
  var x: int = 1
  if x == 1 {
    x = 2
  } else if x == 2 {
    x = 3
  } else {
    x = 4
  }
}
`
	prog, errs := Parse("prog.rono", src)
	require.Empty(t, errs)
	require.NotNil(t, prog.Chif)
	ifStmt, ok := prog.Chif.Body.Stmts[1].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
}

func TestParseForHeader(t *testing.T) {
	src := `
chif main() {
  for (i = 0; i < 10; i = i + 1) {
    con.out("{i}")
  }
}
`
	prog, errs := Parse("prog.rono", src)
	require.Empty(t, errs)
	forStmt, ok := prog.Chif.Body.Stmts[0].(*ast.For)
	require.True(t, ok)
	require.NotNil(t, forStmt.Init)
	require.NotNil(t, forStmt.Cond)
	require.NotNil(t, forStmt.Step)
}

func TestParseStringInterpolation(t *testing.T) {
	src := `
chif main() {
  var name: str = "world"
  con.out("hello {name}, {1 + 2}")
}
`
	prog, errs := Parse("prog.rono", src)
	require.Empty(t, errs)
	call := prog.Chif.Body.Stmts[1].(*ast.ExprStmt).X.(*ast.CallExpr)
	lit := call.Args[0].(*ast.StrLit)
	require.Len(t, lit.Segments, 4)
	require.False(t, lit.Segments[0].IsExpr)
	require.True(t, lit.Segments[1].IsExpr)
}

func TestParseUnmatchedBraceInInterpolationIsError(t *testing.T) {
	_, errs := Parse("prog.rono", `chif main() { con.out("{") }`)
	require.NotEmpty(t, errs)
}

func TestParseListAndArrayDecl(t *testing.T) {
	src := `
chif main() {
  list xs: int[] = [1, 2, 3]
  array ys: int[3] = [1, 2, 3]
}
`
	prog, errs := Parse("prog.rono", src)
	require.Empty(t, errs)
	_, ok := prog.Chif.Body.Stmts[0].(*ast.ListDecl)
	require.True(t, ok)
	arr, ok := prog.Chif.Body.Stmts[1].(*ast.ArrayDecl)
	require.True(t, ok)
	require.Equal(t, 3, arr.Size)
}

func TestParseSwitch(t *testing.T) {
	src := `
chif main() {
  var x: int = 1
  switch x {
    case 1, 2 {
      con.out("low")
    }
    default {
      con.out("high")
    }
  }
}
`
	prog, errs := Parse("prog.rono", src)
	require.Empty(t, errs)
	sw, ok := prog.Chif.Body.Stmts[1].(*ast.Switch)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	require.Len(t, sw.Cases[0].Values, 2)
	require.True(t, sw.Cases[1].IsDefault)
}
