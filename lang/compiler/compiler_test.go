package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anxlang/anxc/lang/diag"
	"github.com/anxlang/anxc/lang/irbuilder/ssair"
	"github.com/anxlang/anxc/lang/parser"
	"github.com/anxlang/anxc/lang/scanner"
)

// compileAndRun parses src, lowers it to IR and interprets fnName with the
// given arguments, failing the test on any diagnostic.
func compileAndRun(t *testing.T, src, fnName string, args ...int64) (int64, error) {
	t.Helper()
	d := diag.New("test.anx", []byte(src))
	d.Exit = func(code int) { t.Fatalf("unexpected diagnostic exit(%d) compiling %q", code, src) }

	sc := scanner.New(d, []byte(src))
	prog := parser.Parse(d, sc)

	m := ssair.New("test")
	Compile(d, m, prog)

	th := ssair.NewThread(m)
	return th.Run(fnName, args...)
}

func TestCompileFactorialWhile(t *testing.T) {
	src := `
pub fn fact(n: i32): i32 {
  var r: i32 = 1;
  while n > 0 : n = n - 1 { r = r * n; }
  ret r;
}
pub fn main: i32 { ret fact(5); }
`
	result, err := compileAndRun(t, src, "main")
	require.NoError(t, err)
	require.Equal(t, int64(120), result)
}

func TestCompileImplicitMainReturnZero(t *testing.T) {
	result, err := compileAndRun(t, `pub fn main { }`, "main")
	require.NoError(t, err)
	require.Equal(t, int64(0), result)
}

func TestCompileIfElse(t *testing.T) {
	src := `
fn pick(a: i32, b: i32): i32 {
  if a > b { ret a; } else { ret b; }
}
pub fn main: i32 { ret pick(3, 7); }
`
	result, err := compileAndRun(t, src, "main")
	require.NoError(t, err)
	require.Equal(t, int64(7), result)
}

func TestCompileBreakContinue(t *testing.T) {
	src := `
pub fn main: i32 {
  var sum: i32 = 0;
  var i: i32 = 0;
  while i < 10 : i = i + 1 {
    if i == 5 { break; }
    if i == 2 { continue; }
    sum = sum + i;
  }
  ret sum;
}
`
	// i goes 0,1,(skip 2),3,4 then breaks at 5: sum = 0+1+3+4 = 8
	result, err := compileAndRun(t, src, "main")
	require.NoError(t, err)
	require.Equal(t, int64(8), result)
}

func TestCompileSwapAssign(t *testing.T) {
	src := `
pub fn main: i32 {
  var a: i32 = 1, b: i32 = 2;
  a, b = b, a;
  ret a - b;
}
`
	result, err := compileAndRun(t, src, "main")
	require.NoError(t, err)
	require.Equal(t, int64(1), result)
}

func TestCompileUnsignedNegWidensSigned(t *testing.T) {
	src := `
pub fn main: i32 {
  var x: u8 = 5;
  ret -x;
}
`
	result, err := compileAndRun(t, src, "main")
	require.NoError(t, err)
	require.Equal(t, int64(-5), result)
}

func TestCompileNoMainFails(t *testing.T) {
	d := diag.New("test.anx", []byte(`fn f: i32 { ret 1; }`))
	exited := false
	d.Exit = func(code int) { exited = true; panic("exit") }
	sc := scanner.New(d, []byte(`fn f: i32 { ret 1; }`))
	prog := parser.Parse(d, sc)
	m := ssair.New("test")

	require.Panics(t, func() { Compile(d, m, prog) })
	require.True(t, exited)
}

func TestCompileRedeclaredFunctionFails(t *testing.T) {
	src := `fn f { } fn f { } pub fn main { }`
	d := diag.New("test.anx", []byte(src))
	d.Exit = func(code int) { panic("exit") }
	sc := scanner.New(d, []byte(src))
	prog := parser.Parse(d, sc)
	m := ssair.New("test")

	require.Panics(t, func() { Compile(d, m, prog) })
}
