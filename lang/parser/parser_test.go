package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/diag"
	"github.com/anxlang/anxc/lang/scanner"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	d := diag.New("test.anx", []byte(src))
	d.Exit = func(code int) { t.Fatalf("unexpected diagnostic exit(%d) parsing %q", code, src) }
	sc := scanner.New(d, []byte(src))
	return Parse(d, sc)
}

func TestParseHelloLetter(t *testing.T) {
	prog := parseSrc(t, `pub fn main { @out('H'); }`)
	require.Len(t, prog.Decls, 1)
	fn := prog.Decls[0]
	require.True(t, fn.Pub)
	require.Equal(t, "main", fn.Name)
	scope, ok := fn.Body.(*ast.Scope)
	require.True(t, ok)
	require.Len(t, scope.Stmts, 1)
	call, ok := scope.Stmts[0].(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "@out", call.Name)
	require.Len(t, call.Args, 1)
}

func TestParseFactorial(t *testing.T) {
	src := `
pub fn fact(n: u32): u32 {
  var r: u32 = 1;
  while n > 0 : n = n - 1 { r = r * n; }
  ret r;
}
pub fn main { ret fact(5); }
`
	prog := parseSrc(t, src)
	require.Len(t, prog.Decls, 2)

	fact := prog.Decls[0]
	require.Equal(t, "fact", fact.Name)
	require.Equal(t, "u32", fact.ReturnType)
	require.Len(t, fact.Params, 1)
	require.Equal(t, "n", fact.Params[0].Name)
	require.Equal(t, "u32", fact.Params[0].Type)

	scope := fact.Body.(*ast.Scope)
	require.Len(t, scope.Stmts, 3)
	_, ok := scope.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	while, ok := scope.Stmts[1].(*ast.While)
	require.True(t, ok)
	require.NotNil(t, while.Step)
	_, ok = scope.Stmts[2].(*ast.Ret)
	require.True(t, ok)
}

func TestParseExprPrecedence(t *testing.T) {
	prog := parseSrc(t, `fn f { ret 1 + 2 * 3; }`)
	ret := prog.Decls[0].Body.(*ast.Scope).Stmts[0].(*ast.Ret)
	bin := ret.Value.(*ast.BinOp)
	require.Equal(t, "+", bin.Op)
	_, ok := bin.Lhs.(*ast.Num)
	require.True(t, ok)
	rhs := bin.Rhs.(*ast.BinOp)
	require.Equal(t, "*", rhs.Op)
}

func TestParseUnaryMinus(t *testing.T) {
	prog := parseSrc(t, `fn f { var x = -1; }`)
	decl := prog.Decls[0].Body.(*ast.Scope).Stmts[0].(*ast.VarDecl)
	un := decl.Elems[0].Init.(*ast.UnOp)
	require.Equal(t, "-", un.Op)
}

func TestParseSwapAssign(t *testing.T) {
	prog := parseSrc(t, `fn f { a, b = b, a; }`)
	swap := prog.Decls[0].Body.(*ast.Scope).Stmts[0].(*ast.SwapAssign)
	require.Equal(t, []string{"a", "b"}, swap.Names)
	require.Len(t, swap.Values, 2)
}

func TestParseForwardDecl(t *testing.T) {
	prog := parseSrc(t, `fn extfn(x: i32): i32;`)
	require.Nil(t, prog.Decls[0].Body)
}

func TestParseSingleInstrBody(t *testing.T) {
	prog := parseSrc(t, `pub fn main ret 0;`)
	ret, ok := prog.Decls[0].Body.(*ast.Ret)
	require.True(t, ok)
	_, ok = ret.Value.(*ast.Num)
	require.True(t, ok)
}

func TestParseSwapParityMismatchFails(t *testing.T) {
	d := diag.New("test.anx", []byte(`fn f { a, b = 1; }`))
	d.Exit = func(code int) { panic("exit") }
	sc := scanner.New(d, []byte(`fn f { a, b = 1; }`))
	require.Panics(t, func() { Parse(d, sc) })
}
