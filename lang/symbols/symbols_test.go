package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anxlang/anxc/lang/types"
)

func TestMangle(t *testing.T) {
	require.Equal(t, "main", Mangle("main"))
	require.Equal(t, "fact.anx", Mangle("fact"))
}

func TestPushPopSearch(t *testing.T) {
	tbl := New()
	tbl.Push()
	tbl.Add("x", VarSymbol(nil, types.I32))

	sym, ok := tbl.Search("x")
	require.True(t, ok)
	require.Equal(t, Variable, sym.Kind)
	require.Equal(t, types.I32, sym.Type)

	tbl.Push()
	_, ok = tbl.Search("x")
	require.True(t, ok, "inner scope should see outer declarations")

	tbl.Add("x", VarSymbol(nil, types.F64))
	sym, _ = tbl.Search("x")
	require.Equal(t, types.F64, sym.Type, "inner shadowing wins")

	tbl.Pop()
	sym, ok = tbl.Search("x")
	require.True(t, ok)
	require.Equal(t, types.I32, sym.Type, "outer x is restored once inner scope pops")

	tbl.Pop()
	_, ok = tbl.Search("x")
	require.False(t, ok)
}

func TestDeclaredInTop(t *testing.T) {
	tbl := New()
	tbl.Push()
	require.False(t, tbl.DeclaredInTop("y"))
	tbl.Add("y", VarSymbol(nil, types.Bool))
	require.True(t, tbl.DeclaredInTop("y"))

	tbl.Push()
	require.False(t, tbl.DeclaredInTop("y"), "shadowing in a nested scope is allowed")
}

func TestSearchMissing(t *testing.T) {
	tbl := New()
	tbl.Push()
	_, ok := tbl.Search("nope")
	require.False(t, ok)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "function", Function.String())
	require.Equal(t, "variable", Variable.String())
}
