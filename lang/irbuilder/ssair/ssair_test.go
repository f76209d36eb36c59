package ssair

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anxlang/anxc/lang/irbuilder"
	"github.com/anxlang/anxc/lang/types"
)

// buildAdd builds: func add(a i32, b i32) i32 { ret a + b }
func buildAdd(m *Module) irbuilder.Func {
	fn := m.CreateFunction("add", []types.Type{types.I32, types.I32}, types.I32, irbuilder.Internal)
	b := m.CreateBlock(fn, "entry")
	m.SetInsertBlock(b)
	a0 := m.Param(fn, 0)
	a1 := m.Param(fn, 1)
	sum := m.BinOp(irbuilder.Add, types.I32, a0, a1)
	m.Ret(sum)
	return fn
}

func TestBuildAndVerify(t *testing.T) {
	m := New("test")
	fn := buildAdd(m)
	require.NoError(t, m.Verify(fn))
}

func TestVerifyRejectsMissingTerminator(t *testing.T) {
	m := New("test")
	fn := m.CreateFunction("bad", nil, types.Void, irbuilder.Internal)
	b := m.CreateBlock(fn, "entry")
	m.SetInsertBlock(b)
	err := m.Verify(fn)
	require.ErrorContains(t, err, "no terminator")
}

func TestInterpRunsAdd(t *testing.T) {
	m := New("test")
	buildAdd(m)
	th := NewThread(m)
	result, err := th.Run("add", 40, 2)
	require.NoError(t, err)
	require.Equal(t, int64(42), result)
}

func TestInterpBranching(t *testing.T) {
	// func max(a i32, b i32) i32 { if a > b { ret a } ret b }
	m := New("test")
	fn := m.CreateFunction("max", []types.Type{types.I32, types.I32}, types.I32, irbuilder.Internal)
	entry := m.CreateBlock(fn, "entry")
	then := m.CreateBlock(fn, "then")
	els := m.CreateBlock(fn, "else")

	m.SetInsertBlock(entry)
	a0 := m.Param(fn, 0)
	a1 := m.Param(fn, 1)
	cond := m.Cmp(irbuilder.Gt, types.I32, a0, a1)
	m.CondBr(cond, then, els)

	m.SetInsertBlock(then)
	m.Ret(a0)

	m.SetInsertBlock(els)
	m.Ret(a1)

	require.NoError(t, m.Verify(fn))

	th := NewThread(m)
	r, err := th.Run("max", 7, 3)
	require.NoError(t, err)
	require.Equal(t, int64(7), r)

	r, err = th.Run("max", 2, 9)
	require.NoError(t, err)
	require.Equal(t, int64(9), r)
}

func TestOptimizeDropsUnreachableBlock(t *testing.T) {
	m := New("test")
	fn := m.CreateFunction("f", nil, types.I32, irbuilder.Internal)
	entry := m.CreateBlock(fn, "entry")
	dead := m.CreateBlock(fn, "dead")
	_ = dead

	m.SetInsertBlock(entry)
	one := m.ConstInt(types.I32, 1, 10)
	m.Ret(one)

	f := fn.(Func)
	before := len(m.Functions[f.idx].Blocks)
	m.Optimize(fn)
	after := len(m.Functions[f.idx].Blocks)
	require.Equal(t, 2, before)
	require.Equal(t, 1, after)
	require.NoError(t, m.Verify(fn))
}

func TestDumpAndEmitObject(t *testing.T) {
	m := New("test")
	buildAdd(m)

	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf))
	require.Contains(t, buf.String(), "func add")
	require.Contains(t, buf.String(), "ret")

	var obj bytes.Buffer
	require.NoError(t, m.EmitObject(&obj))
	require.Contains(t, obj.String(), "pseudo-object")
}

func TestSlotsLoadStore(t *testing.T) {
	// func f() i32 { var x i32 = 5; ret x }
	m := New("test")
	fn := m.CreateFunction("f", nil, types.I32, irbuilder.Internal)
	b := m.CreateBlock(fn, "entry")
	m.SetInsertBlock(b)
	slot := m.Alloca(fn, types.I32, "x")
	five := m.ConstInt(types.I32, 5, 10)
	m.Store(slot, five)
	v := m.Load(slot)
	m.Ret(v)

	require.NoError(t, m.Verify(fn))
	th := NewThread(m)
	r, err := th.Run("f")
	require.NoError(t, err)
	require.Equal(t, int64(5), r)
}
