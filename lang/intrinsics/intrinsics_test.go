package intrinsics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anxlang/anxc/lang/irbuilder/ssair"
	"github.com/anxlang/anxc/lang/types"
)

func TestResolveOutMaterializesOnce(t *testing.T) {
	m := ssair.New("test")
	tbl := New(m)

	fn1, params, ret, err := tbl.Resolve("@out")
	require.NoError(t, err)
	require.NotNil(t, fn1)
	require.Equal(t, []types.Type{types.I32}, params)
	require.Equal(t, types.I32, ret)

	fn2, _, _, err := tbl.Resolve("@out")
	require.NoError(t, err)
	require.Equal(t, fn1, fn2)
}

func TestResolveUnknownFails(t *testing.T) {
	m := ssair.New("test")
	tbl := New(m)

	_, _, _, err := tbl.Resolve("@nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unrecognized intrinsic function")
}
