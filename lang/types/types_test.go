package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	ty, err := FromString("i32", false)
	require.NoError(t, err)
	require.Equal(t, I32, ty)

	_, err = FromString("void", false)
	require.ErrorContains(t, err, "void not allowed here")

	ty, err = FromString("void", true)
	require.NoError(t, err)
	require.Equal(t, Void, ty)

	_, err = FromString("nope", false)
	require.ErrorContains(t, err, "unrecognized type")
}

func TestWidth(t *testing.T) {
	cases := map[Type]int{
		Void: 0, Bool: 1,
		I8: 8, U8: 8,
		I16: 16, U16: 16,
		I32: 32, U32: 32, F32: 32,
		I64: 64, U64: 64, F64: 64,
		I128: 128, U128: 128,
	}
	for ty, want := range cases {
		require.Equal(t, want, ty.Width(), ty.String())
	}
}

func TestClassification(t *testing.T) {
	require.True(t, I8.IsSigned())
	require.False(t, U8.IsSigned())
	require.True(t, U8.IsUnsigned())
	require.True(t, Bool.IsUnsigned())
	require.True(t, F32.IsFloat())
	require.True(t, F64.IsDouble())
	require.False(t, F32.IsDouble())
}

func TestCoerceMatrix(t *testing.T) {
	cases := []struct {
		from, to Type
		want     Coercion
	}{
		{F32, F64, FPExt},
		{F64, F32, FPTrunc},
		{F64, I32, FPToSI},
		{F64, U32, FPToUI},
		{F32, Bool, FPToBool},
		{I32, F64, SIToFP},
		{U32, F64, UIToFP},
		{I32, U32, Bitcast},
		{I8, I32, SExt},
		{U8, I32, ZExt},
		{Bool, I32, ZExt},
		{I32, I8, Trunc},
		{I32, Bool, IntToBool},
		{I32, I32, Identity},
	}
	for _, c := range cases {
		got, err := Coerce(c.from, c.to)
		require.NoError(t, err, "%s -> %s", c.from, c.to)
		require.Equal(t, c.want, got, "%s -> %s", c.from, c.to)
	}
}

func TestCoercionString(t *testing.T) {
	require.Equal(t, "sext", SExt.String())
	require.Equal(t, "identity", Identity.String())
}

func TestCoerceRejectsVoid(t *testing.T) {
	_, err := Coerce(Void, I32)
	require.ErrorContains(t, err, "cannot coerce type 'void' to 'i32'")

	_, err = Coerce(I32, Void)
	require.Error(t, err)
}
