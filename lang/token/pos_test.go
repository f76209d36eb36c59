package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePosRoundTrip(t *testing.T) {
	cases := []struct{ row, col int }{
		{0, 0},
		{1, 0},
		{0, 1},
		{12, 34},
		{MaxRows, MaxCols},
	}
	for _, c := range cases {
		p := MakePos(c.row, c.col)
		row, col := p.RowCol()
		require.Equal(t, c.row, row)
		require.Equal(t, c.col, col)
	}
}

func TestPosString(t *testing.T) {
	p := MakePos(2, 5)
	require.Equal(t, "3:6", p.String())
}

func TestDefaultSpan(t *testing.T) {
	p := MakePos(0, 0)
	sp := DefaultSpan(p)
	require.Equal(t, p, sp.Start)
	require.Equal(t, 1, sp.Size)
}
