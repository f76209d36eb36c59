package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindStrings(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		require.NotEmpty(t, k.String(), "kind %d missing string representation", k)
	}
}

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		lit  string
		want Kind
	}{
		{"fn", FN},
		{"pub", PUB},
		{"ret", RET},
		{"var", VAR},
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"break", BREAK},
		{"continue", CONTINUE},
		{"x", IDENT},
		{"@out", IDENT},
		{"functional", IDENT},
	}
	for _, c := range cases {
		require.Equal(t, c.want, LookupIdent(c.lit), c.lit)
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "';'", EOL.GoString())
	require.Equal(t, "fn", FN.GoString())
}
