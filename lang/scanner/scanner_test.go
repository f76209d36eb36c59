package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anxlang/anxc/lang/diag"
	"github.com/anxlang/anxc/lang/token"
)

func newScanner(t *testing.T, src string) *Scanner {
	t.Helper()
	d := diag.New("test.anx", []byte(src))
	d.Exit = func(code int) { t.Fatalf("unexpected diagnostic exit(%d) scanning %q", code, src) }
	return New(d, []byte(src))
}

func allTokens(s *Scanner) []token.Token {
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	s := newScanner(t, "fn pub ret var if else while break continue foo @out")
	toks := allTokens(s)
	kinds := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	require.Equal(t, []token.Kind{
		token.FN, token.PUB, token.RET, token.VAR, token.IF, token.ELSE,
		token.WHILE, token.BREAK, token.CONTINUE, token.IDENT, token.IDENT, token.EOF,
	}, kinds)
	require.Equal(t, "@out", toks[10].Lexeme)
}

func TestOperators(t *testing.T) {
	s := newScanner(t, "+ - * / % == != <= >= < > = !")
	toks := allTokens(s)
	var lexemes []string
	for _, tk := range toks[:len(toks)-1] {
		lexemes = append(lexemes, tk.Lexeme)
	}
	require.Equal(t, []string{"+", "-", "*", "/", "%", "==", "!=", "<=", ">=", "<", ">", "=", "!"}, lexemes)
	require.Equal(t, token.ASSIGN, toks[11].Kind)
	require.Equal(t, token.UNOP, toks[12].Kind)
}

func TestPunctuation(t *testing.T) {
	s := newScanner(t, "; , { } ( ) :")
	toks := allTokens(s)
	require.Equal(t, []token.Kind{
		token.EOL, token.COMMA, token.LBRACE, token.RBRACE, token.LPAREN, token.RPAREN, token.COLON, token.EOF,
	}, kindsOf(toks))
}

func kindsOf(toks []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(toks))
	for i, tk := range toks {
		kinds[i] = tk.Kind
	}
	return kinds
}

func TestLineComment(t *testing.T) {
	s := newScanner(t, "x # a comment\ny")
	toks := allTokens(s)
	require.Equal(t, []string{"x", "y"}, []string{toks[0].Lexeme, toks[1].Lexeme})
	row, _ := toks[1].Pos.RowCol()
	require.Equal(t, 1, row)
}

func TestNumberLiterals(t *testing.T) {
	cases := []string{"42", "42u16", "1.5f64", "0x2A", "0b101", "0o17", "1_000_000", "3."}
	for _, src := range cases {
		s := newScanner(t, src)
		tok := s.Next()
		require.Equal(t, token.NUMBER, tok.Kind, src)
		require.Equal(t, src, tok.Lexeme, src)
	}
}

func TestCharLiteral(t *testing.T) {
	s := newScanner(t, `'H' '\n'`)
	toks := allTokens(s)
	require.Equal(t, token.CHARACTER, toks[0].Kind)
	require.Equal(t, "'H'", toks[0].Lexeme)
	require.Equal(t, `'\n'`, toks[1].Lexeme)
}

func TestEmptyCharLiteralFails(t *testing.T) {
	d := diag.New("test.anx", []byte("''"))
	exited := false
	d.Exit = func(code int) { exited = true; panic("exit") }
	s := New(d, []byte("''"))
	require.PanicsWithValue(t, "exit", func() { s.Next() })
	require.True(t, exited)
}

func TestInvalidBinaryDigitFails(t *testing.T) {
	d := diag.New("test.anx", []byte("0b12"))
	d.Exit = func(code int) { panic("exit") }
	s := New(d, []byte("0b12"))
	require.PanicsWithValue(t, "exit", func() { s.Next() })
}

func TestHexFloatRejected(t *testing.T) {
	d := diag.New("test.anx", []byte("0x1.5"))
	d.Exit = func(code int) { panic("exit") }
	s := New(d, []byte("0x1.5"))
	require.PanicsWithValue(t, "exit", func() { s.Next() })
}

func TestBinaryFloatSuffixRejected(t *testing.T) {
	d := diag.New("test.anx", []byte("0b1f32"))
	d.Exit = func(code int) { panic("exit") }
	s := New(d, []byte("0b1f32"))
	require.PanicsWithValue(t, "exit", func() { s.Next() })
}

func TestOctalFloatSuffixRejected(t *testing.T) {
	d := diag.New("test.anx", []byte("0o1f32"))
	d.Exit = func(code int) { panic("exit") }
	s := New(d, []byte("0o1f32"))
	require.PanicsWithValue(t, "exit", func() { s.Next() })
}

func TestUnrecognizedEscapeFails(t *testing.T) {
	d := diag.New("test.anx", []byte(`'\t'`))
	d.Exit = func(code int) { panic("exit") }
	s := New(d, []byte(`'\t'`))
	require.PanicsWithValue(t, "exit", func() { s.Next() })
}

func TestRowColTracking(t *testing.T) {
	s := newScanner(t, "ab\ncd")
	toks := allTokens(s)
	row, col := toks[0].Pos.RowCol()
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)
	row, col = toks[1].Pos.RowCol()
	require.Equal(t, 1, row)
	require.Equal(t, 0, col)
}
