package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anxlang/anxc/lang/token"
)

func TestFailAt(t *testing.T) {
	var buf bytes.Buffer
	var exitCode int
	d := New("test.anx", []byte("  var x: i32 = 1;\n"))
	d.Out = &buf
	d.NoColor = true
	d.Exit = func(code int) { exitCode = code }

	d.FailAt("unrecognized type", token.MakePos(0, 9), 3)

	require.Equal(t, 1, exitCode)
	out := buf.String()
	require.Contains(t, out, "error: unrecognized type")
	require.Contains(t, out, "test.anx:1:10-12")
	require.Contains(t, out, "var x: i32 = 1;")
	require.Contains(t, out, "^^^")
}

func TestFailNoExitOverride(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	d := New("test.anx", []byte("x"))
	d.Out = &buf
	d.Exit = func(int) { calls++ }

	d.Fail("could not open file 'x'")
	require.Equal(t, 1, calls)
	require.Contains(t, buf.String(), "could not open file 'x'")
}
