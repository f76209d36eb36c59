package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSrc(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.anx")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestBuildEmitsObject(t *testing.T) {
	path := writeSrc(t, `pub fn main: i32 { ret 0; }`)

	var out bytes.Buffer
	require.NoError(t, Build(path, "main", &out))
	require.Contains(t, out.String(), "func main")
	require.Contains(t, out.String(), "; anx pseudo-object")
}

func TestBuildMissingFileFails(t *testing.T) {
	var out bytes.Buffer
	err := Build(filepath.Join(t.TempDir(), "missing.anx"), "main", &out)
	require.Error(t, err)
}

func TestTokenizeWritesOneLinePerToken(t *testing.T) {
	path := writeSrc(t, `pub fn main: i32 { ret 0; }`)

	var out bytes.Buffer
	require.NoError(t, Tokenize(path, &out))
	require.Contains(t, out.String(), "fn")
	require.Contains(t, out.String(), "end of file")
}

func TestParsePrintsTree(t *testing.T) {
	path := writeSrc(t, `pub fn main: i32 { ret 0; }`)

	var out bytes.Buffer
	require.NoError(t, Parse(path, &out))
	require.Contains(t, out.String(), "Program")
	require.Contains(t, out.String(), "FnDecl main pub=true -> i32")
	require.Contains(t, out.String(), "Ret")
	require.Contains(t, out.String(), "Num 0")
}
