// Package driver orchestrates one source file through the whole pipeline:
// read, scan, parse, lower, and emit (spec.md §6.1, §6.3). It is the single
// place internal/maincmd calls into, so the CLI layer itself stays a thin
// argument/flag/stdio shim, the way the teacher's maincmd commands delegate
// to a package-level helper (internal/maincmd's old TokenizeFiles/ParseFiles
// functions) rather than inlining pipeline logic in the Cmd methods.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/anxlang/anxc/lang/ast"
	"github.com/anxlang/anxc/lang/compiler"
	"github.com/anxlang/anxc/lang/diag"
	"github.com/anxlang/anxc/lang/irbuilder/ssair"
	"github.com/anxlang/anxc/lang/parser"
	"github.com/anxlang/anxc/lang/scanner"
	"github.com/anxlang/anxc/lang/token"
)

// Build reads the source file at path, compiles it, and writes the emitted
// object to out. moduleName names the resulting lang/irbuilder/ssair.Module;
// it does not appear in the emitted output. There is no error-recovery
// mode (spec.md §4.1): a lexical, syntactic or semantic error terminates the
// process from inside diag.Diagnostics before Build ever returns.
func Build(path, moduleName string, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	d := diag.New(path, src)
	sc := scanner.New(d, src)
	prog := parser.Parse(d, sc)

	m := ssair.New(moduleName)
	compiler.Compile(d, m, prog)

	return m.EmitObject(out)
}

// Tokenize reads the source file at path and writes one line per token to
// out, in the teacher's maincmd.TokenizeFiles format: a position followed by
// the token's kind, followed by its lexeme for tokens that carry one.
func Tokenize(path string, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	d := diag.New(path, src)
	sc := scanner.New(d, src)

	for {
		tok := sc.Next()
		if err := writeToken(out, path, tok); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			return nil
		}
	}
}

// Parse reads the source file at path and pretty-prints its AST to out,
// via ast.Printer, the debug-aid mirror of the teacher's maincmd.ParseFiles.
func Parse(path string, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	d := diag.New(path, src)
	sc := scanner.New(d, src)
	prog := parser.Parse(d, sc)

	p := &ast.Printer{Output: out, Pos: true}
	return p.Print(prog)
}

func writeToken(out io.Writer, path string, tok token.Token) error {
	if tok.Lexeme == "" {
		_, err := fmt.Fprintf(out, "%s:%s %s\n", path, tok.Pos, tok.Kind)
		return err
	}
	_, err := fmt.Fprintf(out, "%s:%s %s %q\n", path, tok.Pos, tok.Kind, tok.Lexeme)
	return err
}
