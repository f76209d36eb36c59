// Package diag implements the compiler's fatal, colored, caret-underlined
// diagnostic reporter (spec.md §4.1). Anx has no error-recovery mode: the
// first diagnostic reported terminates the process with a nonzero exit
// code, so this is the only package under lang/ and internal/ that calls
// os.Exit (cmd/anxc's main also exits, with the code Cmd.Main returns).
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/anxlang/anxc/lang/token"
)

// Diagnostics carries the source needed to render a caret-underlined
// message: the file name and its line buffer, built once up front the way
// the lexer's line buffer is described in spec.md §4.3.
type Diagnostics struct {
	Filename string
	lines    []string

	// Out is where diagnostics are written; defaults to os.Stderr.
	Out io.Writer
	// Exit is called with the process exit code after a diagnostic is
	// printed; defaults to os.Exit. Tests override it to avoid killing the
	// test binary.
	Exit func(code int)

	// NoColor disables ANSI coloring of the caret underline, useful for
	// tests and for output redirected to a non-terminal.
	NoColor bool
}

// New builds a Diagnostics for the given filename and source bytes.
func New(filename string, src []byte) *Diagnostics {
	return &Diagnostics{
		Filename: filename,
		lines:    strings.Split(string(src), "\n"),
		Out:      os.Stderr,
		Exit:     os.Exit,
	}
}

func (d *Diagnostics) out() io.Writer {
	if d.Out != nil {
		return d.Out
	}
	return os.Stderr
}

func (d *Diagnostics) exit(code int) {
	if d.Exit != nil {
		d.Exit(code)
		return
	}
	os.Exit(code)
}

// Fail reports msg with no source position and terminates the process.
func (d *Diagnostics) Fail(msg string) {
	fmt.Fprintf(d.out(), "error: %s\n", msg)
	d.exit(1)
}

// FailAt reports msg anchored at pos, spanning span runes (minimum 1), with
// a colored, caret-underlined rendering of the offending source line, and
// terminates the process. This is the single primitive every other package
// uses to report a semantic, syntactic or lexical error.
func (d *Diagnostics) FailAt(msg string, pos token.Pos, span int) {
	if span < 1 {
		span = 1
	}
	row, col := pos.RowCol()

	fmt.Fprintf(d.out(), "error: %s\n", msg)
	if span > 1 {
		fmt.Fprintf(d.out(), "  --> %s:%d:%d-%d\n", d.Filename, row+1, col+1, col+span)
	} else {
		fmt.Fprintf(d.out(), "  --> %s:%d:%d\n", d.Filename, row+1, col+1)
	}

	if line, ok := d.line(row); ok {
		trimmed := strings.TrimLeft(line, " \t")
		lead := len(line) - len(trimmed)
		trimmed = strings.TrimRight(trimmed, " \t\r")

		fmt.Fprintf(d.out(), "   | %s\n", trimmed)

		caretCol := col - lead
		if caretCol < 0 {
			caretCol = 0
		}
		trailLen := len(trimmed) - caretCol - span
		if trailLen < 0 {
			trailLen = 0
		}
		carets := strings.Repeat("^", span)
		if !d.NoColor {
			carets = color.New(color.FgRed).Sprint(carets)
		}
		fmt.Fprintf(d.out(), "   | %s%s%s\n",
			strings.Repeat("~", caretCol), carets, strings.Repeat("~", trailLen))
	}

	d.exit(1)
}

func (d *Diagnostics) line(row int) (string, bool) {
	if row < 0 || row >= len(d.lines) {
		return "", false
	}
	return d.lines[row], true
}
