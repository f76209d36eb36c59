// Package grammar carries no Go logic of its own: it pins down the source
// grammar (spec §6.2) as a verifiable EBNF file, the way the teacher keeps
// its own language grammar alongside a test that checks it for undefined or
// unreachable productions.
package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestEBNF(t *testing.T) {
	f, err := os.Open("grammar.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("grammar.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Unit"); err != nil {
		t.Fatal(err)
	}
}
