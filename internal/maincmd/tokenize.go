package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/anxlang/anxc/internal/driver"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if err := driver.Tokenize(args[0], stdio.Stdout); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return err
	}
	return nil
}
