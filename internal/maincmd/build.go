package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/mainer"

	"github.com/anxlang/anxc/internal/driver"
)

const defaultOut = "a.out"

func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]
	out := c.Out
	if out == "" {
		out = defaultOut
	}

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return err
	}
	defer f.Close()

	moduleName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := driver.Build(path, moduleName, f); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return err
	}
	return nil
}
