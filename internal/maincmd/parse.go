package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/wired-desktop/shimejictl/lang/ast"
	"github.com/wired-desktop/shimejictl/lang/parser"
	"github.com/wired-desktop/shimejictl/lang/scanner"
)

// Parse scans and parses each expression given on the command line and
// prints the resulting AST.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	printer := ast.Printer{Output: stdio.Stdout}
	for _, raw := range args {
		body, _ := scanner.Prepare(raw)
		toks := scanner.Scan(body)
		node, err := parser.Parse(toks)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", raw, err)
			return err
		}
		if err := printer.Print(node); err != nil {
			return err
		}
	}
	return nil
}
