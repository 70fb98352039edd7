package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/wired-desktop/shimejictl/lang/scanner"
)

// Tokenize scans each expression given on the command line and prints
// its token stream, one expression per blank-line-separated block.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for i, raw := range args {
		if i > 0 {
			fmt.Fprintln(stdio.Stdout)
		}
		body, _ := scanner.Prepare(raw)
		toks := scanner.Scan(body)
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%s %q\n", tok.Kind, tok.Lexeme)
		}
	}
	return nil
}
