package maincmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mna/mainer"
	"github.com/wired-desktop/shimejictl/lang/compiler"
	"github.com/wired-desktop/shimejictl/lang/parser"
	"github.com/wired-desktop/shimejictl/lang/scanner"
	"github.com/wired-desktop/shimejictl/lang/serializer"
)

// Compile scans, parses, and compiles each expression given on the
// command line, printing its symbol tables and hex-encoded instruction
// stream.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, raw := range args {
		body, evaluateOnce := scanner.Prepare(raw)
		toks := scanner.Scan(body)
		node, err := parser.Parse(toks)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", raw, err)
			return err
		}
		prog := compiler.Compile(node, evaluateOnce)
		hex, err := serializer.Emit(prog)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", raw, err)
			return err
		}
		fmt.Fprintf(stdio.Stdout, "locals:    [%s]\n", strings.Join(prog.Locals, ", "))
		fmt.Fprintf(stdio.Stdout, "globals:   [%s]\n", strings.Join(prog.Globals, ", "))
		fmt.Fprintf(stdio.Stdout, "functions: [%s]\n", strings.Join(prog.Functions, ", "))
		fmt.Fprintf(stdio.Stdout, "evaluate_once: %t\n", prog.EvaluateOnce)
		fmt.Fprintf(stdio.Stdout, "instructions: %s\n\n", hex)
	}
	return nil
}
