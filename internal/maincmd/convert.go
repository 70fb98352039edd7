package maincmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/wired-desktop/shimejictl/convert"
)

// Convert reads an actions.xml/behaviors.xml pair and prints the
// resulting programs/actions/behaviors documents as JSON, plus any
// non-fatal warnings to stderr.
func (c *Cmd) Convert(ctx context.Context, stdio mainer.Stdio, args []string) error {
	actionsXML, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, fmt.Errorf("convert: reading %s: %w", args[0], err))
	}
	behaviorsXML, err := os.ReadFile(args[1])
	if err != nil {
		return printError(stdio, fmt.Errorf("convert: reading %s: %w", args[1], err))
	}

	result, warnings, err := convert.Convert(actionsXML, behaviorsXML)
	if err != nil {
		return printError(stdio, err)
	}

	for _, w := range warnings {
		fmt.Fprintf(stdio.Stderr, "warning: %s\n", w.Message)
	}

	enc := json.NewEncoder(stdio.Stdout)
	enc.SetIndent("", "  ")
	doc := map[string]any{
		"programs":       result.Programs,
		"actions":        result.Actions,
		"behaviors":      result.Behaviors,
		"root_behaviors": result.RootBehaviors,
	}
	if err := enc.Encode(doc); err != nil {
		return printError(stdio, err)
	}
	return nil
}
