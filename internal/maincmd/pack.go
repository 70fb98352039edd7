package maincmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/mainer"
	"github.com/wired-desktop/shimejictl/pkg/wlpk"
)

// Pack assembles a converted mascot directory (manifest.json,
// scripts.json, actions.json, behaviors.json, assets/) into a .wlshm
// package file.
func (c *Cmd) Pack(ctx context.Context, stdio mainer.Stdio, args []string) error {
	dir, out := args[0], args[1]

	manifestData, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return printError(stdio, fmt.Errorf("pack: reading manifest.json: %w", err))
	}
	var manifest wlpk.Manifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		return printError(stdio, fmt.Errorf("pack: parsing manifest.json: %w", err))
	}

	scriptsData, err := os.ReadFile(filepath.Join(dir, "scripts.json"))
	if err != nil {
		return printError(stdio, fmt.Errorf("pack: reading scripts.json: %w", err))
	}
	var scripts struct {
		Programs []wlpk.ProgramEntry `json:"programs"`
	}
	if err := json.Unmarshal(scriptsData, &scripts); err != nil {
		return printError(stdio, fmt.Errorf("pack: parsing scripts.json: %w", err))
	}

	actionsData, err := os.ReadFile(filepath.Join(dir, "actions.json"))
	if err != nil {
		return printError(stdio, fmt.Errorf("pack: reading actions.json: %w", err))
	}
	behaviorsData, err := os.ReadFile(filepath.Join(dir, "behaviors.json"))
	if err != nil {
		return printError(stdio, fmt.Errorf("pack: reading behaviors.json: %w", err))
	}

	f, err := os.Create(out)
	if err != nil {
		return printError(stdio, fmt.Errorf("pack: creating %s: %w", out, err))
	}
	defer f.Close()

	pkg := wlpk.Package{
		Manifest:  manifest,
		Programs:  scripts.Programs,
		Actions:   rawJSON(actionsData),
		Behaviors: rawJSON(behaviorsData),
		Assets:    os.DirFS(filepath.Join(dir, "assets")),
	}
	if err := wlpk.Write(f, pkg); err != nil {
		return printError(stdio, err)
	}
	fmt.Fprintf(stdio.Stdout, "wrote %s\n", out)
	return nil
}

// rawJSON passes pre-marshaled JSON through verbatim, since the package's
// Actions/Behaviors fields are already the converter's output.
type rawJSON []byte

func (r rawJSON) MarshalJSON() ([]byte, error) { return r, nil }
