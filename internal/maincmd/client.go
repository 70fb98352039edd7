package maincmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mna/mainer"
	"github.com/wired-desktop/shimejictl/internal/config"
	"github.com/wired-desktop/shimejictl/ipc/client"
	"github.com/wired-desktop/shimejictl/ipc/objects"
	"github.com/wired-desktop/shimejictl/ipc/proto"
)

// Client dispatches a `client <verb> [<arg>...]` sub-command to one of
// the verbs below through an explicit verb-to-function map.
func (c *Cmd) Client(ctx context.Context, stdio mainer.Stdio, args []string) error {
	verbs := map[string]func(context.Context, mainer.Stdio, *client.Client, []string) error{
		"connect": clientConnect,
		"import":  clientImport,
		"export":  clientExport,
		"spawn":   clientSpawn,
		"list":    clientList,
	}

	fn, ok := verbs[args[0]]
	if !ok {
		return printError(stdio, fmt.Errorf("client: unknown sub-verb %q", args[0]))
	}

	cfg, err := config.Load()
	if err != nil {
		return printError(stdio, err)
	}

	cl, err := client.Dial(client.Options{SocketPath: cfg.SocketPath, Start: cfg.Start, DaemonPath: cfg.DaemonPath})
	if err != nil {
		return printError(stdio, err)
	}
	defer cl.Close()

	if err := cl.Handshake(1); err != nil {
		return printError(stdio, err)
	}

	if err := fn(ctx, stdio, cl, args[1:]); err != nil {
		return printError(stdio, err)
	}
	return nil
}

func clientConnect(ctx context.Context, stdio mainer.Stdio, cl *client.Client, args []string) error {
	fmt.Fprintln(stdio.Stdout, "connected")
	return nil
}

func clientImport(ctx context.Context, stdio mainer.Stdio, cl *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("client import: expected <path>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("client import: %w", err)
	}
	defer f.Close()

	id := cl.Objects().AllocID(objects.KindImport)
	cl.Objects().Put(&objects.Import{ID: id, FD: f})
	if err := cl.Send(proto.ImportPrototype{NewID: id}, 0, int(f.Fd())); err != nil {
		return err
	}

	return cl.DispatchEvents(ctx, func(h proto.Header, msg any) bool {
		switch m := msg.(type) {
		case proto.ImportFinished:
			fmt.Fprintf(stdio.Stdout, "imported prototype %d\n", m.PrototypeID)
			return true
		case proto.ImportFailed:
			fmt.Fprintf(stdio.Stderr, "import failed: code %d\n", m.Code)
			return true
		}
		return false
	})
}

func clientExport(ctx context.Context, stdio mainer.Stdio, cl *client.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("client export: expected <prototype-id> <path>")
	}
	protoID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("client export: invalid prototype id: %w", err)
	}
	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("client export: %w", err)
	}
	defer f.Close()

	id := cl.Objects().AllocID(objects.KindExport)
	cl.Objects().Put(&objects.Export{ID: id, FD: f, PrototypeID: uint32(protoID)})
	if err := cl.Send(proto.ExportPrototype{NewID: id, PrototypeID: uint32(protoID)}, 0, int(f.Fd())); err != nil {
		return err
	}

	return cl.DispatchEvents(ctx, func(h proto.Header, msg any) bool {
		switch m := msg.(type) {
		case proto.ExportFinished:
			fmt.Fprintln(stdio.Stdout, "export finished")
			return true
		case proto.ExportFailed:
			fmt.Fprintf(stdio.Stderr, "export failed: code %d\n", m.Code)
			return true
		}
		return false
	})
}

func clientSpawn(ctx context.Context, stdio mainer.Stdio, cl *client.Client, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("client spawn: expected <proto-id> <env-id> <x> <y> [behavior]")
	}
	protoID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("client spawn: invalid prototype id: %w", err)
	}
	envID, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("client spawn: invalid environment id: %w", err)
	}
	x, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return fmt.Errorf("client spawn: invalid x: %w", err)
	}
	y, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return fmt.Errorf("client spawn: invalid y: %w", err)
	}
	behavior := ""
	if len(args) > 4 {
		behavior = args[4]
	}

	return cl.Send(proto.Spawn{
		PrototypeID:   uint32(protoID),
		EnvironmentID: uint32(envID),
		X:             uint32(x),
		Y:             uint32(y),
		Behavior:      behavior,
	}, 0)
}

func clientList(ctx context.Context, stdio mainer.Stdio, cl *client.Client, args []string) error {
	deadline, cancel := context.WithTimeout(ctx, 2e9)
	defer cancel()
	return cl.DispatchEvents(deadline, func(h proto.Header, msg any) bool {
		switch m := msg.(type) {
		case proto.EnvironmentAnnouncement:
			fmt.Fprintf(stdio.Stdout, "environment %d: %s\n", m.NewID, m.Name)
		case proto.EnvironmentMascot:
			fmt.Fprintf(stdio.Stdout, "mascot %d (prototype %d)\n", m.NewMascotID, m.PrototypeID)
		}
		return false
	})
}
