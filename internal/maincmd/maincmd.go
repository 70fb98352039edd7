package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "shimejictl"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<arg>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<arg>...] [-- <arg>...]
       %[1]s -h|--help
       %[1]s -v|--version

Control-plane toolchain for the Shimeji-ee desktop mascot overlay: compiles
inline expressions, converts legacy XML mascot definitions, packages the
result, and talks to the running overlay daemon over its Unix socket.

The <command> can be one of:
       tokenize <expr>...        Tokenize one or more inline expressions
                                 and print their token streams.
       parse <expr>...           Parse one or more inline expressions and
                                 print the resulting AST.
       compile <expr>...         Compile one or more inline expressions
                                 and print their symbol tables and hex
                                 instruction stream.
       convert <actions.xml> <behaviors.xml>
                                 Convert a mascot definition pair into
                                 programs/actions/behaviors JSON.
       pack <dir> <out.wlshm>    Package a converted mascot directory
                                 (manifest.json, scripts.json,
                                 actions.json, behaviors.json, assets/)
                                 into a .wlshm file.
       client <verb> [<arg>...]  Talk to the running overlay daemon; <verb>
                                 is connect, import, export, spawn or list.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the top-level CLI command, dispatching to one verb method per
// the reflection-based table built by buildCmds.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	switch cmdName {
	case "tokenize", "parse", "compile":
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one expression must be provided", cmdName)
		}
	case "convert":
		if len(c.args[1:]) != 2 {
			return fmt.Errorf("convert: expected <actions.xml> <behaviors.xml>")
		}
	case "pack":
		if len(c.args[1:]) != 2 {
			return fmt.Errorf("pack: expected <dir> <out.wlshm>")
		}
	case "client":
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("client: a sub-verb is required")
		}
	}

	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of strings as
// input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
