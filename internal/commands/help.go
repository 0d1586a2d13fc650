package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd lists every command, or describes one: "taskmgr help add".
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Show commands, or details for one" }
func (c *HelpCmd) Usage() string     { return "taskmgr help [command]" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	switch len(args) {
	case 0:
		fmt.Fprintln(out, "Usage:")
		for _, cmd := range DefaultRegistry.All() {
			fmt.Fprintf(out, "  %-60s %s\n", usageLine(cmd), cmd.Synopsis())
		}
		fmt.Fprint(out, commonFlagsHelp)
		return exitcode.Success
	case 1:
		cmd, ok := DefaultRegistry.Find(args[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		fmt.Fprintf(out, "%s\n\n  %s\n", cmd.Synopsis(), usageLine(cmd))
		fmt.Fprint(out, commonFlagsHelp)
		return exitcode.Success
	default:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}
}

func usageLine(cmd Command) string {
	line := cmd.Usage()
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		line += " (alias: " + strings.Join(aliases, ", ") + ")"
	}
	return line
}

const commonFlagsHelp = `
Common flags (also accepted before the command name, which then defaults to menu):
  --config <dir>   Config directory (default $XDG_CONFIG_HOME/taskmgr)
  --file <path>    Task file (default <config dir>/tasks.txt)
  --quiet          Only print warnings and errors
  --debug          Log at debug level on stderr
`
