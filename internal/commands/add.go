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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "taskmgr add [common flags] <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	// An explicitly empty description ("") is a valid task; no argument at all is not.
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}
	description := strings.Join(args, " ")
	if len(description) > cfg.MaxDescriptionLen {
		fmt.Fprintf(errOut, "warning: description truncated to %d bytes\n", cfg.MaxDescriptionLen)
	}

	task, err := svc.Add(description)
	if mutationFailed(err) {
		return reportFailure(errOut, err)
	}
	return reportApplied(cfg, out, errOut, "added", task, err)
}
