package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd forgets the Google token; push needs a new login afterwards.
// The OAuth client file is left alone.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove stored Google credentials" }
func (c *LogoutCmd) Usage() string     { return "taskmgr logout [common flags]" }
func (c *LogoutCmd) NeedsStore() bool  { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	msg := "logged out"
	switch err := cfg.RemoveToken(); {
	case errors.Is(err, fs.ErrNotExist):
		msg = "not logged in"
	case err != nil:
		fmt.Fprintf(errOut, "error: failed to remove %s: %v\n", cfg.TokenPath(), err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}
