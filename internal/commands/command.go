// Package commands holds the CLI commands. Each file registers one command
// with DefaultRegistry from init; the dispatcher looks them up by name or alias.
package commands

import (
	"context"
	"flag"
	"io"

	"taskmgr/internal/config"
	"taskmgr/internal/service"
)

// Command is one CLI verb.
//
// Name, Aliases, Synopsis and Usage feed lookup and help output.
// RegisterFlags adds flags beyond the common ones.
// NeedsStore makes the dispatcher load the task file and pass the store as
// svc; otherwise svc is nil. Only the menu reads in. Run returns an exit code
// from package exitcode.
type Command interface {
	Name() string
	Aliases() []string
	Synopsis() string
	Usage() string
	NeedsStore() bool
	RegisterFlags(fs *flag.FlagSet)
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int
}
