package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/output"
	"taskmgr/internal/service"
)

// RemoteFactory creates the remote backend used by push.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

// NewRemote is set by main to the Google Tasks backend.
var NewRemote RemoteFactory

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
	all      bool
	remote   service.Remote
}

// SetListName sets the target list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetAll includes completed tasks (for testing).
func (c *PushCmd) SetAll(all bool) {
	c.all = all
}

// SetRemote overrides the remote backend (for testing).
func (c *PushCmd) SetRemote(r service.Remote) {
	c.remote = r
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string {
	return "taskmgr push [common flags] [--list <list-name>] [--all]"
}
func (c *PushCmd) NeedsStore() bool { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	remote, code := c.connect(ctx, cfg, errOut)
	if remote == nil {
		return code
	}

	var list service.TaskList
	var err error
	if c.listName != "" {
		list, err = remote.ResolveList(ctx, c.listName)
		switch {
		case errors.Is(err, service.ErrNotFound):
			fmt.Fprintf(errOut, "error: list not found: %s\n", c.listName)
			return exitcode.UserError
		case errors.Is(err, service.ErrAmbiguous):
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", c.listName)
			return exitcode.UserError
		}
	} else {
		list, err = remote.DefaultList(ctx)
	}
	if err != nil {
		return remoteFailure(errOut, err)
	}

	existing, err := remote.ListTasks(ctx, list.ID)
	if err != nil {
		return remoteFailure(errOut, err)
	}
	titles := make(map[string]bool, len(existing))
	for _, t := range existing {
		titles[strings.TrimSpace(t.Title)] = true
	}

	pushed, skipped := 0, 0
	for _, task := range svc.List() {
		if task.Completed && !c.all {
			continue
		}
		title := output.RemoteTitle(task)
		if titles[title] {
			skipped++
			continue
		}
		if err := remote.CreateTask(ctx, list.ID, service.RemoteTask{Title: title, Completed: task.Completed}); err != nil {
			fmt.Fprintf(errOut, "error: pushed %d tasks before failing on task #%d\n", pushed, task.ID)
			return remoteFailure(errOut, err)
		}
		titles[title] = true
		pushed++
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d tasks to %s (%d already present)\n", pushed, list.Title, skipped)
	}
	return exitcode.Success
}

// connect returns the remote, or nil and an exit code after reporting why not.
func (c *PushCmd) connect(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Remote, int) {
	if c.remote != nil {
		return c.remote, exitcode.Success
	}
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
		return nil, exitcode.AuthError
	}
	if !cfg.HasToken() {
		fmt.Fprintln(errOut, "error: not logged in (run: taskmgr login)")
		return nil, exitcode.AuthError
	}
	if NewRemote == nil {
		fmt.Fprintln(errOut, "error: no remote backend configured")
		return nil, exitcode.RemoteError
	}

	remote, err := NewRemote(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return nil, exitcode.AuthError
	}
	return remote, exitcode.Success
}

func remoteFailure(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrUnauthorized) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: remote error: %v\n", err)
	return exitcode.RemoteError
}
