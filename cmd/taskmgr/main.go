// Package main is the entry point for the taskmgr CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskmgr/internal/backend/googletasks"
	"taskmgr/internal/cli"
	"taskmgr/internal/commands"
	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first signal lets the running command wind down (the menu saves
	// and exits); a second one exits at once.
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		<-sigChan
		os.Exit(exitcode.Interrupted)
	}()

	commands.NewRemote = func(ctx context.Context, cfg *config.Config) (service.Remote, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.FileStore)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
