package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/output"
	"taskmgr/internal/service"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the task id from the first positional argument.
// Ids are positive integers; a leading '#' is accepted ("#3").
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	return parseID(args[0])
}

func parseID(s string) (int, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return id, nil
}

// reportFailure prints a store error and returns the matching exit code.
func reportFailure(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	if errors.Is(err, service.ErrIO) {
		return exitcode.StorageError
	}
	return exitcode.UserError
}

// reportApplied prints the outcome of a mutation that took effect in memory.
// A save failure keeps the change but is reported as unsaved.
func reportApplied(cfg *config.Config, out, errOut io.Writer, verb string, task service.Task, err error) int {
	if err != nil {
		fmt.Fprintf(errOut, "warning: %s task %s but could not save: %v\n", verb, output.FormatTaskRef(task), err)
		return exitcode.StorageError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "%s task %s\n", verb, output.FormatTaskRef(task))
	}
	return exitcode.Success
}

// mutationFailed reports whether err means the mutation was not applied.
func mutationFailed(err error) bool {
	return err != nil && !errors.Is(err, service.ErrIO)
}
