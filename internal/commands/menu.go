package commands

import (
	"bufio"
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

func init() {
	Register(&MenuCmd{})
}

// MenuCmd runs the interactive menu. It is the default command.
type MenuCmd struct{}

func (c *MenuCmd) Name() string      { return "menu" }
func (c *MenuCmd) Aliases() []string { return nil }
func (c *MenuCmd) Synopsis() string  { return "Interactive menu (default)" }
func (c *MenuCmd) Usage() string     { return "taskmgr [menu] [common flags]" }
func (c *MenuCmd) NeedsStore() bool  { return true }

func (c *MenuCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MenuCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	done := make(chan struct{})
	defer close(done)

	s := &menuSession{
		ctx:    ctx,
		cfg:    cfg,
		svc:    svc,
		lines:  readLines(in, done),
		out:    out,
		errOut: errOut,
	}

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(out)
			return s.exit()
		}

		output.FormatMenu(out)
		choice, err := s.readLine()
		if err != nil {
			// Input closed or interrupted: leave the loop as if exit was chosen.
			fmt.Fprintln(out)
			return s.exit()
		}

		switch strings.TrimSpace(choice) {
		case output.ChoiceView:
			s.view()
		case output.ChoiceAdd:
			err = s.add()
		case output.ChoiceComplete:
			err = s.complete()
		case output.ChoiceRemove:
			err = s.remove()
		case output.ChoiceExit:
			return s.exit()
		default:
			fmt.Fprintln(out, "\nInvalid choice. Please enter a number between 1 and 5.")
		}
		if err != nil {
			fmt.Fprintln(out)
			return s.exit()
		}
	}
}

// menuSession holds the state of one interactive run.
type menuSession struct {
	ctx    context.Context
	cfg    *config.Config
	svc    service.Service
	lines  <-chan inputLine
	out    io.Writer
	errOut io.Writer
}

type inputLine struct {
	text string
	err  error
}

// readLines feeds lines from r until it fails or done is closed.
// A read blocked on r outlives done; it ends when r is closed.
func readLines(r io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			if err != nil && errors.Is(err, io.EOF) && text != "" {
				// Final line without a newline; EOF follows on the next read.
				err = nil
			}
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// readLine returns the next input line without its line ending.
// It fails with io.EOF when input is exhausted and with the context's
// error when the session is interrupted.
func (s *menuSession) readLine() (string, error) {
	select {
	case l, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		text := strings.TrimSuffix(l.text, "\n")
		return strings.TrimSuffix(text, "\r"), nil
	case <-s.ctx.Done():
		return "", s.ctx.Err()
	}
}

func (s *menuSession) view() []service.Task {
	tasks := s.svc.List()
	fmt.Fprintln(s.out)
	output.FormatTaskTable(s.out, tasks)
	return tasks
}

func (s *menuSession) add() error {
	fmt.Fprintf(s.out, "\nEnter task description (max %d chars):\n> ", s.cfg.MaxDescriptionLen)
	description, err := s.readLine()
	if err != nil {
		return err
	}

	task, err := s.svc.Add(description)
	switch {
	case mutationFailed(err):
		fmt.Fprintf(s.out, "Error: %v.\n", err)
	case err != nil:
		fmt.Fprintf(s.out, "Task #%d added, but it could not be saved: %v\n", task.ID, err)
	default:
		fmt.Fprintf(s.out, "Success: Task #%d added.\n", task.ID)
	}
	return nil
}

func (s *menuSession) complete() error {
	id, ok, err := s.promptID("Enter the ID of the task to mark as COMPLETED: ")
	if err != nil || !ok {
		return err
	}

	task, err := s.svc.Complete(id)
	switch {
	case mutationFailed(err):
		fmt.Fprintf(s.out, "Error: Task with ID %d not found.\n", id)
	case err != nil:
		fmt.Fprintf(s.out, "Task %s marked as COMPLETED, but it could not be saved: %v\n", output.FormatTaskRef(task), err)
	default:
		fmt.Fprintf(s.out, "Success: Task %s marked as COMPLETED.\n", output.FormatTaskRef(task))
	}
	return nil
}

func (s *menuSession) remove() error {
	id, ok, err := s.promptID("Enter the ID of the task to REMOVE: ")
	if err != nil || !ok {
		return err
	}

	task, err := s.svc.Remove(id)
	switch {
	case mutationFailed(err):
		fmt.Fprintf(s.out, "Error: Task with ID %d not found.\n", id)
	case err != nil:
		fmt.Fprintf(s.out, "Task %s removed, but the change could not be saved: %v\n", output.FormatTaskRef(task), err)
	default:
		fmt.Fprintf(s.out, "Success: Removed Task %s.\n", output.FormatTaskRef(task))
	}
	return nil
}

// promptID shows the task table and asks for an id.
// ok is false when there is nothing to choose from or the input is not a number.
func (s *menuSession) promptID(prompt string) (id int, ok bool, err error) {
	if len(s.view()) == 0 {
		return 0, false, nil
	}

	fmt.Fprint(s.out, "\n"+prompt)
	line, err := s.readLine()
	if err != nil {
		return 0, false, err
	}
	id, perr := parseID(line)
	if perr != nil {
		fmt.Fprintln(s.out, "Invalid input. Please enter a number.")
		return 0, false, nil
	}
	return id, true, nil
}

// exit saves any change a failed write-through left behind.
func (s *menuSession) exit() int {
	if err := s.svc.Flush(); err != nil {
		fmt.Fprintf(s.errOut, "error: tasks could not be saved: %v\n", err)
		return exitcode.StorageError
	}
	fmt.Fprintln(s.out, "\nExiting Task Manager.")
	return exitcode.Success
}
