package service

import "context"

// Service is the command surface exposed to the presentation layer.
// Every mutating call persists the whole store before returning.
type Service interface {
	// List returns tasks in insertion order. The result is never nil.
	List() []Task

	// Add appends a new open task.
	// Returns ErrCapacityExceeded if the store is full.
	Add(description string) (Task, error)

	// Complete marks a task completed. Completing twice is a no-op.
	// Returns ErrNotFound if no task has the id.
	Complete(id int) (Task, error)

	// Remove deletes a task and returns its last state.
	// Returns ErrNotFound if no task has the id.
	Remove(id int) (Task, error)

	// Flush retries the save if an earlier write-through failed.
	Flush() error
}

// Remote defines the operations used to export tasks to a hosted task list.
// Commands never import the Google SDK directly.
type Remote interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound if no list matches.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list, completed ones included.
	ListTasks(ctx context.Context, listID string) ([]RemoteTask, error)

	// CreateTask creates a task in the list.
	CreateTask(ctx context.Context, listID string, task RemoteTask) error
}
