// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown id, full list).
	UserError = 1

	// AuthError indicates a missing or rejected Google login.
	AuthError = 2

	// StorageError indicates the task file could not be written.
	StorageError = 3

	// RemoteError indicates a Google Tasks API or network error.
	RemoteError = 4

	// Interrupted is used when a second signal aborts the program.
	Interrupted = 130
)
