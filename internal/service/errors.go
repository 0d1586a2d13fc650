package service

import "errors"

var (
	// ErrNotFound is returned when an id does not match any task.
	ErrNotFound = errors.New("task not found")

	// ErrCapacityExceeded is returned when adding to a full store.
	ErrCapacityExceeded = errors.New("task list is full")

	// ErrIO wraps failures reading or writing the task file.
	ErrIO = errors.New("task file i/o error")

	// ErrAmbiguous is returned when a remote list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous list name")

	// ErrUnauthorized is returned when the remote rejects the stored login.
	ErrUnauthorized = errors.New("token expired or revoked (run: taskmgr login)")

	// ErrMalformedRecord marks a persisted line that could not be parsed.
	ErrMalformedRecord = errors.New("malformed task record")
)
