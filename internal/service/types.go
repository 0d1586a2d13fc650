// Package service defines the task model and the command surface the CLI talks to.
package service

import (
	"strings"
	"unicode/utf8"
)

// Task represents a single to-do item.
type Task struct {
	ID          int
	Description string
	Completed   bool
}

// State is the full persisted content of a task store.
type State struct {
	Tasks  []Task
	NextID int
}

// Limits bounds the size of a store.
type Limits struct {
	// MaxTasks is the maximum number of tasks held at once.
	MaxTasks int

	// MaxDescriptionLen is the maximum description length in bytes.
	MaxDescriptionLen int
}

// DefaultLimits matches the bounds of the classic tasks.txt format.
var DefaultLimits = Limits{
	MaxTasks:          100,
	MaxDescriptionLen: 100,
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// RemoteTask is a task as seen by a remote backend.
type RemoteTask struct {
	ID        string
	Title     string
	Completed bool
}

// NormalizeDescription makes a description safe for the line format and
// truncates it to max bytes without splitting a UTF-8 sequence.
// A max of zero or less disables truncation.
func NormalizeDescription(desc string, max int) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")
	return truncate(desc, max)
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
