// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskmgr/internal/service"
)

const (
	// ListTitle heads the task table.
	ListTitle = "--- Task List ---"

	// ListFooter closes the task table.
	ListFooter = "-----------------"

	// EmptyList is printed instead of a table when there are no tasks.
	EmptyList = "No tasks currently in the list."

	tableHeader = " ID | Status     | Description"
	tableRule   = "----|------------|------------------------------"
)

// Status returns the display status of a task.
func Status(task service.Task) string {
	if task.Completed {
		return "COMPLETED"
	}
	return "INCOMPLETE"
}

// FormatTaskTable writes every task as a table, or the empty-list notice.
func FormatTaskTable(w io.Writer, tasks []service.Task) {
	fmt.Fprintln(w, ListTitle)
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyList)
		fmt.Fprintln(w, ListFooter)
		return
	}

	fmt.Fprintln(w, tableHeader)
	fmt.Fprintln(w, tableRule)
	for _, task := range tasks {
		FormatTaskRow(w, task)
	}
	fmt.Fprintln(w, ListFooter)
}

// FormatTaskRow formats a single table row.
// Format: " {ID:>2} | {STATUS:<10} | {DESCRIPTION}\n"
func FormatTaskRow(w io.Writer, task service.Task) {
	fmt.Fprintf(w, " %2d | %-10s | %s\n", task.ID, Status(task), normalizeDescription(task.Description))
}

// FormatTaskRef formats a task as "#ID ('DESCRIPTION')" for confirmations.
func FormatTaskRef(task service.Task) string {
	return fmt.Sprintf("#%d ('%s')", task.ID, normalizeDescription(task.Description))
}

// RemoteTitle is the title a task gets when pushed to a remote list.
func RemoteTitle(task service.Task) string {
	return fmt.Sprintf("#%d %s", task.ID, strings.TrimSpace(task.Description))
}

// normalizeDescription normalizes a description for display.
// Empty or whitespace-only descriptions become "(untitled)".
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")
	if strings.TrimSpace(desc) == "" {
		return "(untitled)"
	}
	return desc
}
