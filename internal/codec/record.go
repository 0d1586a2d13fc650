// Package codec reads and writes the line-oriented task file.
//
// File layout:
//
//	<task_count>
//	<next_id>
//	<id>|<0|1>|<description>
//	...
//
// The description is the rest of the line after the second '|', so it may
// itself contain '|' but never a newline.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"taskmgr/internal/service"
)

const fieldSep = "|"

// RecordError describes a task line that could not be decoded.
type RecordError struct {
	Record int // 1-based record number
	Line   int // 1-based line number in the file, 0 if the line is missing
	Text   string
	Msg    string
}

func (e *RecordError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("record %d: %s", e.Record, e.Msg)
	}
	return fmt.Sprintf("record %d (line %d): %s", e.Record, e.Line, e.Msg)
}

func (e *RecordError) Unwrap() error { return service.ErrMalformedRecord }

// FormatRecord renders one task line without the trailing newline.
func FormatRecord(t service.Task) string {
	flag := "0"
	if t.Completed {
		flag = "1"
	}
	return strconv.Itoa(t.ID) + fieldSep + flag + fieldSep + service.NormalizeDescription(t.Description, 0)
}

// ParseRecord parses one task line (without its newline).
func ParseRecord(line string) (service.Task, error) {
	fields := strings.SplitN(line, fieldSep, 3)
	if len(fields) != 3 {
		return service.Task{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil || id < 1 {
		return service.Task{}, fmt.Errorf("invalid id %q", fields[0])
	}

	var completed bool
	switch fields[1] {
	case "0":
	case "1":
		completed = true
	default:
		return service.Task{}, fmt.Errorf("invalid completed flag %q", fields[1])
	}

	return service.Task{ID: id, Description: fields[2], Completed: completed}, nil
}
