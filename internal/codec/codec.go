package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskmgr/internal/service"
)

// Report summarizes a decode.
type Report struct {
	// Declared is the task count read from the header, after defaulting.
	Declared int

	// Loaded is the number of tasks actually decoded.
	Loaded int

	// Warnings lists header defaults and truncations, in file order.
	Warnings []string

	// Corrupt is the record that stopped decoding, if any.
	Corrupt *RecordError
}

// Truncated reports whether fewer tasks were loaded than declared.
func (r Report) Truncated() bool { return r.Loaded < r.Declared }

// Decode reads a task file. Malformed headers fall back to defaults; the
// first malformed or missing record ends decoding and the well-formed prefix
// is returned. The error is non-nil only when r itself fails.
func Decode(r io.Reader, limits service.Limits) (service.State, Report, error) {
	br := bufio.NewReader(r)
	state := service.State{Tasks: []service.Task{}, NextID: 1}
	var rep Report
	lineNo := 0

	next := func() (string, bool, error) {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if line == "" && err != nil {
			return "", false, nil
		}
		lineNo++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		return line, true, nil
	}

	line, ok, err := next()
	if err != nil {
		return state, rep, err
	}
	if ok {
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || n < 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("invalid task count %q, assuming 0", line))
		} else {
			rep.Declared = n
		}
	}

	line, ok, err = next()
	if err != nil {
		return state, rep, err
	}
	if ok {
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || n < 1 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("invalid next id %q, assuming 1", line))
		} else {
			state.NextID = n
		}
	} else if rep.Declared > 0 {
		rep.Warnings = append(rep.Warnings, "missing next id, assuming 1")
	}

	// Declared is untrusted; size from what is actually read.
	seen := make(map[int]bool)
	for i := 1; i <= rep.Declared; i++ {
		if limits.MaxTasks > 0 && len(state.Tasks) >= limits.MaxTasks {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("file declares %d tasks, keeping the first %d", rep.Declared, limits.MaxTasks))
			break
		}

		line, ok, err = next()
		if err != nil {
			rep.Loaded = len(state.Tasks)
			return finish(state), rep, err
		}
		if !ok {
			rep.Corrupt = &RecordError{Record: i, Msg: "missing"}
			break
		}

		t, perr := ParseRecord(line)
		if perr == nil && seen[t.ID] {
			perr = fmt.Errorf("duplicate id %d", t.ID)
		}
		if perr != nil {
			rep.Corrupt = &RecordError{Record: i, Line: lineNo, Text: line, Msg: perr.Error()}
			break
		}

		seen[t.ID] = true
		t.Description = service.NormalizeDescription(t.Description, limits.MaxDescriptionLen)
		state.Tasks = append(state.Tasks, t)
	}

	rep.Loaded = len(state.Tasks)
	return finish(state), rep, nil
}

// finish keeps NextID above every loaded id.
func finish(state service.State) service.State {
	for _, t := range state.Tasks {
		if t.ID >= state.NextID {
			state.NextID = t.ID + 1
		}
	}
	return state
}

// Encode writes the full state.
func Encode(w io.Writer, state service.State) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n", len(state.Tasks), state.NextID)
	for _, t := range state.Tasks {
		bw.WriteString(FormatRecord(t))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
