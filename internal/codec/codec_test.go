package codec

import (
	"bytes"
	"errors"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"taskmgr/internal/service"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    service.Task
		wantErr bool
	}{
		{"open", "1|0|Buy milk", service.Task{ID: 1, Description: "Buy milk"}, false},
		{"completed", "12|1|Walk dog", service.Task{ID: 12, Description: "Walk dog", Completed: true}, false},
		{"embedded pipes", "3|0|a|b|c", service.Task{ID: 3, Description: "a|b|c"}, false},
		{"empty description", "4|0|", service.Task{ID: 4}, false},
		{"two fields", "1|0", service.Task{}, true},
		{"no separators", "garbage", service.Task{}, true},
		{"bad id", "x|0|desc", service.Task{}, true},
		{"zero id", "0|0|desc", service.Task{}, true},
		{"negative id", "-3|0|desc", service.Task{}, true},
		{"bad flag", "1|2|desc", service.Task{}, true},
		{"empty line", "", service.Task{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tt.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestFormatRecord(t *testing.T) {
	got := FormatRecord(service.Task{ID: 7, Description: "a|b", Completed: true})
	if got != "7|1|a|b" {
		t.Errorf("expected %q, got %q", "7|1|a|b", got)
	}

	// A newline would split the record, so it is flattened.
	got = FormatRecord(service.Task{ID: 1, Description: "x\ny"})
	if got != "1|0|x y" {
		t.Errorf("expected %q, got %q", "1|0|x y", got)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	state := service.State{
		Tasks: []service.Task{
			{ID: 2, Description: "Walk dog"},
			{ID: 5, Description: "Pay | rent", Completed: true},
		},
		NextID: 6,
	}
	if err := Encode(&buf, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "2\n6\n2|0|Walk dog\n5|1|Pay | rent\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, service.State{NextID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "0\n1\n" {
		t.Errorf("expected %q, got %q", "0\n1\n", buf.String())
	}
}

func TestRoundTrip(t *testing.T) {
	states := []service.State{
		{Tasks: []service.Task{}, NextID: 1},
		{Tasks: []service.Task{}, NextID: 42},
		{
			Tasks: []service.Task{
				{ID: 1, Description: "Buy milk"},
				{ID: 3, Description: "", Completed: true},
				{ID: 9, Description: "pipes | inside | text"},
				{ID: 4, Description: "  leading and trailing spaces  "},
			},
			NextID: 10,
		},
	}

	for _, state := range states {
		var buf bytes.Buffer
		if err := Encode(&buf, state); err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, rep, err := Decode(&buf, service.DefaultLimits)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if rep.Corrupt != nil || len(rep.Warnings) != 0 {
			t.Errorf("unexpected report: %+v", rep)
		}
		if !reflect.DeepEqual(got, state) {
			t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", state, got)
		}
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	state, rep, err := Decode(strings.NewReader(""), service.DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Tasks) != 0 || state.NextID != 1 {
		t.Errorf("expected empty state with next id 1, got %+v", state)
	}
	if len(rep.Warnings) != 0 || rep.Corrupt != nil {
		t.Errorf("expected clean report, got %+v", rep)
	}
}

func TestDecode_PartialHeader(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantNextID int
		wantTasks  int
	}{
		{"count only", "0\n", 1, 0},
		{"bad count", "abc\n7\n", 7, 0},
		{"bad next id", "1\nxyz\n1|0|one\n", 2, 1},
		{"zero next id", "0\n0\n", 1, 0},
		{"negative count", "-4\n3\n", 3, 0},
		{"spaces around numbers", " 1 \n 5 \n1|0|one\n", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, _, err := Decode(strings.NewReader(tt.input), service.DefaultLimits)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state.NextID != tt.wantNextID {
				t.Errorf("expected next id %d, got %d", tt.wantNextID, state.NextID)
			}
			if len(state.Tasks) != tt.wantTasks {
				t.Errorf("expected %d tasks, got %d", tt.wantTasks, len(state.Tasks))
			}
		})
	}
}

func TestDecode_MissingRecordsTruncate(t *testing.T) {
	input := "5\n4\n1|0|one\n2|1|two\n"

	state, rep, err := Decode(strings.NewReader(input), service.DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []service.Task{
		{ID: 1, Description: "one"},
		{ID: 2, Description: "two", Completed: true},
	}
	if !reflect.DeepEqual(state.Tasks, want) {
		t.Errorf("expected %+v, got %+v", want, state.Tasks)
	}
	if rep.Declared != 5 || rep.Loaded != 2 || !rep.Truncated() {
		t.Errorf("unexpected report: %+v", rep)
	}
	if rep.Corrupt == nil || rep.Corrupt.Record != 3 || rep.Corrupt.Line != 0 {
		t.Errorf("expected missing record 3, got %+v", rep.Corrupt)
	}
}

func TestDecode_HugeDeclaredCount(t *testing.T) {
	input := "50000000\n1\n1|0|a\n"

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	state, rep, err := Decode(strings.NewReader(input), service.DefaultLimits)
	runtime.ReadMemStats(&after)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Tasks) != 1 || rep.Loaded != 1 || !rep.Truncated() {
		t.Errorf("expected the one well-formed record, got %+v (report %+v)", state.Tasks, rep)
	}
	if grew := after.TotalAlloc - before.TotalAlloc; grew > 16<<20 {
		t.Errorf("decode allocated %d bytes for a three-line file", grew)
	}
}

func TestDecode_CorruptRecordTruncates(t *testing.T) {
	input := "3\n10\n1|0|one\nnot a record\n3|0|three\n"

	state, rep, err := Decode(strings.NewReader(input), service.DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Tasks) != 1 || state.Tasks[0].ID != 1 {
		t.Errorf("expected only task 1, got %+v", state.Tasks)
	}
	if state.NextID != 10 {
		t.Errorf("expected next id 10, got %d", state.NextID)
	}
	if rep.Corrupt == nil {
		t.Fatal("expected corrupt record")
	}
	if rep.Corrupt.Record != 2 || rep.Corrupt.Line != 4 || rep.Corrupt.Text != "not a record" {
		t.Errorf("unexpected corrupt record: %+v", rep.Corrupt)
	}
	if !errors.Is(rep.Corrupt, service.ErrMalformedRecord) {
		t.Error("RecordError should unwrap to ErrMalformedRecord")
	}
}

func TestDecode_DuplicateIDTruncates(t *testing.T) {
	input := "3\n5\n1|0|one\n2|0|two\n1|0|again\n"

	state, rep, err := Decode(strings.NewReader(input), service.DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(state.Tasks))
	}
	if rep.Corrupt == nil || rep.Corrupt.Record != 3 {
		t.Errorf("expected record 3 rejected, got %+v", rep.Corrupt)
	}
}

func TestDecode_RaisesNextIDAboveLoadedIDs(t *testing.T) {
	input := "2\n2\n5|0|five\n8|1|eight\n"

	state, _, err := Decode(strings.NewReader(input), service.DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.NextID != 9 {
		t.Errorf("expected next id 9, got %d", state.NextID)
	}
}

func TestDecode_IgnoresTrailingLines(t *testing.T) {
	input := "1\n2\n1|0|one\n2|0|extra\n"

	state, rep, err := Decode(strings.NewReader(input), service.DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Tasks) != 1 || rep.Truncated() {
		t.Errorf("expected exactly the declared task, got %+v (%+v)", state.Tasks, rep)
	}
}

func TestDecode_CRLF(t *testing.T) {
	input := "1\r\n2\r\n1|1|windows\r\n"

	state, _, err := Decode(strings.NewReader(input), service.DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []service.Task{{ID: 1, Description: "windows", Completed: true}}
	if !reflect.DeepEqual(state.Tasks, want) {
		t.Errorf("expected %+v, got %+v", want, state.Tasks)
	}
}

func TestDecode_NoTrailingNewline(t *testing.T) {
	input := "1\n2\n1|0|last line"

	state, _, err := Decode(strings.NewReader(input), service.DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Tasks) != 1 || state.Tasks[0].Description != "last line" {
		t.Errorf("unexpected tasks: %+v", state.Tasks)
	}
}

func TestDecode_AppliesLimits(t *testing.T) {
	input := "3\n4\n1|0|abcdefgh\n2|0|b\n3|0|c\n"
	limits := service.Limits{MaxTasks: 2, MaxDescriptionLen: 4}

	state, rep, err := Decode(strings.NewReader(input), limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(state.Tasks))
	}
	if state.Tasks[0].Description != "abcd" {
		t.Errorf("expected truncated description %q, got %q", "abcd", state.Tasks[0].Description)
	}
	if len(rep.Warnings) != 1 {
		t.Errorf("expected one capacity warning, got %v", rep.Warnings)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestDecode_ReaderError(t *testing.T) {
	state, _, err := Decode(failingReader{}, service.DefaultLimits)
	if err == nil {
		t.Fatal("expected read error")
	}
	if len(state.Tasks) != 0 || state.NextID != 1 {
		t.Errorf("expected empty state on read error, got %+v", state)
	}
}
