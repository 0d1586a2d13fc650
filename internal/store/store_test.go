package store_test

import (
	"errors"
	"reflect"
	"testing"

	"taskmgr/internal/service"
	"taskmgr/internal/store"
)

// recorder is a Persister that keeps every saved snapshot.
type recorder struct {
	saves []service.State
	err   error
}

func (r *recorder) Save(state service.State) error {
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, state)
	return nil
}

func (r *recorder) last() service.State {
	return r.saves[len(r.saves)-1]
}

func newEmpty(t *testing.T, limits service.Limits) (*store.Store, *recorder) {
	t.Helper()
	rec := &recorder{}
	return store.New(service.State{NextID: 1}, limits, rec), rec
}

func TestAdd_AssignsIncreasingIDs(t *testing.T) {
	s, rec := newEmpty(t, service.Limits{MaxTasks: 5, MaxDescriptionLen: 100})

	prev := 0
	for i := 0; i < 5; i++ {
		task, err := s.Add("task")
		if err != nil {
			t.Fatalf("add %d: unexpected error: %v", i, err)
		}
		if task.ID <= prev {
			t.Errorf("id %d not greater than previous %d", task.ID, prev)
		}
		if task.Completed {
			t.Errorf("new task %d should not be completed", task.ID)
		}
		prev = task.ID
	}

	if len(rec.saves) != 5 {
		t.Errorf("expected 5 saves, got %d", len(rec.saves))
	}
	if s.NextID() != 6 {
		t.Errorf("expected next id 6, got %d", s.NextID())
	}
}

func TestAdd_CapacityExceeded(t *testing.T) {
	s, rec := newEmpty(t, service.Limits{MaxTasks: 2, MaxDescriptionLen: 100})
	s.Add("one")
	s.Add("two")
	before := s.State()

	_, err := s.Add("three")
	if !errors.Is(err, service.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if !reflect.DeepEqual(s.State(), before) {
		t.Errorf("store changed after failed add: %+v", s.State())
	}
	if len(rec.saves) != 2 {
		t.Errorf("failed add should not save, got %d saves", len(rec.saves))
	}
}

func TestAdd_NormalizesDescription(t *testing.T) {
	s, _ := newEmpty(t, service.Limits{MaxTasks: 10, MaxDescriptionLen: 8})

	task, err := s.Add("first\nsecond")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Description != "first se" {
		t.Errorf("expected %q, got %q", "first se", task.Description)
	}

	task, err = s.Add("")
	if err != nil {
		t.Fatalf("empty description should be accepted: %v", err)
	}
	if task.Description != "" {
		t.Errorf("expected empty description, got %q", task.Description)
	}
}

func TestComplete_NotFound(t *testing.T) {
	s, rec := newEmpty(t, service.DefaultLimits)
	s.Add("one")
	before := s.State()

	_, err := s.Complete(42)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !reflect.DeepEqual(s.State(), before) {
		t.Error("store changed after failed complete")
	}
	if len(rec.saves) != 1 {
		t.Errorf("failed complete should not save, got %d saves", len(rec.saves))
	}
}

func TestComplete_Idempotent(t *testing.T) {
	s, _ := newEmpty(t, service.DefaultLimits)
	s.Add("one")

	first, err := s.Complete(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	once := s.State()

	second, err := s.Complete(1)
	if err != nil {
		t.Fatalf("second complete: unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected same task, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(s.State(), once) {
		t.Error("second complete changed the store")
	}
	if !second.Completed {
		t.Error("task should be completed")
	}
}

func TestRemove_TwiceAndOrder(t *testing.T) {
	s, _ := newEmpty(t, service.DefaultLimits)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	s.Add("d")

	removed, err := s.Remove(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.ID != 2 || removed.Description != "b" {
		t.Errorf("unexpected removed task: %+v", removed)
	}

	if _, err := s.Remove(2); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}

	var ids []int
	for _, task := range s.List() {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []int{1, 3, 4}) {
		t.Errorf("expected ids [1 3 4], got %v", ids)
	}
	if s.NextID() != 5 {
		t.Errorf("remove should not affect next id, got %d", s.NextID())
	}

	// Lookups after the shift must still resolve.
	if task, ok := s.Find(4); !ok || task.Description != "d" {
		t.Errorf("find after remove: got %+v, %v", task, ok)
	}
	if _, err := s.Complete(3); err != nil {
		t.Errorf("complete after remove: %v", err)
	}
}

func TestIDsNotReusedAfterRemove(t *testing.T) {
	s, _ := newEmpty(t, service.DefaultLimits)
	s.Add("a")
	s.Remove(1)

	task, _ := s.Add("b")
	if task.ID != 2 {
		t.Errorf("expected id 2, got %d", task.ID)
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	s, _ := newEmpty(t, service.DefaultLimits)
	if list := s.List(); list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", list)
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	s, _ := newEmpty(t, service.DefaultLimits)
	s.Add("a")

	list := s.List()
	list[0].Description = "changed"

	if task, _ := s.Find(1); task.Description != "a" {
		t.Errorf("store mutated through List result: %q", task.Description)
	}
}

func TestNew_RaisesNextID(t *testing.T) {
	s := store.New(service.State{
		Tasks:  []service.Task{{ID: 7, Description: "x"}},
		NextID: 3,
	}, service.DefaultLimits, nil)

	if s.NextID() != 8 {
		t.Errorf("expected next id 8, got %d", s.NextID())
	}
}

func TestSaveFailure_KeepsMutationAndFlushes(t *testing.T) {
	rec := &recorder{err: errors.New("disk full")}
	s := store.New(service.State{NextID: 1}, service.DefaultLimits, rec)

	task, err := s.Add("unsaved")
	if !errors.Is(err, service.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if task.ID != 1 {
		t.Errorf("expected task returned despite failure, got %+v", task)
	}
	if s.Len() != 1 {
		t.Errorf("mutation should stand in memory, len=%d", s.Len())
	}
	if !s.Dirty() {
		t.Error("store should be dirty after failed save")
	}

	rec.err = nil
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if s.Dirty() {
		t.Error("store should be clean after flush")
	}
	if len(rec.saves) != 1 || len(rec.last().Tasks) != 1 {
		t.Errorf("flush did not save the pending task: %+v", rec.saves)
	}

	// Clean store: flush is a no-op.
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(rec.saves) != 1 {
		t.Errorf("clean flush should not save, got %d saves", len(rec.saves))
	}
}

func TestScenario(t *testing.T) {
	s, rec := newEmpty(t, service.DefaultLimits)

	milk, _ := s.Add("Buy milk")
	if milk != (service.Task{ID: 1, Description: "Buy milk"}) {
		t.Errorf("unexpected task: %+v", milk)
	}
	dog, _ := s.Add("Walk dog")
	if dog.ID != 2 {
		t.Errorf("expected id 2, got %d", dog.ID)
	}

	done, _ := s.Complete(1)
	if !done.Completed {
		t.Error("task 1 should be completed")
	}
	s.Remove(1)

	want := service.State{
		Tasks:  []service.Task{{ID: 2, Description: "Walk dog"}},
		NextID: 3,
	}
	if !reflect.DeepEqual(rec.last(), want) {
		t.Errorf("expected saved state %+v, got %+v", want, rec.last())
	}
}
