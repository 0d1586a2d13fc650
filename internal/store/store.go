// Package store holds the in-memory task list and its id allocator.
package store

import (
	"errors"
	"fmt"

	"taskmgr/internal/service"
)

// Persister writes a full snapshot of the store.
type Persister interface {
	Save(state service.State) error
}

// Store is an ordered, bounded task collection with write-through persistence.
//
// A mutation whose save fails is kept in memory and the store is marked dirty;
// the error returned wraps service.ErrIO. Flush retries the save.
type Store struct {
	tasks  []service.Task
	pos    map[int]int // id -> index in tasks
	nextID int
	limits service.Limits
	p      Persister
	dirty  bool
}

var _ service.Service = (*Store)(nil)

// New builds a store from a decoded state. The state is assumed valid
// (distinct ids, within limits); nextID is raised above every id if needed.
// p may be nil for a store that never persists.
func New(state service.State, limits service.Limits, p Persister) *Store {
	s := &Store{
		tasks:  make([]service.Task, 0, len(state.Tasks)),
		pos:    make(map[int]int, len(state.Tasks)),
		nextID: state.NextID,
		limits: limits,
		p:      p,
	}
	if s.nextID < 1 {
		s.nextID = 1
	}
	for _, t := range state.Tasks {
		s.pos[t.ID] = len(s.tasks)
		s.tasks = append(s.tasks, t)
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

// List returns a copy of the tasks in insertion order.
func (s *Store) List() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// NextID returns the id the next added task will get.
func (s *Store) NextID() int { return s.nextID }

// Find looks up a task by id.
func (s *Store) Find(id int) (service.Task, bool) {
	i, ok := s.pos[id]
	if !ok {
		return service.Task{}, false
	}
	return s.tasks[i], true
}

// State returns a snapshot suitable for encoding.
func (s *Store) State() service.State {
	return service.State{Tasks: s.List(), NextID: s.nextID}
}

// Dirty reports whether the last save failed.
func (s *Store) Dirty() bool { return s.dirty }

// Add appends a new open task.
func (s *Store) Add(description string) (service.Task, error) {
	if s.limits.MaxTasks > 0 && len(s.tasks) >= s.limits.MaxTasks {
		return service.Task{}, fmt.Errorf("%w (max %d)", service.ErrCapacityExceeded, s.limits.MaxTasks)
	}

	t := service.Task{
		ID:          s.nextID,
		Description: service.NormalizeDescription(description, s.limits.MaxDescriptionLen),
	}
	s.nextID++
	s.pos[t.ID] = len(s.tasks)
	s.tasks = append(s.tasks, t)

	return t, s.save()
}

// Complete marks a task completed.
func (s *Store) Complete(id int) (service.Task, error) {
	i, ok := s.pos[id]
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	s.tasks[i].Completed = true
	return s.tasks[i], s.save()
}

// Remove deletes a task, keeping the relative order of the rest.
func (s *Store) Remove(id int) (service.Task, error) {
	i, ok := s.pos[id]
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	removed := s.tasks[i]

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	delete(s.pos, id)
	for j := i; j < len(s.tasks); j++ {
		s.pos[s.tasks[j].ID] = j
	}

	return removed, s.save()
}

// Flush saves the store if the last save failed.
func (s *Store) Flush() error {
	if !s.dirty {
		return nil
	}
	return s.save()
}

func (s *Store) save() error {
	if s.p == nil {
		return nil
	}
	if err := s.p.Save(s.State()); err != nil {
		s.dirty = true
		if !errors.Is(err, service.ErrIO) {
			err = fmt.Errorf("%w: %v", service.ErrIO, err)
		}
		return err
	}
	s.dirty = false
	return nil
}
