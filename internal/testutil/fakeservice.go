// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskmgr/internal/service"
)

// DefaultListID is the ID used for the default remote list.
const DefaultListID = "@default"

// FakeService is an in-memory implementation of service.Service for testing.
// It follows the store's rules (ids never reused, capacity) without persisting.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int

	// MaxTasks bounds Add; zero means unbounded.
	MaxTasks int

	// Error injection for testing
	SaveErr  error // returned by mutations after they are applied
	FlushErr error

	// Flushes counts Flush calls.
	Flushes int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// AddTask seeds a task with an explicit id.
func (f *FakeService) AddTask(id int, description string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Description: description, Completed: completed})
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

// List implements service.Service.
func (f *FakeService) List() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Add implements service.Service.
func (f *FakeService) Add(description string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.MaxTasks > 0 && len(f.tasks) >= f.MaxTasks {
		return service.Task{}, fmt.Errorf("%w (max %d)", service.ErrCapacityExceeded, f.MaxTasks)
	}
	t := service.Task{ID: f.nextID, Description: description}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, f.SaveErr
}

// Complete implements service.Service.
func (f *FakeService) Complete(id int) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = true
			return f.tasks[i], f.SaveErr
		}
	}
	return service.Task{}, fmt.Errorf("%w: %d", service.ErrNotFound, id)
}

// Remove implements service.Service.
func (f *FakeService) Remove(id int) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return t, f.SaveErr
		}
	}
	return service.Task{}, fmt.Errorf("%w: %d", service.ErrNotFound, id)
}

// Flush implements service.Service.
func (f *FakeService) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Flushes++
	return f.FlushErr
}

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.RemoteTask // listID -> tasks

	// Error injection for testing
	DefaultListErr error
	ResolveListErr error
	ListTasksErr   error
	CreateTaskErr  error
}

// NewFakeRemote creates a FakeRemote with a default list.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists: []service.TaskList{{ID: DefaultListID, Title: "My Tasks", IsDefault: true}},
		tasks: map[string][]service.RemoteTask{DefaultListID: nil},
	}
}

// AddList adds a list to the fake remote.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask seeds a task in a list.
func (f *FakeRemote) AddTask(listID, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.RemoteTask{
		ID:        fmt.Sprintf("r%d", len(f.tasks[listID])+1),
		Title:     title,
		Completed: completed,
	})
}

// Tasks returns the tasks of a list.
func (f *FakeRemote) Tasks(listID string) []service.RemoteTask {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.RemoteTask, len(f.tasks[listID]))
	copy(result, f.tasks[listID])
	return result
}

// DefaultList implements service.Remote.
func (f *FakeRemote) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, service.ErrNotFound
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, service.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, service.ErrAmbiguous
	}
}

// ListTasks implements service.Remote.
func (f *FakeRemote) ListTasks(ctx context.Context, listID string) ([]service.RemoteTask, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	result := make([]service.RemoteTask, len(tasks))
	copy(result, tasks)
	return result, nil
}

// CreateTask implements service.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, listID string, task service.RemoteTask) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return service.ErrNotFound
	}
	task.ID = fmt.Sprintf("r%d", len(f.tasks[listID])+1)
	f.tasks[listID] = append(f.tasks[listID], task)
	return nil
}
