// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ftask/internal/service"
)

// FakeStore is an in-memory implementation of service.Store for testing.
type FakeStore struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Error injection for testing
	ListTasksErr    error
	CreateTaskErr   error
	SetCompletedErr error
	DeleteTaskErr   error

	// Call counters
	ListTasksCalls    int
	CreateTaskCalls   int
	SetCompletedCalls int
	DeleteTaskCalls   int
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{nextID: 1}
}

// AddTask seeds a task and returns its generated ID.
func (f *FakeStore) AddTask(title string, due time.Time, priority service.Priority, completed bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("task-%d", f.nextID)
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       title,
		Description: title + " description",
		DueDate:     due,
		Priority:    priority,
		Completed:   completed,
	})
	return id
}

// ListTasks implements service.Store.
func (f *FakeStore) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.ListTasksCalls++
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Store.
func (f *FakeStore) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateTaskCalls++
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	task := service.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Completed:   false,
	}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

// SetCompleted implements service.Store.
func (f *FakeStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCompletedCalls++
	if f.SetCompletedErr != nil {
		return f.SetCompletedErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = completed
			return nil
		}
	}
	return service.ErrNotFound
}

// DeleteTask implements service.Store.
func (f *FakeStore) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteTaskCalls++
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// Tasks returns a copy of the stored tasks.
func (f *FakeStore) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}
