// Package tasklist holds the in-memory task list for one session and
// derives filtered, sorted views from it.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ftask/internal/service"
)

// Validation errors returned by Add before any remote call is made.
var (
	ErrTitleRequired       = errors.New("title required")
	ErrDescriptionRequired = errors.New("description required")
	ErrDueDateRequired     = errors.New("due date required")
)

// Reference resolution errors.
var (
	ErrRefRequired  = errors.New("task reference required")
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// Manager owns the in-memory task list. It is created when a command
// starts and discarded when it exits; the remote store is the source of
// truth and the list is a cache replaced wholesale by Refresh.
//
// Every mutation awaits the remote store before touching the list, so
// the list never reflects a write the store has not acknowledged.
type Manager struct {
	store service.Store
	tasks []service.Task
}

// NewManager creates a manager with an empty list.
func NewManager(store service.Store) *Manager {
	return &Manager{store: store}
}

// Refresh fetches the complete task collection and replaces the list.
// Last fetch wins.
func (m *Manager) Refresh(ctx context.Context) error {
	tasks, err := m.store.ListTasks(ctx)
	if err != nil {
		return err
	}
	m.tasks = tasks
	return nil
}

// Tasks returns the current in-memory list in store order.
func (m *Manager) Tasks() []service.Task {
	return m.tasks
}

// View returns the filtered and sorted projection of the current list.
func (m *Manager) View(filter service.Filter) []service.Task {
	return View(m.tasks, filter)
}

// Add validates the draft, creates the task remotely and appends the
// created record to the list. Invalid drafts are rejected without a
// remote call. An empty priority defaults to low.
func (m *Manager) Add(ctx context.Context, draft service.Draft) (service.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return service.Task{}, ErrTitleRequired
	}
	if strings.TrimSpace(draft.Description) == "" {
		return service.Task{}, ErrDescriptionRequired
	}
	if draft.DueDate.IsZero() {
		return service.Task{}, ErrDueDateRequired
	}
	if draft.Priority == "" {
		draft.Priority = service.PriorityLow
	}
	if !service.ValidPriority(draft.Priority) {
		return service.Task{}, fmt.Errorf("invalid priority: %s", draft.Priority)
	}

	created, err := m.store.CreateTask(ctx, draft)
	if err != nil {
		return service.Task{}, err
	}
	m.tasks = append(m.tasks, created)
	return created, nil
}

// Toggle flips the completed state of the task with the given ID. The
// in-memory copy changes only after the remote update succeeds, and
// only that task's completed field changes.
func (m *Manager) Toggle(ctx context.Context, id string) (service.Task, error) {
	i := m.index(id)
	if i < 0 {
		return service.Task{}, service.ErrNotFound
	}
	target := !m.tasks[i].Completed
	if err := m.store.SetCompleted(ctx, id, target); err != nil {
		return service.Task{}, err
	}
	m.tasks[i].Completed = target
	return m.tasks[i], nil
}

// Delete removes the task remotely, then drops the matching entry from
// the list. On remote failure the error propagates and the list is left
// untouched; an ID with no matching entry leaves the list unchanged.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	if i := m.index(id); i >= 0 {
		m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	}
	return nil
}

// ResolveRef resolves a task reference against the current list. A ref
// is either a 1-based position in the sorted view for the given filter
// (the numbering the list command prints under the same filter flags)
// or a unique task ID prefix. ID prefixes match against the full list:
// IDs are unambiguous no matter which view the user was looking at.
func (m *Manager) ResolveRef(ref string, filter service.Filter) (service.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Task{}, ErrRefRequired
	}

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return service.Task{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		view := m.View(filter)
		if num < 1 || num > len(view) {
			return service.Task{}, fmt.Errorf("task number out of range: %d", num)
		}
		return view[num-1], nil
	}

	var matches []service.Task
	for _, t := range m.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return service.Task{}, service.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, ErrAmbiguousRef
	}
}

// index returns the position of the task with the given ID, or -1.
func (m *Manager) index(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
