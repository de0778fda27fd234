// Package service defines the backend-agnostic types and interfaces for
// task and auth operations.
package service

import "time"

// Priority is a task priority level.
type Priority string

// Priority levels in ascending order of urgency.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single task item.
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
	Completed   bool
}

// Draft holds the user-supplied fields for a task to be created.
// The ID is assigned by the store.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
}

// StatusFilter selects tasks by completion state.
type StatusFilter string

// Status filter values.
const (
	StatusAll        StatusFilter = "all"
	StatusCompleted  StatusFilter = "completed"
	StatusIncomplete StatusFilter = "incomplete"
)

// ValidStatusFilter reports whether s is a known status filter value.
func ValidStatusFilter(s StatusFilter) bool {
	switch s {
	case StatusAll, StatusCompleted, StatusIncomplete:
		return true
	}
	return false
}

// PriorityFilter selects tasks by priority. "all" disables the filter.
type PriorityFilter string

// PriorityAll is the priority filter value that keeps every priority.
const PriorityAll PriorityFilter = "all"

// ValidPriorityFilter reports whether p is a known priority filter value.
func ValidPriorityFilter(p PriorityFilter) bool {
	return p == PriorityAll || ValidPriority(Priority(p))
}

// Filter is a transient view selection. The zero value is not valid;
// use DefaultFilter for the unfiltered view.
type Filter struct {
	Status   StatusFilter
	Priority PriorityFilter
}

// DefaultFilter returns the filter that keeps every task.
func DefaultFilter() Filter {
	return Filter{Status: StatusAll, Priority: PriorityAll}
}

// Session is an authenticated session issued by the identity provider.
// The ID token is a short-lived credential for the task store; the refresh
// token obtains a new one after expiry.
type Session struct {
	UserID       string
	Email        string
	IDToken      string
	RefreshToken string
	Expiry       time.Time
}
