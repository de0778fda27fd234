package tasklist

import (
	"slices"

	"ftask/internal/service"
)

// View derives the display projection: tasks matching both filter
// predicates, sorted ascending by due date. The sort is stable, so tasks
// with equal due dates keep their relative order from the input list.
// The input slice is never modified.
func View(tasks []service.Task, filter service.Filter) []service.Task {
	view := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchStatus(t, filter.Status) && matchPriority(t, filter.Priority) {
			view = append(view, t)
		}
	}
	slices.SortStableFunc(view, func(a, b service.Task) int {
		return a.DueDate.Compare(b.DueDate)
	})
	return view
}

func matchStatus(t service.Task, status service.StatusFilter) bool {
	switch status {
	case service.StatusCompleted:
		return t.Completed
	case service.StatusIncomplete:
		return !t.Completed
	default:
		return true
	}
}

func matchPriority(t service.Task, priority service.PriorityFilter) bool {
	return priority == service.PriorityAll || t.Priority == service.Priority(priority)
}
