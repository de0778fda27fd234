package tasklist_test

import (
	"testing"
	"time"

	"ftask/internal/service"
	"ftask/internal/tasklist"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func ids(tasks []service.Task) []string {
	result := make([]string, len(tasks))
	for i, t := range tasks {
		result[i] = t.ID
	}
	return result
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestView_Filters(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", DueDate: day(10), Priority: service.PriorityLow, Completed: false},
		{ID: "2", DueDate: day(5), Priority: service.PriorityHigh, Completed: true},
		{ID: "3", DueDate: day(7), Priority: service.PriorityMedium, Completed: false},
		{ID: "4", DueDate: day(3), Priority: service.PriorityLow, Completed: true},
	}

	tests := []struct {
		name   string
		filter service.Filter
		want   []string
	}{
		{
			name:   "all all",
			filter: service.Filter{Status: service.StatusAll, Priority: service.PriorityAll},
			want:   []string{"4", "2", "3", "1"},
		},
		{
			name:   "completed only",
			filter: service.Filter{Status: service.StatusCompleted, Priority: service.PriorityAll},
			want:   []string{"4", "2"},
		},
		{
			name:   "incomplete only",
			filter: service.Filter{Status: service.StatusIncomplete, Priority: service.PriorityAll},
			want:   []string{"3", "1"},
		},
		{
			name:   "priority low",
			filter: service.Filter{Status: service.StatusAll, Priority: "low"},
			want:   []string{"4", "1"},
		},
		{
			name:   "priority high",
			filter: service.Filter{Status: service.StatusAll, Priority: "high"},
			want:   []string{"2"},
		},
		{
			name:   "combined status and priority",
			filter: service.Filter{Status: service.StatusCompleted, Priority: "low"},
			want:   []string{"4"},
		},
		{
			name:   "no match",
			filter: service.Filter{Status: service.StatusIncomplete, Priority: "high"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tasklist.View(tasks, tt.filter)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ids(got))
			}
		})
	}
}

func TestView_SortedByDueDate(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", DueDate: day(20)},
		{ID: "2", DueDate: day(1)},
		{ID: "3", DueDate: day(10)},
	}

	got := tasklist.View(tasks, service.DefaultFilter())
	want := []string{"2", "3", "1"}
	if !equalIDs(ids(got), want) {
		t.Errorf("expected %v, got %v", want, ids(got))
	}
}

// Tasks with equal due dates must keep their input order.
func TestView_StableForEqualDueDates(t *testing.T) {
	tasks := []service.Task{
		{ID: "b", DueDate: day(5)},
		{ID: "a", DueDate: day(5)},
		{ID: "d", DueDate: day(1)},
		{ID: "c", DueDate: day(5)},
	}

	got := tasklist.View(tasks, service.DefaultFilter())
	want := []string{"d", "b", "a", "c"}
	if !equalIDs(ids(got), want) {
		t.Errorf("expected %v, got %v", want, ids(got))
	}
}

func TestView_IncompleteScenario(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", DueDate: day(10), Priority: service.PriorityLow, Completed: false},
		{ID: "2", DueDate: day(5), Priority: service.PriorityHigh, Completed: true},
	}

	got := tasklist.View(tasks, service.Filter{
		Status:   service.StatusIncomplete,
		Priority: service.PriorityAll,
	})
	if !equalIDs(ids(got), []string{"1"}) {
		t.Errorf("expected [1], got %v", ids(got))
	}
}

func TestView_DoesNotModifyInput(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", DueDate: day(20)},
		{ID: "2", DueDate: day(1)},
	}

	tasklist.View(tasks, service.DefaultFilter())
	if tasks[0].ID != "1" || tasks[1].ID != "2" {
		t.Errorf("input slice was reordered: %v", ids(tasks))
	}
}
