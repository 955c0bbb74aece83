package views

import (
	"cmp"
	"errors"
	"slices"

	"github.com/hongminglow/homeflow-be/internal/models"
)

// CompareTodos is the total order of todo lists: priority rank, due date
// ascending with undated last, newest first, then id descending.
func CompareTodos(a, b models.Todo) int {
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	switch {
	case a.DueDate == nil && b.DueDate != nil:
		return 1
	case a.DueDate != nil && b.DueDate == nil:
		return -1
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(b.DueDate.Time); c != 0 {
			return c
		}
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// SortTodos returns a copy of todos in CompareTodos order.
func SortTodos(todos []models.Todo) []models.Todo {
	out := slices.Clone(todos)
	slices.SortStableFunc(out, CompareTodos)
	return out
}

// IsOverdue reports whether an incomplete todo is due before today.
func IsOverdue(t models.Todo, today models.Date) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(today)
}

// TodoFilter is a single-select todo list filter.
type TodoFilter string

const (
	FilterAll       TodoFilter = "all"
	FilterPending   TodoFilter = "pending"
	FilterCompleted TodoFilter = "completed"
	FilterHigh      TodoFilter = "high"
	FilterMedium    TodoFilter = "medium"
	FilterLow       TodoFilter = "low"
)

// ParseTodoFilter maps an empty value to FilterAll and rejects unknown names.
func ParseTodoFilter(s string) (TodoFilter, error) {
	switch f := TodoFilter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterCompleted, FilterHigh, FilterMedium, FilterLow:
		return f, nil
	default:
		return "", errors.New("filter must be one of all, pending, completed, high, medium, low")
	}
}

// FilterTodos keeps the todos matching f, preserving order.
func FilterTodos(todos []models.Todo, f TodoFilter) []models.Todo {
	out := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		var keep bool
		switch f {
		case FilterPending:
			keep = !t.Completed
		case FilterCompleted:
			keep = t.Completed
		case FilterHigh:
			keep = t.Priority == models.PriorityHigh
		case FilterMedium:
			keep = t.Priority == models.PriorityMedium
		case FilterLow:
			keep = t.Priority == models.PriorityLow
		default:
			keep = true
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}

// TodoStats counts a todo list.
type TodoStats struct {
	Total               int `json:"total"`
	Completed           int `json:"completed"`
	Pending             int `json:"pending"`
	HighPriorityPending int `json:"high_priority_pending"`
}

// CountTodos tallies totals, completion and pending high-priority todos.
func CountTodos(todos []models.Todo) TodoStats {
	var s TodoStats
	for _, t := range todos {
		s.Total++
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.Priority == models.PriorityHigh {
			s.HighPriorityPending++
		}
	}
	return s
}
