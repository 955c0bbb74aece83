package service

import (
	"context"
	"strings"
	"time"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/models/dto"
	"github.com/hongminglow/homeflow-be/internal/storage"
	"github.com/hongminglow/homeflow-be/internal/views"
)

// TodoService owns todo validation, ordering and filtering.
type TodoService struct {
	store storage.TodoStore
	now   func() time.Time
}

// NewTodoService creates the service over store.
func NewTodoService(store storage.TodoStore) *TodoService {
	return &TodoService{store: store, now: time.Now}
}

// List returns the user's todos matching filter, in total order, each flagged
// as overdue or not.
func (s *TodoService) List(ctx context.Context, userID int64, filter views.TodoFilter) ([]dto.TodoResponse, error) {
	todos, err := s.store.ListTodos(ctx, userID)
	if err != nil {
		return nil, storageErr("list todos", err)
	}
	today := s.today()
	todos = views.FilterTodos(views.SortTodos(todos), filter)
	out := make([]dto.TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, dto.TodoResponse{Todo: t, Overdue: views.IsOverdue(t, today)})
	}
	return out, nil
}

// Stats counts the user's todos.
func (s *TodoService) Stats(ctx context.Context, userID int64) (views.TodoStats, error) {
	todos, err := s.store.ListTodos(ctx, userID)
	if err != nil {
		return views.TodoStats{}, storageErr("list todos", err)
	}
	return views.CountTodos(todos), nil
}

// Create rejects a blank title, an unknown priority and a due date before today.
func (s *TodoService) Create(ctx context.Context, userID int64, req dto.TodoRequest) (int64, error) {
	t, err := todoFromRequest(req, s.today(), true)
	if err != nil {
		return 0, err
	}
	t.UserID = userID
	t.Completed = false
	id, err := s.store.CreateTodo(ctx, t)
	return id, storageErr("create todo", err)
}

// Update replaces every mutable field; past due dates are allowed here.
func (s *TodoService) Update(ctx context.Context, userID, id int64, req dto.TodoRequest) error {
	t, err := todoFromRequest(req, s.today(), false)
	if err != nil {
		return err
	}
	t.ID = id
	t.UserID = userID
	return storageErr("update todo", s.store.UpdateTodo(ctx, t))
}

// Delete removes the todo if the user owns it.
func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	return storageErr("delete todo", s.store.DeleteTodo(ctx, userID, id))
}

func (s *TodoService) today() models.Date {
	return models.NewDate(s.now().UTC())
}

func todoFromRequest(req dto.TodoRequest, today models.Date, creating bool) (models.Todo, error) {
	var v validator
	title := strings.TrimSpace(req.Title)
	v.check(title != "", "title", "title is required")

	priority, pErr := models.ParsePriority(req.Priority)
	v.check(pErr == nil, "priority", errText(pErr))

	var due *models.Date
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		d, err := models.ParseDate(*req.DueDate)
		v.check(err == nil, "due_date", errText(err))
		if err == nil {
			v.check(!creating || !d.Before(today), "due_date", "due_date cannot be in the past")
			due = &d
		}
	}

	if err := v.err(); err != nil {
		return models.Todo{}, err
	}
	return models.Todo{
		Title:       title,
		Description: trimOptional(req.Description),
		Priority:    priority,
		DueDate:     due,
		Completed:   req.Completed,
	}, nil
}
