package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/homeflow-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore maps identity-provider subjects to local users.
type UserStore interface {
	FindUserByExternalID(ctx context.Context, externalID string) (models.User, error)
	// UpsertUser inserts the user or refreshes email and display name on an external id conflict.
	UpsertUser(ctx context.Context, user models.User) (models.User, error)
}

// ReminderStore persists reminders. Every call is scoped to userID; update and
// delete succeed silently when no row matches.
type ReminderStore interface {
	ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error)
	CreateReminder(ctx context.Context, r models.Reminder) (int64, error)
	UpdateReminder(ctx context.Context, r models.Reminder) error
	DeleteReminder(ctx context.Context, userID, id int64) error
}

// TodoStore persists todos, listed in priority/due date/creation order.
type TodoStore interface {
	ListTodos(ctx context.Context, userID int64) ([]models.Todo, error)
	CreateTodo(ctx context.Context, t models.Todo) (int64, error)
	UpdateTodo(ctx context.Context, t models.Todo) error
	DeleteTodo(ctx context.Context, userID, id int64) error
}

// ExpenseStore persists expenses. ListExpenses returns rows with start <= expense_date < end,
// newest first.
type ExpenseStore interface {
	ListExpenses(ctx context.Context, userID int64, start, end models.Date) ([]models.Expense, error)
	CreateExpense(ctx context.Context, e models.Expense) (int64, error)
	UpdateExpense(ctx context.Context, e models.Expense) error
	DeleteExpense(ctx context.Context, userID, id int64) error
}

// BudgetStore persists one budget target per user and month.
type BudgetStore interface {
	// GetBudget returns ErrNotFound when no target is set for the month.
	GetBudget(ctx context.Context, userID int64, month string) (models.BudgetSetting, error)
	UpsertBudget(ctx context.Context, b models.BudgetSetting) error
}

// Store is the full persistence surface the server runs on.
type Store interface {
	UserStore
	ReminderStore
	TodoStore
	ExpenseStore
	BudgetStore
	Close()
}
