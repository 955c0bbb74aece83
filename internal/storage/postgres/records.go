package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/storage"
	"github.com/jackc/pgx/v5"
)

// ListReminders returns the user's reminders by reminder_date ascending.
func (s *Store) ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error) {
	const query = `
	SELECT id, user_id, title, description, reminder_date, priority, reminder_type, is_completed, created_at, updated_at
	FROM reminders
	WHERE user_id = $1
	ORDER BY reminder_date ASC, id ASC;
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reminder{}
	for rows.Next() {
		var r models.Reminder
		var priority, kind string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &r.Date, &priority, &kind, &r.Completed, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Date = r.Date.UTC()
		r.Priority = models.Priority(priority)
		r.Kind = models.Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateReminder inserts a reminder and returns its id.
func (s *Store) CreateReminder(ctx context.Context, r models.Reminder) (int64, error) {
	const query = `
	INSERT INTO reminders (user_id, title, description, reminder_date, priority, reminder_type, is_completed)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id;
	`
	var id int64
	err := s.pool.QueryRow(ctx, query, r.UserID, r.Title, r.Description, r.Date, string(r.Priority), string(r.Kind), r.Completed).Scan(&id)
	return id, err
}

// UpdateReminder replaces the mutable fields of the user's reminder.
func (s *Store) UpdateReminder(ctx context.Context, r models.Reminder) error {
	const query = `
	UPDATE reminders
	SET title = $3, description = $4, reminder_date = $5, priority = $6, reminder_type = $7, is_completed = $8, updated_at = NOW()
	WHERE id = $1 AND user_id = $2;
	`
	_, err := s.pool.Exec(ctx, query, r.ID, r.UserID, r.Title, r.Description, r.Date, string(r.Priority), string(r.Kind), r.Completed)
	return err
}

// DeleteReminder removes the user's reminder.
func (s *Store) DeleteReminder(ctx context.Context, userID, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2;`, id, userID)
	return err
}

// ListTodos returns the user's todos by priority rank, due date (nulls last),
// then newest first.
func (s *Store) ListTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	const query = `
	SELECT id, user_id, title, description, priority, due_date, is_completed, created_at, updated_at
	FROM todos
	WHERE user_id = $1
	ORDER BY
		CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END,
		due_date ASC NULLS LAST,
		created_at DESC,
		id DESC;
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		var priority string
		var due *time.Time
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &priority, &due, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Priority = models.Priority(priority)
		if due != nil {
			d := models.NewDate(*due)
			t.DueDate = &d
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTodo inserts a todo and returns its id.
func (s *Store) CreateTodo(ctx context.Context, t models.Todo) (int64, error) {
	const query = `
	INSERT INTO todos (user_id, title, description, priority, due_date, is_completed)
	VALUES ($1, $2, $3, $4, $5::date, $6)
	RETURNING id;
	`
	var id int64
	err := s.pool.QueryRow(ctx, query, t.UserID, t.Title, t.Description, string(t.Priority), dateParam(t.DueDate), t.Completed).Scan(&id)
	return id, err
}

// UpdateTodo replaces the mutable fields of the user's todo.
func (s *Store) UpdateTodo(ctx context.Context, t models.Todo) error {
	const query = `
	UPDATE todos
	SET title = $3, description = $4, priority = $5, due_date = $6::date, is_completed = $7, updated_at = NOW()
	WHERE id = $1 AND user_id = $2;
	`
	_, err := s.pool.Exec(ctx, query, t.ID, t.UserID, t.Title, t.Description, string(t.Priority), dateParam(t.DueDate), t.Completed)
	return err
}

// DeleteTodo removes the user's todo.
func (s *Store) DeleteTodo(ctx context.Context, userID, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2;`, id, userID)
	return err
}

// ListExpenses returns the user's expenses dated in [start, end), newest first.
func (s *Store) ListExpenses(ctx context.Context, userID int64, start, end models.Date) ([]models.Expense, error) {
	const query = `
	SELECT id, user_id, title, amount::text, category, expense_date, description, created_at, updated_at
	FROM expenses
	WHERE user_id = $1 AND expense_date >= $2::date AND expense_date < $3::date
	ORDER BY expense_date DESC, id DESC;
	`
	rows, err := s.pool.Query(ctx, query, userID, start.String(), end.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var amount string
		var date time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &amount, &e.Category, &date, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if e.Amount, err = models.MoneyFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount of expense %d: %w", e.ID, err)
		}
		e.Date = models.NewDate(date)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateExpense inserts an expense and returns its id.
func (s *Store) CreateExpense(ctx context.Context, e models.Expense) (int64, error) {
	const query = `
	INSERT INTO expenses (user_id, title, amount, category, expense_date, description)
	VALUES ($1, $2, $3::numeric, $4, $5::date, $6)
	RETURNING id;
	`
	var id int64
	err := s.pool.QueryRow(ctx, query, e.UserID, e.Title, e.Amount.String(), e.Category, e.Date.String(), e.Description).Scan(&id)
	return id, err
}

// UpdateExpense replaces the mutable fields of the user's expense.
func (s *Store) UpdateExpense(ctx context.Context, e models.Expense) error {
	const query = `
	UPDATE expenses
	SET title = $3, amount = $4::numeric, category = $5, expense_date = $6::date, description = $7, updated_at = NOW()
	WHERE id = $1 AND user_id = $2;
	`
	_, err := s.pool.Exec(ctx, query, e.ID, e.UserID, e.Title, e.Amount.String(), e.Category, e.Date.String(), e.Description)
	return err
}

// DeleteExpense removes the user's expense.
func (s *Store) DeleteExpense(ctx context.Context, userID, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2;`, id, userID)
	return err
}

// GetBudget fetches the user's target for month.
func (s *Store) GetBudget(ctx context.Context, userID int64, month string) (models.BudgetSetting, error) {
	const query = `
	SELECT id, user_id, monthly_budget::text, budget_month
	FROM budget_settings
	WHERE user_id = $1 AND budget_month = $2;
	`
	var b models.BudgetSetting
	var amount string
	if err := s.pool.QueryRow(ctx, query, userID, month).Scan(&b.ID, &b.UserID, &amount, &b.Month); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BudgetSetting{}, storage.ErrNotFound
		}
		return models.BudgetSetting{}, err
	}
	var err error
	if b.Amount, err = models.MoneyFromString(amount); err != nil {
		return models.BudgetSetting{}, fmt.Errorf("parse monthly budget: %w", err)
	}
	return b, nil
}

// UpsertBudget sets the user's target for b.Month.
func (s *Store) UpsertBudget(ctx context.Context, b models.BudgetSetting) error {
	const query = `
	INSERT INTO budget_settings (user_id, monthly_budget, budget_month)
	VALUES ($1, $2::numeric, $3)
	ON CONFLICT (user_id, budget_month) DO UPDATE
	SET monthly_budget = EXCLUDED.monthly_budget, updated_at = NOW();
	`
	_, err := s.pool.Exec(ctx, query, b.UserID, b.Amount.String(), b.Month)
	return err
}

func dateParam(d *models.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
