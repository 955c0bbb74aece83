package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/storage"
)

// ListReminders returns the user's reminders by reminder_date ascending.
func (s *Store) ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, user_id, title, description, reminder_date, priority, reminder_type, is_completed, created_at, updated_at
		FROM reminders
		WHERE user_id = ?
		ORDER BY reminder_date ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reminder{}
	for rows.Next() {
		var r models.Reminder
		var priority, kind, date, created, updated string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &date, &priority, &kind, &r.Completed, &created, &updated); err != nil {
			return nil, err
		}
		r.Priority = models.Priority(priority)
		r.Kind = models.Kind(kind)
		if r.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if r.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateReminder inserts a reminder and returns its id.
func (s *Store) CreateReminder(ctx context.Context, r models.Reminder) (int64, error) {
	now := s.stamp()
	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO reminders (user_id, title, description, reminder_date, priority, reminder_type, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Title, r.Description, r.Date.UTC().Format(timeLayout), string(r.Priority), string(r.Kind), r.Completed, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateReminder replaces the mutable fields of the user's reminder.
func (s *Store) UpdateReminder(ctx context.Context, r models.Reminder) error {
	_, err := s.conn.ExecContext(ctx, `
		UPDATE reminders
		SET title = ?, description = ?, reminder_date = ?, priority = ?, reminder_type = ?, is_completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		r.Title, r.Description, r.Date.UTC().Format(timeLayout), string(r.Priority), string(r.Kind), r.Completed, s.stamp(), r.ID, r.UserID)
	return err
}

// DeleteReminder removes the user's reminder.
func (s *Store) DeleteReminder(ctx context.Context, userID, id int64) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM reminders WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

// ListTodos returns the user's todos by priority rank, due date (nulls last),
// then newest first.
func (s *Store) ListTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, user_id, title, description, priority, due_date, is_completed, created_at, updated_at
		FROM todos
		WHERE user_id = ?
		ORDER BY
			CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END,
			due_date ASC NULLS LAST,
			created_at DESC,
			id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		var priority, created, updated string
		var due sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &priority, &due, &t.Completed, &created, &updated); err != nil {
			return nil, err
		}
		t.Priority = models.Priority(priority)
		if due.Valid {
			d, err := parseDate(due.String)
			if err != nil {
				return nil, err
			}
			t.DueDate = &d
		}
		if t.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if t.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTodo inserts a todo and returns its id.
func (s *Store) CreateTodo(ctx context.Context, t models.Todo) (int64, error) {
	now := s.stamp()
	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO todos (user_id, title, description, priority, due_date, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.Description, string(t.Priority), dateParam(t.DueDate), t.Completed, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateTodo replaces the mutable fields of the user's todo.
func (s *Store) UpdateTodo(ctx context.Context, t models.Todo) error {
	_, err := s.conn.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, priority = ?, due_date = ?, is_completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		t.Title, t.Description, string(t.Priority), dateParam(t.DueDate), t.Completed, s.stamp(), t.ID, t.UserID)
	return err
}

// DeleteTodo removes the user's todo.
func (s *Store) DeleteTodo(ctx context.Context, userID, id int64) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

// ListExpenses returns the user's expenses dated in [start, end), newest first.
func (s *Store) ListExpenses(ctx context.Context, userID int64, start, end models.Date) ([]models.Expense, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, user_id, title, amount, category, expense_date, description, created_at, updated_at
		FROM expenses
		WHERE user_id = ? AND expense_date >= ? AND expense_date < ?
		ORDER BY expense_date DESC, id DESC`, userID, start.String(), end.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var amount, date, created, updated string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &amount, &e.Category, &date, &e.Description, &created, &updated); err != nil {
			return nil, err
		}
		if e.Amount, err = models.MoneyFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount of expense %d: %w", e.ID, err)
		}
		if e.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if e.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateExpense inserts an expense and returns its id.
func (s *Store) CreateExpense(ctx context.Context, e models.Expense) (int64, error) {
	now := s.stamp()
	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO expenses (user_id, title, amount, category, expense_date, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Title, e.Amount.String(), e.Category, e.Date.String(), e.Description, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateExpense replaces the mutable fields of the user's expense.
func (s *Store) UpdateExpense(ctx context.Context, e models.Expense) error {
	_, err := s.conn.ExecContext(ctx, `
		UPDATE expenses
		SET title = ?, amount = ?, category = ?, expense_date = ?, description = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		e.Title, e.Amount.String(), e.Category, e.Date.String(), e.Description, s.stamp(), e.ID, e.UserID)
	return err
}

// DeleteExpense removes the user's expense.
func (s *Store) DeleteExpense(ctx context.Context, userID, id int64) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

// GetBudget fetches the user's target for month.
func (s *Store) GetBudget(ctx context.Context, userID int64, month string) (models.BudgetSetting, error) {
	var b models.BudgetSetting
	var amount string
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, user_id, monthly_budget, budget_month
		FROM budget_settings
		WHERE user_id = ? AND budget_month = ?`, userID, month).Scan(&b.ID, &b.UserID, &amount, &b.Month)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BudgetSetting{}, storage.ErrNotFound
		}
		return models.BudgetSetting{}, err
	}
	if b.Amount, err = models.MoneyFromString(amount); err != nil {
		return models.BudgetSetting{}, fmt.Errorf("parse monthly budget: %w", err)
	}
	return b, nil
}

// UpsertBudget sets the user's target for b.Month.
func (s *Store) UpsertBudget(ctx context.Context, b models.BudgetSetting) error {
	now := s.stamp()
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO budget_settings (user_id, monthly_budget, budget_month, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, budget_month) DO UPDATE
		SET monthly_budget = excluded.monthly_budget, updated_at = excluded.updated_at`,
		b.UserID, b.Amount.String(), b.Month, now, now)
	return err
}

func dateParam(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}
