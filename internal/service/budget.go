package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/models/dto"
	"github.com/hongminglow/homeflow-be/internal/storage"
	"github.com/hongminglow/homeflow-be/internal/views"
)

// BudgetStore is the persistence the budget service needs.
type BudgetStore interface {
	storage.ExpenseStore
	storage.BudgetStore
}

// BudgetService owns expenses, the monthly target and their aggregates.
type BudgetService struct {
	store BudgetStore
	now   func() time.Time
}

// NewBudgetService creates the service over store.
func NewBudgetService(store BudgetStore) *BudgetService {
	return &BudgetService{store: store, now: time.Now}
}

// Month returns the expenses of month (YYYY-MM, default current UTC month)
// with the budget figures computed from them.
func (s *BudgetService) Month(ctx context.Context, userID int64, month string) (dto.MonthResponse, error) {
	month, expenses, budget, err := s.load(ctx, userID, month)
	if err != nil {
		return dto.MonthResponse{}, err
	}
	spent := views.SumAmounts(expenses)
	return dto.MonthResponse{
		Expenses: expenses,
		Budget: dto.BudgetResponse{
			Amount:    budget,
			Month:     month,
			Spent:     spent,
			Remaining: budget.Sub(spent),
		},
	}, nil
}

// Summary aggregates month into totals, category and time series, and recommendations.
func (s *BudgetService) Summary(ctx context.Context, userID int64, month string) (views.Summary, error) {
	month, expenses, budget, err := s.load(ctx, userID, month)
	if err != nil {
		return views.Summary{}, err
	}
	return views.Summarize(month, budget, expenses), nil
}

// Expenses lists month filtered and ordered by q.
func (s *BudgetService) Expenses(ctx context.Context, userID int64, month string, q views.ExpenseQuery) (dto.ExpenseListResponse, error) {
	_, expenses, _, err := s.load(ctx, userID, month)
	if err != nil {
		return dto.ExpenseListResponse{}, err
	}
	matched := q.Apply(expenses)
	total := views.SumAmounts(matched)
	return dto.ExpenseListResponse{
		Expenses: matched,
		Count:    len(matched),
		Total:    total,
		Average:  views.Average(total, len(matched)),
	}, nil
}

// CreateExpense rejects a blank title, a non-positive amount and a missing date.
func (s *BudgetService) CreateExpense(ctx context.Context, userID int64, req dto.ExpenseRequest) (int64, error) {
	e, err := expenseFromRequest(req)
	if err != nil {
		return 0, err
	}
	e.UserID = userID
	id, err := s.store.CreateExpense(ctx, e)
	return id, storageErr("create expense", err)
}

// UpdateExpense replaces every mutable field under the create rules.
func (s *BudgetService) UpdateExpense(ctx context.Context, userID, id int64, req dto.ExpenseRequest) error {
	e, err := expenseFromRequest(req)
	if err != nil {
		return err
	}
	e.ID = id
	e.UserID = userID
	return storageErr("update expense", s.store.UpdateExpense(ctx, e))
}

// DeleteExpense removes the expense if the user owns it.
func (s *BudgetService) DeleteExpense(ctx context.Context, userID, id int64) error {
	return storageErr("delete expense", s.store.DeleteExpense(ctx, userID, id))
}

// SetBudget upserts the target of a month; the amount may be zero but not negative.
func (s *BudgetService) SetBudget(ctx context.Context, userID int64, req dto.BudgetRequest) error {
	var v validator
	v.check(req.Amount != nil, "monthly_budget", "monthly_budget is required")
	v.check(req.Amount == nil || !req.Amount.IsNegative(), "monthly_budget", "monthly_budget cannot be negative")
	v.check(req.Amount == nil || req.Amount.InRange(), "monthly_budget", "monthly_budget must not exceed "+models.MaxMoney.String())
	month := strings.TrimSpace(req.Month)
	if month == "" {
		month = views.MonthOf(s.now())
	}
	_, _, monthErr := models.ParseMonth(month)
	v.check(monthErr == nil, "budget_month", errText(monthErr))
	if err := v.err(); err != nil {
		return err
	}

	return storageErr("upsert budget", s.store.UpsertBudget(ctx, models.BudgetSetting{
		UserID: userID,
		Amount: models.NewMoney(req.Amount.Decimal),
		Month:  month,
	}))
}

func (s *BudgetService) load(ctx context.Context, userID int64, month string) (string, []models.Expense, models.Money, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		month = views.MonthOf(s.now())
	}
	start, end, err := models.ParseMonth(month)
	if err != nil {
		return "", nil, models.Money{}, &ValidationError{Fields: map[string]string{"month": err.Error()}}
	}

	expenses, err := s.store.ListExpenses(ctx, userID, start, end)
	if err != nil {
		return "", nil, models.Money{}, storageErr("list expenses", err)
	}

	budget := models.ZeroMoney
	setting, err := s.store.GetBudget(ctx, userID, month)
	switch {
	case err == nil:
		budget = setting.Amount
	case !errors.Is(err, storage.ErrNotFound):
		return "", nil, models.Money{}, storageErr("get budget", err)
	}
	return month, expenses, budget, nil
}

func expenseFromRequest(req dto.ExpenseRequest) (models.Expense, error) {
	var v validator
	title := strings.TrimSpace(req.Title)
	v.check(title != "", "title", "title is required")
	v.check(req.Amount != nil, "amount", "amount is required")
	v.check(req.Amount == nil || req.Amount.IsPositive(), "amount", "amount must be greater than zero")
	v.check(req.Amount == nil || req.Amount.InRange(), "amount", "amount must not exceed "+models.MaxMoney.String())

	date, dateErr := models.ParseDate(req.Date)
	v.check(strings.TrimSpace(req.Date) != "", "expense_date", "expense_date is required")
	v.check(dateErr == nil, "expense_date", errText(dateErr))

	if err := v.err(); err != nil {
		return models.Expense{}, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.DefaultCategory
	}
	return models.Expense{
		Title:       title,
		Amount:      models.NewMoney(req.Amount.Decimal),
		Category:    category,
		Date:        date,
		Description: trimOptional(req.Description),
	}, nil
}
