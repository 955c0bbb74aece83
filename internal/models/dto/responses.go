package dto

import "github.com/hongminglow/homeflow-be/internal/models"

// CreatedResponse acknowledges an insert.
type CreatedResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// SuccessResponse acknowledges an update or delete.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// TodoResponse adds the derived overdue flag to a todo.
type TodoResponse struct {
	models.Todo
	Overdue bool `json:"is_overdue"`
}

// BudgetResponse is the budget half of the monthly budget view.
type BudgetResponse struct {
	Amount    models.Money `json:"monthly_budget"`
	Month     string       `json:"budget_month"`
	Spent     models.Money `json:"current_month_spent"`
	Remaining models.Money `json:"remaining"`
}

// MonthResponse is returned by GET /api/budget.
type MonthResponse struct {
	Expenses []models.Expense `json:"expenses"`
	Budget   BudgetResponse   `json:"budget"`
}

// ExpenseListResponse is a filtered and sorted expense view with its totals.
type ExpenseListResponse struct {
	Expenses []models.Expense `json:"expenses"`
	Count    int              `json:"count"`
	Total    models.Money     `json:"total"`
	Average  models.Money     `json:"average"`
}
