package dto

import "github.com/hongminglow/homeflow-be/internal/models"

// SyncUserRequest carries profile fields for the caller; the subject always comes from the token.
type SyncUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// ReminderRequest is the body of reminder create and update calls.
type ReminderRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"reminder_date"`
	Priority    string  `json:"priority"`
	Kind        string  `json:"reminder_type"`
	Completed   bool    `json:"is_completed"`
}

// TodoRequest is the body of todo create and update calls.
type TodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	Completed   bool    `json:"is_completed"`
}

// ExpenseRequest is the body of expense create and update calls.
type ExpenseRequest struct {
	Title       string        `json:"title"`
	Amount      *models.Money `json:"amount"`
	Category    string        `json:"category"`
	Date        string        `json:"expense_date"`
	Description *string       `json:"description"`
}

// BudgetRequest upserts the monthly budget target.
type BudgetRequest struct {
	Amount *models.Money `json:"monthly_budget"`
	Month  string        `json:"budget_month"`
}
