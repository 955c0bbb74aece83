package models

import "time"

// Reminder is a timed reminder or calendar event.
type Reminder struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"reminder_date"`
	Priority    Priority  `json:"priority"`
	Kind        Kind      `json:"reminder_type"`
	Completed   bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Todo is a task with an optional due date.
type Todo struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	DueDate     *Date     `json:"due_date,omitempty"`
	Completed   bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Expense is a single spend entry.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Amount      Money     `json:"amount"`
	Category    string    `json:"category"`
	Date        Date      `json:"expense_date"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BudgetSetting is the monthly budget target of one user for one month.
type BudgetSetting struct {
	ID     int64  `json:"id,omitempty"`
	UserID int64  `json:"user_id"`
	Amount Money  `json:"monthly_budget"`
	Month  string `json:"budget_month"`
}

const (
	// DefaultCategory is stored when an expense is created without a category.
	DefaultCategory = "Other"
	// UncategorizedLabel groups expenses whose category is blank.
	UncategorizedLabel = "Uncategorized"
)
