package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/homeflow-be/internal/models"
)

func expense(id int64, date, amount, category string) models.Expense {
	d, err := models.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return models.Expense{ID: id, Title: "e", Date: d, Amount: models.MustMoney(amount), Category: category}
}

func TestSummarizeWarningScenario(t *testing.T) {
	expenses := []models.Expense{
		expense(1, "2025-01-10", "300", "Food"),
		expense(2, "2025-01-20", "450", "Rent"),
	}

	s := Summarize("2025-01", models.MustMoney("1000"), expenses)

	assert.Equal(t, "750.00", s.Spent.String())
	assert.Equal(t, "250.00", s.Remaining.String())
	assert.InDelta(t, 75.0, s.Percentage, 0.0001)
	assert.Equal(t, SeverityWarning, s.Severity)
	require.Len(t, s.TopCategories, 2)
	assert.Equal(t, "Rent", s.TopCategories[0].Category)
	require.Len(t, s.Recommendations, 3)
	assert.Equal(t, "1875.00", s.Recommendations[0].Amount.String())
	assert.Equal(t, "900.00", s.Recommendations[1].Amount.String())
	assert.Equal(t, "825.00", s.Recommendations[2].Amount.String())
}

func TestSummarizeEmptyMonth(t *testing.T) {
	s := Summarize("2025-01", models.MustMoney("500"), nil)

	assert.Equal(t, "0.00", s.Spent.String())
	assert.Equal(t, "500.00", s.Remaining.String())
	assert.Zero(t, s.Percentage)
	assert.Equal(t, SeverityNormal, s.Severity)
	assert.Empty(t, s.Recommendations)
	assert.NotNil(t, s.Recommendations)
	assert.Empty(t, s.Daily)
}

func TestRemainingKeepsSign(t *testing.T) {
	s := Summarize("2025-01", models.MustMoney("100"), []models.Expense{expense(1, "2025-01-02", "130.25", "Food")})

	assert.Equal(t, "-30.25", s.Remaining.String())
	assert.Equal(t, 100.0, s.Percentage)
	assert.Equal(t, SeverityCritical, s.Severity)
}

func TestSpendingPercentage(t *testing.T) {
	assert.Zero(t, SpendingPercentage(models.MustMoney("50"), models.ZeroMoney))
	assert.Zero(t, SpendingPercentage(models.MustMoney("50"), models.MustMoney("-10")))
	assert.InDelta(t, 33.33, SpendingPercentage(models.MustMoney("1"), models.MustMoney("3")), 0.0001)
	assert.Equal(t, SeverityCritical, Severity(90))
	assert.Equal(t, SeverityWarning, Severity(89.99))
	assert.Equal(t, SeverityNormal, Severity(74.99))
}

func TestSeverityUsesUnroundedPercentage(t *testing.T) {
	cases := []struct {
		name     string
		spent    string
		severity string
	}{
		{"just under critical", "900.00", SeverityWarning},
		{"just under warning", "750.00", SeverityNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expenses := []models.Expense{expense(1, "2025-01-10", tc.spent, "Food")}

			s := Summarize("2025-01", models.MustMoney("1000.01"), expenses)

			assert.Equal(t, tc.severity, s.Severity)
		})
	}

	s := Summarize("2025-01", models.MustMoney("1000.01"), []models.Expense{expense(1, "2025-01-10", "900.00", "Food")})
	assert.Equal(t, 90.0, s.Percentage)
}

func TestCategoryTotalsTopFive(t *testing.T) {
	expenses := []models.Expense{
		expense(1, "2025-01-01", "10", "A"),
		expense(2, "2025-01-01", "60", "B"),
		expense(3, "2025-01-01", "30", ""),
		expense(4, "2025-01-01", "30", "  "),
		expense(5, "2025-01-01", "20", "C"),
		expense(6, "2025-01-01", "5", "D"),
		expense(7, "2025-01-01", "50", "E"),
		expense(8, "2025-01-01", "1", "F"),
	}

	got := CategoryTotals(expenses, TopCategories)
	require.Len(t, got, 5)
	assert.Equal(t, "B", got[0].Category)
	assert.Equal(t, "Uncategorized", got[1].Category)
	assert.Equal(t, "60.00", got[1].Total.String())
	assert.Equal(t, "E", got[2].Category)
	assert.Equal(t, "C", got[3].Category)
	assert.Equal(t, "A", got[4].Category)
}

func TestDailySeriesKeepsLastDates(t *testing.T) {
	var expenses []models.Expense
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		d := models.NewDate(start.AddDate(0, 0, i))
		expenses = append(expenses, models.Expense{ID: int64(i), Date: d, Amount: models.MustMoney("1.50")})
	}
	expenses = append(expenses, expenses[19])

	got := DailySeries(expenses, DailyWindow)
	require.Len(t, got, DailyWindow)
	assert.Equal(t, "2025-01-07", got[0].Date.String())
	assert.Equal(t, "2025-01-20", got[13].Date.String())
	assert.Equal(t, "3.00", got[13].Total.String())
}

func TestWeeklySeriesStartsOnMonday(t *testing.T) {
	expenses := []models.Expense{
		expense(1, "2025-01-05", "10", "A"), // Sunday, week of Dec 30
		expense(2, "2025-01-06", "20", "A"), // Monday
		expense(3, "2025-01-12", "5", "A"),  // Sunday, same week
	}

	got := WeeklySeries(expenses, WeeklyWindow)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-12-30", got[0].Date.String())
	assert.Equal(t, "10.00", got[0].Total.String())
	assert.Equal(t, "2025-01-06", got[1].Date.String())
	assert.Equal(t, "25.00", got[1].Total.String())
}

func TestExpenseQuery(t *testing.T) {
	note := "weekly SHOP"
	expenses := []models.Expense{
		expense(1, "2025-01-03", "12.00", "Food"),
		expense(2, "2025-01-01", "40.00", "Transport"),
		expense(3, "2025-01-02", "7.50", ""),
	}
	expenses[0].Description = &note
	expenses[1].Title = "Train pass"

	q, err := ParseExpenseQuery("", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 2}, expenseIDs(q.Apply(expenses)))

	q, err = ParseExpenseQuery("", "", "amount", "asc")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, expenseIDs(q.Apply(expenses)))

	q, err = ParseExpenseQuery("", "", "category", "asc")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, expenseIDs(q.Apply(expenses)))

	q, err = ParseExpenseQuery("Uncategorized", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, expenseIDs(q.Apply(expenses)))

	q, err = ParseExpenseQuery("", "shop", "", "")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, expenseIDs(q.Apply(expenses)))

	q, err = ParseExpenseQuery("", "TRAIN", "", "")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, expenseIDs(q.Apply(expenses)))

	_, err = ParseExpenseQuery("", "", "title", "")
	assert.Error(t, err)
	_, err = ParseExpenseQuery("", "", "", "up")
	assert.Error(t, err)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, "0.00", Average(models.ZeroMoney, 0).String())
	assert.Equal(t, "3.33", Average(models.MustMoney("10"), 3).String())
}

func expenseIDs(expenses []models.Expense) []int64 {
	out := make([]int64, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, e.ID)
	}
	return out
}
