package views

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/homeflow-be/internal/models"
)

// Window sizes of the summary series.
const (
	TopCategories = 5
	DailyWindow   = 14
	WeeklyWindow  = 8
)

// Severity bands of the spending percentage.
const (
	SeverityNormal   = "normal"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

var hundred = decimal.NewFromInt(100)

// SumAmounts adds up the expense amounts.
func SumAmounts(expenses []models.Expense) models.Money {
	total := models.ZeroMoney
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SpendingPercentage is spent/budget*100 capped at 100, and 0 without a positive budget.
func SpendingPercentage(spent, budget models.Money) float64 {
	return spendingPercentage(spent, budget).Round(2).InexactFloat64()
}

// spendingPercentage is the unrounded percentage; severity bands use it.
func spendingPercentage(spent, budget models.Money) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}
	pct := spent.Div(budget.Decimal).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// Severity classifies a spending percentage.
func Severity(pct float64) string {
	switch {
	case pct >= 90:
		return SeverityCritical
	case pct >= 75:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// CategoryLabel names the bucket of a category, grouping blanks as Uncategorized.
func CategoryLabel(category string) string {
	if strings.TrimSpace(category) == "" {
		return models.UncategorizedLabel
	}
	return category
}

// CategoryTotal is the summed spend of one category.
type CategoryTotal struct {
	Category string       `json:"category"`
	Total    models.Money `json:"total"`
}

// CategoryTotals sums expenses per category, largest first (ties by name),
// keeping at most top entries when top > 0.
func CategoryTotals(expenses []models.Expense, top int) []CategoryTotal {
	sums := map[string]models.Money{}
	for _, e := range expenses {
		label := CategoryLabel(e.Category)
		cur, ok := sums[label]
		if !ok {
			cur = models.ZeroMoney
		}
		sums[label] = cur.Add(e.Amount)
	}
	out := make([]CategoryTotal, 0, len(sums))
	for category, total := range sums {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total.Decimal); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

// SeriesPoint is the spend of one day or one week.
type SeriesPoint struct {
	Date  models.Date  `json:"date"`
	Total models.Money `json:"total"`
}

// DailySeries sums spend per expense date, ascending, keeping the last keep dates.
func DailySeries(expenses []models.Expense, keep int) []SeriesPoint {
	return series(expenses, keep, func(d models.Date) models.Date { return d })
}

// WeeklySeries sums spend per ISO week (Monday start), ascending, keeping the
// last keep weeks.
func WeeklySeries(expenses []models.Expense, keep int) []SeriesPoint {
	return series(expenses, keep, WeekStart)
}

// WeekStart returns the Monday on or before d.
func WeekStart(d models.Date) models.Date {
	offset := (int(d.Weekday()) + 6) % 7
	return models.Date{Time: d.AddDate(0, 0, -offset)}
}

func series(expenses []models.Expense, keep int, key func(models.Date) models.Date) []SeriesPoint {
	index := map[string]int{}
	out := []SeriesPoint{}
	for _, e := range expenses {
		k := key(e.Date)
		i, ok := index[k.String()]
		if !ok {
			i = len(out)
			index[k.String()] = i
			out = append(out, SeriesPoint{Date: k, Total: models.ZeroMoney})
		}
		out[i].Total = out[i].Total.Add(e.Amount)
	}
	slices.SortFunc(out, func(a, b SeriesPoint) int {
		return a.Date.Compare(b.Date.Time)
	})
	if keep > 0 && len(out) > keep {
		out = out[len(out)-keep:]
	}
	return out
}

// Recommendation is an illustrative budget target derived from current spend.
type Recommendation struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Amount      models.Money `json:"amount"`
}

// Recommendations suggests targets from spent; none when nothing was spent.
func Recommendations(spent models.Money) []Recommendation {
	if !spent.IsPositive() {
		return []Recommendation{}
	}
	return []Recommendation{
		{Title: "50/30/20 Rule", Description: "50% needs, 30% wants, 20% savings", Amount: spent.Mul(decimal.RequireFromString("2.5"))},
		{Title: "Conservative", Description: "Current spending plus a 20% buffer", Amount: spent.Mul(decimal.RequireFromString("1.2"))},
		{Title: "Aggressive Saving", Description: "Current spending plus a 10% buffer", Amount: spent.Mul(decimal.RequireFromString("1.1"))},
	}
}

// Summary is the aggregate view of one month of spending.
type Summary struct {
	Month           string           `json:"budget_month"`
	Budget          models.Money     `json:"monthly_budget"`
	Spent           models.Money     `json:"current_month_spent"`
	Remaining       models.Money     `json:"remaining"`
	Percentage      float64          `json:"spending_percentage"`
	Severity        string           `json:"severity"`
	TopCategories   []CategoryTotal  `json:"top_categories"`
	Daily           []SeriesPoint    `json:"daily"`
	Weekly          []SeriesPoint    `json:"weekly"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Summarize aggregates a month of expenses against its budget.
func Summarize(month string, budget models.Money, expenses []models.Expense) Summary {
	spent := SumAmounts(expenses)
	pct := spendingPercentage(spent, budget)
	return Summary{
		Month:           month,
		Budget:          budget,
		Spent:           spent,
		Remaining:       budget.Sub(spent),
		Percentage:      pct.Round(2).InexactFloat64(),
		Severity:        Severity(pct.InexactFloat64()),
		TopCategories:   CategoryTotals(expenses, TopCategories),
		Daily:           DailySeries(expenses, DailyWindow),
		Weekly:          WeeklySeries(expenses, WeeklyWindow),
		Recommendations: Recommendations(spent),
	}
}

// ExpenseQuery filters and orders an expense list.
type ExpenseQuery struct {
	Category string
	Search   string
	SortBy   string
	Desc     bool
}

// ParseExpenseQuery validates sort (date, amount, category; default date) and
// order (asc, desc; default desc).
func ParseExpenseQuery(category, search, sortBy, order string) (ExpenseQuery, error) {
	q := ExpenseQuery{Category: strings.TrimSpace(category), Search: strings.TrimSpace(search), SortBy: sortBy, Desc: true}
	switch sortBy {
	case "":
		q.SortBy = "date"
	case "date", "amount", "category":
	default:
		return ExpenseQuery{}, errors.New("sort must be one of date, amount, category")
	}
	switch order {
	case "", "desc":
	case "asc":
		q.Desc = false
	default:
		return ExpenseQuery{}, errors.New("order must be asc or desc")
	}
	return q, nil
}

// Apply returns the matching expenses in the requested order.
func (q ExpenseQuery) Apply(expenses []models.Expense) []models.Expense {
	needle := strings.ToLower(q.Search)
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if q.Category != "" && CategoryLabel(e.Category) != q.Category {
			continue
		}
		if needle != "" && !matches(e, needle) {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b models.Expense) int {
		var c int
		switch q.SortBy {
		case "amount":
			c = a.Amount.Cmp(b.Amount.Decimal)
		case "category":
			c = cmp.Compare(CategoryLabel(a.Category), CategoryLabel(b.Category))
		default:
			c = a.Date.Compare(b.Date.Time)
		}
		if q.Desc {
			return -c
		}
		return c
	})
	return out
}

func matches(e models.Expense, needle string) bool {
	if strings.Contains(strings.ToLower(e.Title), needle) || strings.Contains(strings.ToLower(e.Category), needle) {
		return true
	}
	return e.Description != nil && strings.Contains(strings.ToLower(*e.Description), needle)
}

// Average is total / count rounded to cents, zero for an empty list.
func Average(total models.Money, count int) models.Money {
	if count == 0 {
		return models.ZeroMoney
	}
	return models.NewMoney(total.Div(decimal.NewFromInt(int64(count))))
}

// MonthOf formats the UTC month containing t.
func MonthOf(t time.Time) string {
	return t.UTC().Format(models.MonthLayout)
}
