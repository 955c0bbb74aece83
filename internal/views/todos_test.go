package views

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/homeflow-be/internal/models"
)

func due(s string) *models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func todoIDs(todos []models.Todo) []int64 {
	out := make([]int64, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestSortTodosTotalOrder(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todos := []models.Todo{
		{ID: 1, Priority: models.PriorityLow, CreatedAt: created},
		{ID: 2, Priority: models.PriorityHigh, DueDate: due("2025-02-01"), CreatedAt: created},
		{ID: 3, Priority: models.PriorityHigh, CreatedAt: created},
		{ID: 4, Priority: models.PriorityHigh, CreatedAt: created.Add(time.Hour)},
		{ID: 5, Priority: models.PriorityHigh, DueDate: due("2025-01-15"), CreatedAt: created},
		{ID: 6, Priority: models.PriorityMedium, DueDate: due("2025-01-01"), CreatedAt: created},
		{ID: 7, Priority: models.PriorityHigh, CreatedAt: created},
	}
	want := []int64{5, 2, 4, 7, 3, 6, 1}

	assert.Equal(t, want, todoIDs(SortTodos(todos)))

	// The order is total, so any input permutation sorts the same way.
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.Todo(nil), todos...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, todoIDs(SortTodos(shuffled)))
	}
}

func TestIsOverdue(t *testing.T) {
	today, err := models.ParseDate("2025-03-10")
	require.NoError(t, err)

	assert.True(t, IsOverdue(models.Todo{DueDate: due("2025-03-09")}, today))
	assert.False(t, IsOverdue(models.Todo{DueDate: due("2025-03-10")}, today))
	assert.False(t, IsOverdue(models.Todo{DueDate: due("2025-03-09"), Completed: true}, today))
	assert.False(t, IsOverdue(models.Todo{}, today))
}

func TestFilterTodos(t *testing.T) {
	todos := []models.Todo{
		{ID: 1, Priority: models.PriorityHigh},
		{ID: 2, Priority: models.PriorityHigh, Completed: true},
		{ID: 3, Priority: models.PriorityMedium},
		{ID: 4, Priority: models.PriorityLow, Completed: true},
	}

	cases := []struct {
		filter string
		want   []int64
	}{
		{"", []int64{1, 2, 3, 4}},
		{"all", []int64{1, 2, 3, 4}},
		{"pending", []int64{1, 3}},
		{"completed", []int64{2, 4}},
		{"high", []int64{1, 2}},
		{"medium", []int64{3}},
		{"low", []int64{4}},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			f, err := ParseTodoFilter(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, todoIDs(FilterTodos(todos, f)))
		})
	}

	_, err := ParseTodoFilter("urgent")
	assert.Error(t, err)
}

func TestCountTodos(t *testing.T) {
	todos := []models.Todo{
		{Priority: models.PriorityHigh},
		{Priority: models.PriorityHigh, Completed: true},
		{Priority: models.PriorityHigh},
		{Priority: models.PriorityLow},
	}

	assert.Equal(t, TodoStats{Total: 4, Completed: 1, Pending: 3, HighPriorityPending: 2}, CountTodos(todos))
	assert.Equal(t, TodoStats{}, CountTodos(nil))
}
