// Package storagetest holds the behavior every storage.Store implementation
// must share, run by each backend's tests.
package storagetest

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/storage"
)

var seq atomic.Int64

// StoreSuite runs against the store returned by Open. Each test creates its
// own users, so one store can be shared by the whole suite.
type StoreSuite struct {
	suite.Suite
	Open  func() (storage.Store, error)
	store storage.Store
	ctx   context.Context
}

// SetupSuite opens the store under test.
func (s *StoreSuite) SetupSuite() {
	s.ctx = context.Background()
	store, err := s.Open()
	s.Require().NoError(err, "failed to open store")
	s.store = store
}

// TearDownSuite closes the store.
func (s *StoreSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoreSuite) newUser() models.User {
	n := seq.Add(1)
	user, err := s.store.UpsertUser(s.ctx, models.User{
		ExternalID:  fmt.Sprintf("sub-%d-%d", time.Now().UnixNano(), n),
		Email:       fmt.Sprintf("user%d@example.com", n),
		DisplayName: fmt.Sprintf("User %d", n),
	})
	s.Require().NoError(err)
	s.Require().NotZero(user.ID)
	return user
}

// TestUpsertUserRefreshesProfile checks an upsert on a known subject updates it in place.
func (s *StoreSuite) TestUpsertUserRefreshesProfile() {
	user := s.newUser()

	found, err := s.store.FindUserByExternalID(s.ctx, user.ExternalID)
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)
	s.Equal(user.Email, found.Email)

	user.Email = "changed@example.com"
	user.DisplayName = "Changed"
	updated, err := s.store.UpsertUser(s.ctx, user)
	s.Require().NoError(err)
	s.Equal(user.ID, updated.ID)
	s.Equal("changed@example.com", updated.Email)
	s.Equal("Changed", updated.DisplayName)
}

// TestFindUserMissing checks an unknown subject reports ErrNotFound.
func (s *StoreSuite) TestFindUserMissing() {
	_, err := s.store.FindUserByExternalID(s.ctx, "nobody")
	s.ErrorIs(err, storage.ErrNotFound)
}

// TestRemindersScopedAndOrdered checks ordering and that foreign writes are no-ops.
func (s *StoreSuite) TestRemindersScopedAndOrdered() {
	alice := s.newUser()
	bob := s.newUser()
	base := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	note := "bring charger"

	laterID, err := s.store.CreateReminder(s.ctx, models.Reminder{
		UserID: alice.ID, Title: "Later", Date: base.Add(48 * time.Hour),
		Priority: models.PriorityLow, Kind: models.KindEvent,
	})
	s.Require().NoError(err)
	soonID, err := s.store.CreateReminder(s.ctx, models.Reminder{
		UserID: alice.ID, Title: "Soon", Description: &note, Date: base,
		Priority: models.PriorityHigh, Kind: models.KindReminder,
	})
	s.Require().NoError(err)

	list, err := s.store.ListReminders(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(soonID, list[0].ID)
	s.Equal(laterID, list[1].ID)
	s.True(base.Equal(list[0].Date))
	s.Require().NotNil(list[0].Description)
	s.Equal(note, *list[0].Description)
	s.Nil(list[1].Description)
	s.Equal(models.KindEvent, list[1].Kind)

	others, err := s.store.ListReminders(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Empty(others)

	// Foreign update and delete are silent no-ops.
	s.Require().NoError(s.store.UpdateReminder(s.ctx, models.Reminder{
		ID: soonID, UserID: bob.ID, Title: "hijacked", Date: base,
		Priority: models.PriorityLow, Kind: models.KindReminder,
	}))
	s.Require().NoError(s.store.DeleteReminder(s.ctx, bob.ID, laterID))

	list, err = s.store.ListReminders(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Soon", list[0].Title)

	s.Require().NoError(s.store.UpdateReminder(s.ctx, models.Reminder{
		ID: soonID, UserID: alice.ID, Title: "Soon (done)", Date: base,
		Priority: models.PriorityHigh, Kind: models.KindReminder, Completed: true,
	}))
	s.Require().NoError(s.store.DeleteReminder(s.ctx, alice.ID, laterID))

	list, err = s.store.ListReminders(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Soon (done)", list[0].Title)
	s.True(list[0].Completed)
	s.Nil(list[0].Description)
}

// TestDeleteMissingIsSilent checks deleting an absent id succeeds.
func (s *StoreSuite) TestDeleteMissingIsSilent() {
	user := s.newUser()
	s.NoError(s.store.DeleteReminder(s.ctx, user.ID, 999999))
	s.NoError(s.store.DeleteTodo(s.ctx, user.ID, 999999))
	s.NoError(s.store.DeleteExpense(s.ctx, user.ID, 999999))
}

// TestTodosTotalOrder checks the priority, due date, created_at, id order.
func (s *StoreSuite) TestTodosTotalOrder() {
	user := s.newUser()
	early := models.NewDate(time.Date(2030, 1, 5, 0, 0, 0, 0, time.UTC))
	late := models.NewDate(time.Date(2030, 2, 5, 0, 0, 0, 0, time.UTC))

	create := func(title string, p models.Priority, due *models.Date) int64 {
		id, err := s.store.CreateTodo(s.ctx, models.Todo{UserID: user.ID, Title: title, Priority: p, DueDate: due})
		s.Require().NoError(err)
		return id
	}
	lowNoDue := create("low no due", models.PriorityLow, nil)
	highLate := create("high late", models.PriorityHigh, &late)
	highNoDueA := create("high no due a", models.PriorityHigh, nil)
	highNoDueB := create("high no due b", models.PriorityHigh, nil)
	highEarly := create("high early", models.PriorityHigh, &early)
	medium := create("medium", models.PriorityMedium, &early)

	list, err := s.store.ListTodos(s.ctx, user.ID)
	s.Require().NoError(err)
	ids := make([]int64, 0, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
	}
	s.Equal([]int64{highEarly, highLate, highNoDueB, highNoDueA, medium, lowNoDue}, ids)
	s.Require().NotNil(list[0].DueDate)
	s.Equal("2030-01-05", list[0].DueDate.String())
}

// TestTodoUpdateScoped checks another user cannot update a todo.
func (s *StoreSuite) TestTodoUpdateScoped() {
	alice := s.newUser()
	bob := s.newUser()
	due := models.NewDate(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC))

	id, err := s.store.CreateTodo(s.ctx, models.Todo{UserID: alice.ID, Title: "Pay rent", Priority: models.PriorityMedium, DueDate: &due})
	s.Require().NoError(err)

	s.Require().NoError(s.store.UpdateTodo(s.ctx, models.Todo{ID: id, UserID: bob.ID, Title: "hijacked", Priority: models.PriorityLow}))
	s.Require().NoError(s.store.UpdateTodo(s.ctx, models.Todo{ID: id, UserID: alice.ID, Title: "Pay rent", Priority: models.PriorityHigh, Completed: true}))

	list, err := s.store.ListTodos(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Pay rent", list[0].Title)
	s.Equal(models.PriorityHigh, list[0].Priority)
	s.True(list[0].Completed)
	s.Nil(list[0].DueDate)
}

// TestExpenseAmountRoundTrip checks cents survive storage.
func (s *StoreSuite) TestExpenseAmountRoundTrip() {
	user := s.newUser()
	date := models.NewDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))

	_, err := s.store.CreateExpense(s.ctx, models.Expense{
		UserID: user.ID, Title: "Groceries", Amount: models.MustMoney("25.50"), Category: "Food", Date: date,
	})
	s.Require().NoError(err)

	start, end, err := models.ParseMonth("2025-01")
	s.Require().NoError(err)
	list, err := s.store.ListExpenses(s.ctx, user.ID, start, end)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("25.50", list[0].Amount.String())
	s.Equal("2025-01-15", list[0].Date.String())
	s.Equal("Food", list[0].Category)
}

// TestExpensesMonthRangeAndScope checks the half-open month range and user scope.
func (s *StoreSuite) TestExpensesMonthRangeAndScope() {
	alice := s.newUser()
	bob := s.newUser()
	add := func(userID int64, title, amount string, y int, m time.Month, d int) int64 {
		id, err := s.store.CreateExpense(s.ctx, models.Expense{
			UserID: userID, Title: title, Amount: models.MustMoney(amount), Category: "Other",
			Date: models.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)),
		})
		s.Require().NoError(err)
		return id
	}
	add(alice.ID, "december", "10.00", 2024, 12, 31)
	first := add(alice.ID, "first", "300.00", 2025, 1, 1)
	last := add(alice.ID, "last", "450.00", 2025, 1, 31)
	add(alice.ID, "february", "5.00", 2025, 2, 1)
	add(bob.ID, "bob", "99.00", 2025, 1, 10)

	start, end, err := models.ParseMonth("2025-01")
	s.Require().NoError(err)
	list, err := s.store.ListExpenses(s.ctx, alice.ID, start, end)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(last, list[0].ID)
	s.Equal(first, list[1].ID)

	s.Require().NoError(s.store.UpdateExpense(s.ctx, models.Expense{
		ID: first, UserID: bob.ID, Title: "hijacked", Amount: models.MustMoney("1.00"), Category: "x", Date: start,
	}))
	s.Require().NoError(s.store.DeleteExpense(s.ctx, bob.ID, last))

	list, err = s.store.ListExpenses(s.ctx, alice.ID, start, end)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("300.00", list[1].Amount.String())

	s.Require().NoError(s.store.UpdateExpense(s.ctx, models.Expense{
		ID: first, UserID: alice.ID, Title: "first edited", Amount: models.MustMoney("301.25"), Category: "Bills", Date: start,
	}))
	s.Require().NoError(s.store.DeleteExpense(s.ctx, alice.ID, last))

	list, err = s.store.ListExpenses(s.ctx, alice.ID, start, end)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("first edited", list[0].Title)
	s.Equal("301.25", list[0].Amount.String())
	s.Equal("Bills", list[0].Category)
}

// TestBudgetUpsert checks one budget per user and month.
func (s *StoreSuite) TestBudgetUpsert() {
	user := s.newUser()

	_, err := s.store.GetBudget(s.ctx, user.ID, "2025-01")
	s.ErrorIs(err, storage.ErrNotFound)

	s.Require().NoError(s.store.UpsertBudget(s.ctx, models.BudgetSetting{UserID: user.ID, Amount: models.MustMoney("1000"), Month: "2025-01"}))
	s.Require().NoError(s.store.UpsertBudget(s.ctx, models.BudgetSetting{UserID: user.ID, Amount: models.MustMoney("1200.50"), Month: "2025-01"}))
	s.Require().NoError(s.store.UpsertBudget(s.ctx, models.BudgetSetting{UserID: user.ID, Amount: models.MustMoney("800"), Month: "2025-02"}))

	got, err := s.store.GetBudget(s.ctx, user.ID, "2025-01")
	s.Require().NoError(err)
	s.Equal("1200.50", got.Amount.String())
	s.Equal("2025-01", got.Month)
	s.Equal(user.ID, got.UserID)

	other := s.newUser()
	_, err = s.store.GetBudget(s.ctx, other.ID, "2025-01")
	s.ErrorIs(err, storage.ErrNotFound)
}
