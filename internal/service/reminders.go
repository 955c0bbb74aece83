package service

import (
	"context"
	"strings"
	"time"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/models/dto"
	"github.com/hongminglow/homeflow-be/internal/storage"
	"github.com/hongminglow/homeflow-be/internal/views"
)

// ReminderService owns reminder validation and the reminder views.
type ReminderService struct {
	store storage.ReminderStore
	now   func() time.Time
}

// NewReminderService creates the service over store.
func NewReminderService(store storage.ReminderStore) *ReminderService {
	return &ReminderService{store: store, now: time.Now}
}

// List returns the user's reminders by date ascending.
func (s *ReminderService) List(ctx context.Context, userID int64) ([]models.Reminder, error) {
	list, err := s.store.ListReminders(ctx, userID)
	return list, storageErr("list reminders", err)
}

// ListCompletedLast lists incomplete reminders first.
func (s *ReminderService) ListCompletedLast(ctx context.Context, userID int64) ([]models.Reminder, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.CompletedLast(list), nil
}

// Create validates req and stores a new reminder owned by userID.
func (s *ReminderService) Create(ctx context.Context, userID int64, req dto.ReminderRequest) (int64, error) {
	r, err := reminderFromRequest(req)
	if err != nil {
		return 0, err
	}
	r.UserID = userID
	r.Completed = false
	id, err := s.store.CreateReminder(ctx, r)
	return id, storageErr("create reminder", err)
}

// Update replaces every mutable field of the reminder.
func (s *ReminderService) Update(ctx context.Context, userID, id int64, req dto.ReminderRequest) error {
	r, err := reminderFromRequest(req)
	if err != nil {
		return err
	}
	r.ID = id
	r.UserID = userID
	return storageErr("update reminder", s.store.UpdateReminder(ctx, r))
}

// Delete removes the reminder if the user owns it.
func (s *ReminderService) Delete(ctx context.Context, userID, id int64) error {
	return storageErr("delete reminder", s.store.DeleteReminder(ctx, userID, id))
}

// Upcoming lists the next incomplete reminders.
func (s *ReminderService) Upcoming(ctx context.Context, userID int64, limit int) ([]models.Reminder, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.Upcoming(list, s.now(), limit), nil
}

// UpcomingByPriority buckets upcoming reminders by priority, perBucket each.
func (s *ReminderService) UpcomingByPriority(ctx context.Context, userID int64, perBucket int) (views.PriorityBuckets, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return views.PriorityBuckets{}, err
	}
	if perBucket <= 0 {
		perBucket = views.DefaultUpcomingLimit
	}
	return views.ByPriority(views.Upcoming(list, s.now(), len(list)+1), perBucket), nil
}

// Calendar returns the per-day buckets of a YYYY-MM month, the current UTC
// month when blank.
func (s *ReminderService) Calendar(ctx context.Context, userID int64, month string) ([]views.DayBucket, error) {
	if strings.TrimSpace(month) == "" {
		month = views.MonthOf(s.now())
	}
	start, end, err := models.ParseMonth(strings.TrimSpace(month))
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"month": err.Error()}}
	}
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.ByDay(views.BetweenDays(list, start, end)), nil
}

// Day returns one day's reminders by time of day.
func (s *ReminderService) Day(ctx context.Context, userID int64, date string) ([]models.Reminder, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"date": err.Error()}}
	}
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.OnDay(list, day), nil
}

func reminderFromRequest(req dto.ReminderRequest) (models.Reminder, error) {
	var v validator
	title := strings.TrimSpace(req.Title)
	v.check(title != "", "title", "title is required")

	date, dateErr := parseTimestamp(req.Date)
	v.check(strings.TrimSpace(req.Date) != "", "reminder_date", "reminder_date is required")
	v.check(dateErr == nil, "reminder_date", "reminder_date must be an RFC 3339 timestamp or YYYY-MM-DD")

	priority, pErr := models.ParsePriority(req.Priority)
	v.check(pErr == nil, "priority", errText(pErr))
	kind, kErr := models.ParseKind(req.Kind)
	v.check(kErr == nil, "reminder_type", errText(kErr))

	if err := v.err(); err != nil {
		return models.Reminder{}, err
	}
	return models.Reminder{
		Title:       title,
		Description: trimOptional(req.Description),
		Date:        date.UTC(),
		Priority:    priority,
		Kind:        kind,
		Completed:   req.Completed,
	}, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	models.DateLayout,
}

// parseTimestamp accepts RFC 3339 and the zone-less forms HTML date inputs send (read as UTC).
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
