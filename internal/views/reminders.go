// Package views derives read-only presentations from a user's records.
// Functions here are pure: they never mutate their input slices.
package views

import (
	"slices"
	"time"

	"github.com/hongminglow/homeflow-be/internal/models"
)

// DefaultUpcomingLimit caps Upcoming when the caller passes no limit.
const DefaultUpcomingLimit = 10

// Upcoming returns incomplete reminders due at or after now, earliest first,
// capped at limit.
func Upcoming(reminders []models.Reminder, now time.Time, limit int) []models.Reminder {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	out := make([]models.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Completed || r.Date.Before(now) {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b models.Reminder) int {
		return a.Date.Compare(b.Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PriorityBuckets partitions reminders by priority.
type PriorityBuckets struct {
	High   []models.Reminder `json:"high"`
	Medium []models.Reminder `json:"medium"`
	Low    []models.Reminder `json:"low"`
}

// ByPriority splits reminders into priority buckets, keeping input order and
// capping each bucket at perBucket (no cap when perBucket <= 0).
func ByPriority(reminders []models.Reminder, perBucket int) PriorityBuckets {
	b := PriorityBuckets{
		High:   []models.Reminder{},
		Medium: []models.Reminder{},
		Low:    []models.Reminder{},
	}
	add := func(bucket *[]models.Reminder, r models.Reminder) {
		if perBucket > 0 && len(*bucket) >= perBucket {
			return
		}
		*bucket = append(*bucket, r)
	}
	for _, r := range reminders {
		switch r.Priority {
		case models.PriorityHigh:
			add(&b.High, r)
		case models.PriorityLow:
			add(&b.Low, r)
		default:
			add(&b.Medium, r)
		}
	}
	return b
}

// DayBucket holds the reminders falling on one calendar date.
type DayBucket struct {
	Date      models.Date       `json:"date"`
	Reminders []models.Reminder `json:"reminders"`
}

// ByDay groups reminders by their UTC calendar date. Buckets are ordered by
// date; reminders keep their input order within a day.
func ByDay(reminders []models.Reminder) []DayBucket {
	index := map[string]int{}
	out := []DayBucket{}
	for _, r := range reminders {
		day := models.NewDate(r.Date.UTC())
		i, ok := index[day.String()]
		if !ok {
			i = len(out)
			index[day.String()] = i
			out = append(out, DayBucket{Date: day})
		}
		out[i].Reminders = append(out[i].Reminders, r)
	}
	slices.SortFunc(out, func(a, b DayBucket) int {
		return a.Date.Compare(b.Date.Time)
	})
	return out
}

// OnDay returns the reminders on day, earliest first.
func OnDay(reminders []models.Reminder, day models.Date) []models.Reminder {
	out := []models.Reminder{}
	for _, r := range reminders {
		if models.NewDate(r.Date.UTC()).Equal(day.Time) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Reminder) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// BetweenDays keeps reminders whose UTC date lies in [start, end).
func BetweenDays(reminders []models.Reminder, start, end models.Date) []models.Reminder {
	out := []models.Reminder{}
	for _, r := range reminders {
		day := models.NewDate(r.Date.UTC())
		if !day.Before(start) && day.Before(end) {
			out = append(out, r)
		}
	}
	return out
}

// CompletedLast orders incomplete reminders before completed ones, each
// partition by reminder date ascending.
func CompletedLast(reminders []models.Reminder) []models.Reminder {
	out := slices.Clone(reminders)
	slices.SortStableFunc(out, compareCompletedLast)
	return out
}

func compareCompletedLast(a, b models.Reminder) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	return a.Date.Compare(b.Date)
}
