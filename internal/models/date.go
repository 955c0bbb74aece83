package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// MonthLayout is the format of month keys such as budget_month.
const MonthLayout = "2006-01"

// Date is a calendar date without time of day, held at UTC midnight.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp (date part kept).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t), nil
	}
	return Date{}, fmt.Errorf("value %q is not a date (YYYY-MM-DD)", s)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// Before reports whether d is an earlier calendar date than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// MonthKey returns the YYYY-MM key d falls in.
func (d Date) MonthKey() string {
	return d.Time.Format(MonthLayout)
}

// MarshalJSON renders d as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts anything ParseDate does.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseMonth validates a YYYY-MM key and returns the half-open range [start, end).
func ParseMonth(s string) (start, end Date, err error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("month %q must be formatted as YYYY-MM", s)
	}
	return Date{Time: t}, Date{Time: t.AddDate(0, 1, 0)}, nil
}
