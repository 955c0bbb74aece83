package models

import "fmt"

// Priority is shared by reminders and todos.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps an empty value to medium and rejects anything outside the enumeration.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("priority must be one of low, medium, high")
	}
}

// Rank orders priorities high=1, medium=2, low=3.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Kind distinguishes a reminder from a calendar event.
type Kind string

const (
	KindReminder Kind = "reminder"
	KindEvent    Kind = "event"
)

// ParseKind maps an empty value to reminder.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "":
		return KindReminder, nil
	case KindReminder, KindEvent:
		return k, nil
	default:
		return "", fmt.Errorf("reminder_type must be one of reminder, event")
	}
}
