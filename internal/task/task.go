package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("task title is required")
	ErrUnknownPriority = errors.New("unknown priority")
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority in display order for form selects.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// rank orders priorities for sorting: High first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

// ParsePriority matches a priority by name, ignoring case.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

type Task struct {
	ID         int        `json:"id,omitempty"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Priority   Priority   `json:"priority"`
	Completed  bool       `json:"completed"`
	CreatedAt  time.Time  `json:"created_at"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	ReminderAt *time.Time `json:"reminder_at,omitempty"`
	Label      *string    `json:"label,omitempty"`

	listeners []Listener
}

// ValidateTitle rejects titles that are empty after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

func (t *Task) HasReminder() bool {
	return t.ReminderAt != nil
}

func (t *Task) HasLabel() bool {
	return t.Label != nil
}

// WithReminder returns a copy of t carrying a reminder time.
func (t Task) WithReminder(at time.Time) Task {
	out := t.clone()
	out.ReminderAt = &at
	return out
}

// WithLabel returns a copy of t carrying a text label.
func (t Task) WithLabel(text string) Task {
	out := t.clone()
	out.Label = &text
	return out
}

// clone copies t so the result shares no pointers or listener storage with it.
func (t Task) clone() Task {
	out := t
	out.Deadline = copyTime(t.Deadline)
	out.ReminderAt = copyTime(t.ReminderAt)
	if t.Label != nil {
		l := *t.Label
		out.Label = &l
	}
	out.listeners = slices.Clone(t.listeners)
	return out
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (t *Task) MarkComplete() error {
	t.Completed = true
	return t.Notify()
}

func (t *Task) MarkIncomplete() error {
	t.Completed = false
	return t.Notify()
}

func (t *Task) SetDeadline(at time.Time) error {
	t.Deadline = &at
	return t.Notify()
}
