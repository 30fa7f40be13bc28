package task

import (
	"strings"
	"time"
)

// CreateRequest is the user input for a new task, shared by the form and
// the JSON API.
type CreateRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Urgent   bool   `json:"urgent"`
	// Priority, when set, replaces the default chosen by the urgent flag.
	Priority   string     `json:"priority,omitempty"`
	ReminderAt *time.Time `json:"reminder_at,omitempty"`
	Label      string     `json:"label,omitempty"`
}

// Build validates the request and returns the unsaved task.
func (in CreateRequest) Build() (Task, error) {
	if err := ValidateTitle(in.Title); err != nil {
		return Task{}, err
	}

	t := New(strings.TrimSpace(in.Title), strings.TrimSpace(in.Category), in.Urgent)

	if strings.TrimSpace(in.Priority) != "" {
		p, err := ParsePriority(in.Priority)
		if err != nil {
			return Task{}, err
		}
		t.Priority = p
	}

	if in.ReminderAt != nil {
		t = t.WithReminder(*in.ReminderAt)
	}
	if label := strings.TrimSpace(in.Label); label != "" {
		t = t.WithLabel(label)
	}
	return t, nil
}
