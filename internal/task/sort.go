package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownSortStrategy = errors.New("unknown sort strategy")

// SortStrategy names a display ordering for the task list.
type SortStrategy string

const (
	SortByDate     SortStrategy = "date"
	SortByPriority SortStrategy = "priority"
	SortByCategory SortStrategy = "category"
)

var SortStrategies = []SortStrategy{SortByDate, SortByPriority, SortByCategory}

func ParseSortStrategy(s string) (SortStrategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range SortStrategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortStrategy, s)
}

// Label is the selector caption, e.g. "Priority".
func (s SortStrategy) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Sort returns a stably sorted copy of tasks. Unknown strategies sort by date.
func (s SortStrategy) Sort(tasks []*Task) []*Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, s.compare)
	return out
}

func (s SortStrategy) compare(a, b *Task) int {
	switch s {
	case SortByPriority:
		return a.Priority.rank() - b.Priority.rank()
	case SortByCategory:
		return strings.Compare(a.Category, b.Category)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
