package stats

import (
	"fmt"

	"github.com/umakossiooo/to-do-app/internal/task"
)

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	// CompletionRate is a percentage; nil when there are no tasks.
	CompletionRate *float64        `json:"completion_rate,omitempty"`
	Categories     []CategoryCount `json:"categories"`
}

// Compute summarizes the displayed task list. Categories keep the order in
// which they first appear in tasks.
func Compute(tasks []*task.Task) Stats {
	st := Stats{
		Total:      len(tasks),
		Categories: make([]CategoryCount, 0),
	}

	index := make(map[string]int)
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(st.Categories)
			index[t.Category] = i
			st.Categories = append(st.Categories, CategoryCount{Category: t.Category})
		}
		st.Categories[i].Count++
	}

	if st.Total > 0 {
		rate := float64(st.Completed) / float64(st.Total) * 100
		st.CompletionRate = &rate
	}

	return st
}

// RateText renders the completion rate to one decimal place, e.g. "25.0%".
func (s Stats) RateText() (string, bool) {
	if s.CompletionRate == nil {
		return "", false
	}
	return fmt.Sprintf("%.1f%%", *s.CompletionRate), true
}
