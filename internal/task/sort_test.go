package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(title, category string, p Priority, created time.Time) *Task {
	return &Task{Title: title, Category: category, Priority: p, CreatedAt: created}
}

func titles(tasks []*Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestParseSortStrategy(t *testing.T) {
	for in, want := range map[string]SortStrategy{
		"date":      SortByDate,
		"Priority":  SortByPriority,
		" CATEGORY": SortByCategory,
	} {
		got, err := ParseSortStrategy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortStrategy("alphabet")
	assert.ErrorIs(t, err, ErrUnknownSortStrategy)
}

func TestSortStrategy_Label(t *testing.T) {
	assert.Equal(t, "Date", SortByDate.Label())
	assert.Equal(t, "Priority", SortByPriority.Label())
	assert.Equal(t, "Category", SortByCategory.Label())
}

func TestSortByDate_OldestFirstAndStable(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []*Task{
		fixture("late", "x", PriorityLow, base.Add(2*time.Hour)),
		fixture("tie-a", "x", PriorityLow, base),
		fixture("tie-b", "x", PriorityLow, base),
		fixture("mid", "x", PriorityLow, base.Add(time.Hour)),
	}

	got := SortByDate.Sort(in)

	assert.Equal(t, []string{"tie-a", "tie-b", "mid", "late"}, titles(got))
}

func TestSortByPriority_HighFirstAndStable(t *testing.T) {
	now := time.Now()
	in := []*Task{
		fixture("low-1", "x", PriorityLow, now),
		fixture("med-1", "x", PriorityMedium, now),
		fixture("high-1", "x", PriorityHigh, now),
		fixture("low-2", "x", PriorityLow, now),
		fixture("high-2", "x", PriorityHigh, now),
		fixture("med-2", "x", PriorityMedium, now),
	}

	got := SortByPriority.Sort(in)

	assert.Equal(t, []string{"high-1", "high-2", "med-1", "med-2", "low-1", "low-2"}, titles(got))
}

func TestSortByCategory_LexicographicAndStable(t *testing.T) {
	now := time.Now()
	in := []*Task{
		fixture("w1", "Work", PriorityLow, now),
		fixture("s1", "Shopping", PriorityLow, now),
		fixture("w2", "Work", PriorityHigh, now),
		fixture("o1", "Other", PriorityLow, now),
		fixture("s2", "Shopping", PriorityHigh, now),
	}

	got := SortByCategory.Sort(in)

	assert.Equal(t, []string{"o1", "s1", "s2", "w1", "w2"}, titles(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	in := []*Task{
		fixture("b", "B", PriorityLow, now.Add(time.Minute)),
		fixture("a", "A", PriorityHigh, now),
	}

	for _, st := range SortStrategies {
		_ = st.Sort(in)
		assert.Equal(t, []string{"b", "a"}, titles(in), st)
	}
}

func TestSort_UnknownStrategyFallsBackToDate(t *testing.T) {
	now := time.Now()
	in := []*Task{
		fixture("newer", "x", PriorityLow, now.Add(time.Second)),
		fixture("older", "x", PriorityLow, now),
	}

	got := SortStrategy("bogus").Sort(in)

	assert.Equal(t, []string{"older", "newer"}, titles(got))
}
