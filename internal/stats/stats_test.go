package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umakossiooo/to-do-app/internal/task"
)

func newTasks(categories ...string) []*task.Task {
	out := make([]*task.Task, 0, len(categories))
	for _, c := range categories {
		t := task.New("t", c, false)
		out = append(out, &t)
	}
	return out
}

func TestCompute_NoTasksHasNoRate(t *testing.T) {
	st := Compute(nil)

	assert.Equal(t, 0, st.Total)
	assert.Equal(t, 0, st.Completed)
	assert.Nil(t, st.CompletionRate)
	assert.Empty(t, st.Categories)

	_, ok := st.RateText()
	assert.False(t, ok)
}

func TestCompute_OneOfFourCompleted(t *testing.T) {
	tasks := newTasks("Work", "Work", "Shopping", "Personal")
	tasks[2].Completed = true

	st := Compute(tasks)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 1, st.Completed)
	require.NotNil(t, st.CompletionRate)
	assert.InDelta(t, 25.0, *st.CompletionRate, 1e-9)

	text, ok := st.RateText()
	assert.True(t, ok)
	assert.Equal(t, "25.0%", text)
}

func TestCompute_RateRoundsToOneDecimal(t *testing.T) {
	tasks := newTasks("a", "a", "a")
	tasks[0].Completed = true

	text, ok := Compute(tasks).RateText()
	assert.True(t, ok)
	assert.Equal(t, "33.3%", text)
}

func TestCompute_CategoriesInFirstSeenOrder(t *testing.T) {
	tasks := newTasks("Work", "Shopping", "Work", "Other", "Shopping", "Work")

	st := Compute(tasks)

	assert.Equal(t, []CategoryCount{
		{Category: "Work", Count: 3},
		{Category: "Shopping", Count: 2},
		{Category: "Other", Count: 1},
	}, st.Categories)
}
