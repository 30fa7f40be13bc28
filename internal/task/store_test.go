package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(tasks []*Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func addNew(s *Store, title, category string, urgent bool) *Task {
	t := New(title, category, urgent)
	s.Add(&t)
	return &t
}

func TestStore_ExampleScenario(t *testing.T) {
	s := NewStore()

	milk := addNew(s, "Buy milk", "Shopping", false)
	assert.Equal(t, 1, milk.ID)
	assert.Equal(t, PriorityMedium, milk.Priority)

	bug := addNew(s, "Fix bug", "Work", true)
	assert.Equal(t, 2, bug.ID)
	assert.Equal(t, PriorityHigh, bug.Priority)

	s.SetSortStrategy(SortByPriority)
	assert.Equal(t, []int{2, 1}, ids(s.Tasks()))

	s.SetSortStrategy(SortByDate)
	assert.Equal(t, []int{1, 2}, ids(s.Tasks()))

	got, ok, err := s.MarkComplete(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.False(t, bug.Completed)

	s.Remove(2)
	assert.Equal(t, []int{1}, ids(s.Tasks()))
}

func TestStore_IDsNeverReused(t *testing.T) {
	s := NewStore()

	addNew(s, "a", "x", false)
	addNew(s, "b", "x", false)
	s.Remove(2)
	s.Remove(1)
	c := addNew(s, "c", "x", false)
	d := addNew(s, "d", "x", false)

	assert.Equal(t, 3, c.ID)
	assert.Equal(t, 4, d.ID)
	assert.Equal(t, []int{3, 4}, ids(s.InsertionOrder()))
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	s := NewStore()
	addNew(s, "a", "x", false)
	addNew(s, "b", "x", false)
	before := s.InsertionOrder()

	s.Remove(99)

	assert.Equal(t, before, s.InsertionOrder())
	assert.Equal(t, 2, s.Len())
}

func TestStore_TasksDoesNotReorderStorage(t *testing.T) {
	s := NewStore()
	addNew(s, "a", "Work", false)
	addNew(s, "b", "Home", true)
	addNew(s, "c", "Errands", false)

	s.SetSortStrategy(SortByPriority)
	assert.Equal(t, []int{2, 1, 3}, ids(s.Tasks()))
	s.SetSortStrategy(SortByCategory)
	assert.Equal(t, []int{3, 2, 1}, ids(s.Tasks()))

	assert.Equal(t, []int{1, 2, 3}, ids(s.InsertionOrder()))
}

func TestStore_DefaultStrategyIsDate(t *testing.T) {
	assert.Equal(t, SortByDate, NewStore().SortStrategy())
}

func TestStore_Get(t *testing.T) {
	s := NewStore()
	a := addNew(s, "a", "x", false)

	got, ok := s.Get(a.ID)
	assert.True(t, ok)
	assert.Same(t, a, got)

	got, ok = s.Get(42)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStore_MarkIncomplete(t *testing.T) {
	s := NewStore()
	a := addNew(s, "a", "x", false)

	_, _, err := s.MarkComplete(a.ID)
	require.NoError(t, err)
	_, ok, err := s.MarkIncomplete(a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, a.Completed)
}

func TestStore_MutateUnknownID(t *testing.T) {
	s := NewStore()

	got, ok, err := s.MarkComplete(5)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	_, ok, err = s.SetDeadline(5, time.Now())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ListenerFailurePropagates(t *testing.T) {
	s := NewStore()
	a := addNew(s, "a", "x", false)
	boom := errors.New("listener down")
	a.Attach(ListenerFunc(func(*Task) error { return boom }))

	_, ok, err := s.MarkComplete(a.ID)

	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "mark complete task 1")
}

func TestStore_SetDeadlineNotifies(t *testing.T) {
	s := NewStore()
	a := addNew(s, "a", "x", false)
	notified := 0
	a.Attach(ListenerFunc(func(*Task) error {
		notified++
		return nil
	}))
	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	got, ok, err := s.SetDeadline(a.ID, at)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, at, *got.Deadline)
	assert.Equal(t, 1, notified)
}

func TestStore_ExtendedTaskKeepsExtensions(t *testing.T) {
	s := NewStore()
	at := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	ext := New("Dentist", "Personal", false).WithReminder(at).WithLabel("health")

	s.Add(&ext)

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.True(t, got.HasReminder())
	assert.True(t, got.HasLabel())
	assert.Equal(t, "health", *got.Label)
}

func TestStore_RevisionTracksWrites(t *testing.T) {
	s := NewStore()
	start := s.Revision()

	s.Tasks()
	s.InsertionOrder()
	s.Get(1)
	s.Remove(1)
	s.SetSortStrategy(SortByDate)
	_, _, _ = s.MarkComplete(1)
	assert.Equal(t, start, s.Revision(), "reads and no-op writes")

	a := addNew(s, "a", "x", false)
	afterAdd := s.Revision()
	assert.Greater(t, afterAdd, start)

	_, _, err := s.MarkComplete(a.ID)
	require.NoError(t, err)
	assert.Greater(t, s.Revision(), afterAdd)

	before := s.Revision()
	s.SetSortStrategy(SortByCategory)
	assert.Greater(t, s.Revision(), before)

	before = s.Revision()
	s.Remove(a.ID)
	assert.Greater(t, s.Revision(), before)
}
