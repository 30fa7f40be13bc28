package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StandardIsMedium(t *testing.T) {
	task := New("Buy milk", "Shopping", false)

	assert.Zero(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "Shopping", task.Category)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Nil(t, task.Deadline)
	assert.False(t, task.HasReminder())
	assert.False(t, task.HasLabel())
}

func TestNew_UrgentIsHigh(t *testing.T) {
	task := New("Fix bug", "Work", true)

	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, KindUrgent, KindFor(true))
	assert.Equal(t, KindStandard, KindFor(false))
	assert.Equal(t, "urgent", KindUrgent.String())
	assert.Equal(t, "standard", KindStandard.String())
}

func TestExplicitPriorityOverridesFactoryDefault(t *testing.T) {
	task := New("Fix bug", "Work", true)
	task.Priority = PriorityLow

	assert.Equal(t, PriorityLow, task.Priority)
}

func TestParsePriority(t *testing.T) {
	for _, in := range []string{"high", "HIGH", " High "} {
		p, err := ParsePriority(in)
		require.NoError(t, err)
		assert.Equal(t, PriorityHigh, p)
	}

	_, err := ParsePriority("urgent")
	assert.True(t, errors.Is(err, ErrUnknownPriority))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Buy milk"))
	assert.ErrorIs(t, ValidateTitle(""), ErrEmptyTitle)
	assert.ErrorIs(t, ValidateTitle("   "), ErrEmptyTitle)
}

func TestWithReminderAndLabel_EitherOrder(t *testing.T) {
	base := New("Call mom", "Personal", false)
	base.ID = 7
	base.Completed = true
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	base.Deadline = &deadline
	at := time.Date(2026, 2, 28, 9, 30, 0, 0, time.UTC)

	a := base.WithReminder(at).WithLabel("family")
	b := base.WithLabel("family").WithReminder(at)

	for _, got := range []Task{a, b} {
		require.True(t, got.HasReminder())
		require.True(t, got.HasLabel())
		assert.Equal(t, at, *got.ReminderAt)
		assert.Equal(t, "family", *got.Label)

		assert.Equal(t, base.ID, got.ID)
		assert.Equal(t, base.Title, got.Title)
		assert.Equal(t, base.Category, got.Category)
		assert.Equal(t, base.Priority, got.Priority)
		assert.Equal(t, base.Completed, got.Completed)
		assert.Equal(t, base.CreatedAt, got.CreatedAt)
		assert.Equal(t, *base.Deadline, *got.Deadline)
	}

	// the input value is left untouched
	assert.False(t, base.HasReminder())
	assert.False(t, base.HasLabel())
}

func TestWithLabel_DoesNotAliasDeadline(t *testing.T) {
	base := New("x", "y", false)
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	base.Deadline = &d

	ext := base.WithLabel("l")
	*ext.Deadline = d.Add(time.Hour)

	assert.Equal(t, d, *base.Deadline)
}

func TestMarkCompleteAndIncomplete(t *testing.T) {
	task := New("x", "y", false)

	require.NoError(t, task.MarkComplete())
	assert.True(t, task.Completed)

	require.NoError(t, task.MarkIncomplete())
	assert.False(t, task.Completed)
}

func TestSetDeadline(t *testing.T) {
	task := New("x", "y", false)
	at := time.Date(2026, 5, 1, 17, 0, 0, 0, time.UTC)

	require.NoError(t, task.SetDeadline(at))
	require.NotNil(t, task.Deadline)
	assert.Equal(t, at, *task.Deadline)
}
