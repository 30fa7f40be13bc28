package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest_Build(t *testing.T) {
	at := time.Date(2026, 4, 2, 18, 45, 0, 0, time.UTC)

	got, err := CreateRequest{
		Title:      "  Pay rent ",
		Category:   "Personal",
		Urgent:     true,
		ReminderAt: &at,
		Label:      "bills",
	}.Build()

	require.NoError(t, err)
	assert.Equal(t, "Pay rent", got.Title)
	assert.Equal(t, "Personal", got.Category)
	assert.Equal(t, PriorityHigh, got.Priority)
	require.True(t, got.HasReminder())
	assert.Equal(t, at, *got.ReminderAt)
	require.True(t, got.HasLabel())
	assert.Equal(t, "bills", *got.Label)
	assert.Zero(t, got.ID)
}

func TestCreateRequest_ExplicitPriorityWins(t *testing.T) {
	got, err := CreateRequest{Title: "x", Urgent: true, Priority: "low"}.Build()

	require.NoError(t, err)
	assert.Equal(t, PriorityLow, got.Priority)
}

func TestCreateRequest_BlankLabelIsNotAttached(t *testing.T) {
	got, err := CreateRequest{Title: "x", Label: "   "}.Build()

	require.NoError(t, err)
	assert.False(t, got.HasLabel())
	assert.False(t, got.HasReminder())
	assert.Equal(t, PriorityMedium, got.Priority)
}

func TestCreateRequest_Errors(t *testing.T) {
	_, err := CreateRequest{Title: " "}.Build()
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = CreateRequest{Title: "x", Priority: "critical"}.Build()
	assert.ErrorIs(t, err, ErrUnknownPriority)
}
