package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/models"
)

func TestCodecRoundTrip(t *testing.T) {
	end := models.NewDate(2025, 12, 31)
	events := []models.Event{
		{
			ID:          "e1",
			Title:       "Weekly sync",
			Description: "Status round",
			Date:        models.NewDate(2025, 1, 6),
			Time:        "09:00",
			EndTime:     "09:30",
			Color:       "bg-blue-500",
			Category:    "Work",
			Recurrence: &models.Recurrence{
				Type:       models.RecurrenceWeekly,
				Interval:   1,
				EndDate:    &end,
				DaysOfWeek: []int{1},
			},
		},
		{ID: "e2", Title: "One-off", Date: models.NewDate(2025, 3, 1), Time: "02:00 PM"},
	}

	raw, err := EncodeEvents(events)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"2025-01-06"`)

	decoded, dropped, err := DecodeEvents(raw)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, decoded, 2)
	assert.Equal(t, events[0].Date, decoded[0].Date)
	require.NotNil(t, decoded[0].Recurrence)
	assert.Equal(t, models.RecurrenceWeekly, decoded[0].Recurrence.Type)
	require.NotNil(t, decoded[0].Recurrence.EndDate)
	assert.Equal(t, end, *decoded[0].Recurrence.EndDate)
	assert.Nil(t, decoded[1].Recurrence)
}

func TestEncodeEventsNilBecomesEmptyArray(t *testing.T) {
	raw, err := EncodeEvents(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestDecodeEventsCorruptSnapshot(t *testing.T) {
	_, _, err := DecodeEvents([]byte(`{"not":"an array"}`))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSnapshotCorrupt.Code, appErrors.FromError(err).Code)

	_, _, err = DecodeEvents([]byte(`garbage`))
	require.Error(t, err)
}

func TestDecodeEventsDropsMalformedRecords(t *testing.T) {
	raw := []byte(`[
		{"id":"good","title":"Kept","date":"2025-05-15","time":"10:00"},
		{"id":"","title":"No id","date":"2025-05-15"},
		{"id":"bad-date","title":"Bad date","date":"not-a-date"},
		"just a string",
		{"id":"also-good","title":"Kept too","date":"2025-06-01","time":"11:00"}
	]`)

	events, dropped, err := DecodeEvents(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	require.Len(t, events, 2)
	assert.Equal(t, "good", events[0].ID)
	assert.Equal(t, "also-good", events[1].ID)
}
