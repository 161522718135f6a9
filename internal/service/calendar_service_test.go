package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/dto"
	"github.com/eventflow-app/eventflow-api/internal/models"
	"github.com/eventflow-app/eventflow-api/internal/store"
)

func newCalendarService(t *testing.T) (*CalendarService, *store.Store) {
	t.Helper()
	st := store.New(nil)
	return NewCalendarService(st, nil, nil), st
}

func createReq(id, title string) dto.CreateEventRequest {
	return dto.CreateEventRequest{
		ID:    id,
		Title: title,
		Date:  models.NewDate(2025, 5, 15),
		Time:  "10:00",
	}
}

func TestCalendarCreateAssignsIDAndColor(t *testing.T) {
	svc, st := newCalendarService(t)

	event, err := svc.Create(context.Background(), createReq("", "Standup"))
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, models.EventColors[0], event.Color)
	assert.Equal(t, 1, st.Len())
}

func TestCalendarCreateKeepsClientID(t *testing.T) {
	svc, _ := newCalendarService(t)

	event, err := svc.Create(context.Background(), createReq("chosen", "Standup"))
	require.NoError(t, err)
	assert.Equal(t, "chosen", event.ID)
}

func TestCalendarCreateDuplicateID(t *testing.T) {
	svc, _ := newCalendarService(t)

	_, err := svc.Create(context.Background(), createReq("dup", "First"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createReq("dup", "Second"))
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE_EVENT", appErrors.FromError(err).Code)
}

func TestCalendarCreateRejectsMissingFields(t *testing.T) {
	svc, _ := newCalendarService(t)

	_, err := svc.Create(context.Background(), dto.CreateEventRequest{Title: "No date or time"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCalendarCreateRejectsNegativeInterval(t *testing.T) {
	svc, _ := newCalendarService(t)

	req := createReq("", "Broken repeat")
	req.Recurrence = &dto.RecurrenceRequest{Type: "daily", Interval: -2}
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "INVALID_RECURRENCE", appErrors.FromError(err).Code)
}

func TestCalendarUpdate(t *testing.T) {
	svc, st := newCalendarService(t)
	_, err := svc.Create(context.Background(), createReq("e1", "Before"))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "e1", dto.UpdateEventRequest{
		Title: "After",
		Date:  models.NewDate(2025, 5, 16),
		Time:  "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", updated.ID)
	assert.Equal(t, "After", updated.Title)

	stored, ok := st.Find("e1")
	require.True(t, ok)
	assert.Equal(t, "After", stored.Title)
}

func TestCalendarUpdateUnknownID(t *testing.T) {
	svc, _ := newCalendarService(t)

	_, err := svc.Update(context.Background(), "ghost", dto.UpdateEventRequest{
		Title: "Nope",
		Date:  models.NewDate(2025, 5, 16),
		Time:  "11:00",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}

func TestCalendarDeleteIsIdempotent(t *testing.T) {
	svc, st := newCalendarService(t)
	_, err := svc.Create(context.Background(), createReq("e1", "Event"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "e1"))
	require.NoError(t, svc.Delete(context.Background(), "e1"))
	assert.Zero(t, st.Len())
}

func TestCalendarSetFilter(t *testing.T) {
	svc, _ := newCalendarService(t)

	req := createReq("w1", "Team Meeting")
	req.Category = "Work"
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	req = createReq("p1", "Team Dinner")
	req.Category = "Personal"
	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)

	events, err := svc.SetFilter(context.Background(), dto.FilterRequest{Search: "team", Category: "Work"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "w1", events[0].ID)

	// Clearing the filter restores the full view.
	events, err = svc.SetFilter(context.Background(), dto.FilterRequest{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestCalendarPaletteIsACopy(t *testing.T) {
	svc, _ := newCalendarService(t)

	palette := svc.Palette()
	require.Len(t, palette, len(models.EventColors))
	palette[0] = "tampered"
	assert.NotEqual(t, "tampered", models.EventColors[0])
}

func TestSeedDemoOnlyWhenEmpty(t *testing.T) {
	svc, st := newCalendarService(t)

	require.NoError(t, svc.SeedDemo())
	assert.Equal(t, 5, st.Len())

	// A second run must not duplicate, a populated store is left alone.
	require.NoError(t, svc.SeedDemo())
	assert.Equal(t, 5, st.Len())
}
