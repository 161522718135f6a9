package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow-app/eventflow-api/internal/models"
	"github.com/eventflow-app/eventflow-api/internal/service"
	"github.com/eventflow-app/eventflow-api/internal/store"
	"github.com/eventflow-app/eventflow-api/pkg/response"
)

func newQueryRouter(t *testing.T, events ...models.Event) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(nil)
	require.NoError(t, st.Dispatch(store.LoadEvents{Events: events}))

	queries := NewQueryHandler(service.NewQueryService(st, service.QueryConfig{NormalizeTime: true}, nil))

	r := gin.New()
	r.GET("/occurrences", queries.InRange)
	r.GET("/occurrences/today", queries.Today)
	r.GET("/occurrences/:date", queries.OnDate)
	return r
}

func occurrencesFrom(t *testing.T, body []byte) []models.Occurrence {
	t.Helper()
	var envelope struct {
		Data []models.Occurrence `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data
}

func TestQueryHandlerOnDate(t *testing.T) {
	r := newQueryRouter(t,
		models.Event{ID: "later", Title: "Call", Date: models.NewDate(2025, 5, 27), Time: "04:30 PM"},
		models.Event{ID: "first", Title: "Standup", Date: models.NewDate(2025, 5, 27), Time: "09:00"},
		models.Event{ID: "other-day", Title: "Elsewhere", Date: models.NewDate(2025, 5, 28), Time: "09:00"},
	)

	w := doJSON(t, r, http.MethodGet, "/occurrences/2025-05-27", nil)
	require.Equal(t, http.StatusOK, w.Code)

	occs := occurrencesFrom(t, w.Body.Bytes())
	require.Len(t, occs, 2)
	assert.Equal(t, "first", occs[0].EventID)
	assert.Equal(t, "later", occs[1].EventID)
}

func TestQueryHandlerOnDateExpandsRecurrence(t *testing.T) {
	r := newQueryRouter(t, models.Event{
		ID:    "weekly",
		Title: "Sync",
		Date:  models.NewDate(2025, 1, 6),
		Time:  "10:00",
		Recurrence: &models.Recurrence{
			Type:     models.RecurrenceWeekly,
			Interval: 1,
		},
	})

	w := doJSON(t, r, http.MethodGet, "/occurrences/2025-02-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	occs := occurrencesFrom(t, w.Body.Bytes())
	require.Len(t, occs, 1)
	assert.Equal(t, "weekly", occs[0].EventID)
}

func TestQueryHandlerOnDateInvalidDate(t *testing.T) {
	r := newQueryRouter(t)

	w := doJSON(t, r, http.MethodGet, "/occurrences/May-27", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "YYYY-MM-DD")
}

func TestQueryHandlerInRange(t *testing.T) {
	r := newQueryRouter(t,
		models.Event{ID: "a", Title: "A", Date: models.NewDate(2025, 5, 1), Time: "09:00"},
		models.Event{ID: "b", Title: "B", Date: models.NewDate(2025, 5, 2), Time: "09:00"},
		models.Event{ID: "out", Title: "Out", Date: models.NewDate(2025, 5, 20), Time: "09:00"},
	)

	w := doJSON(t, r, http.MethodGet, "/occurrences?from=2025-05-01&to=2025-05-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, occurrencesFrom(t, w.Body.Bytes()), 2)
}

func TestQueryHandlerInRangeValidation(t *testing.T) {
	r := newQueryRouter(t)

	w := doJSON(t, r, http.MethodGet, "/occurrences?from=2025-05-03&to=2025-05-01", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/occurrences?from=2025-05-01", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryHandlerToday(t *testing.T) {
	r := newQueryRouter(t)

	w := doJSON(t, r, http.MethodGet, "/occurrences/today", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Date        models.Date         `json:"date"`
			Occurrences []models.Occurrence `json:"occurrences"`
			Total       int                 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Date.IsZero())
	assert.Zero(t, envelope.Data.Total)
}
