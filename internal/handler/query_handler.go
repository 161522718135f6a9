package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventflow-app/eventflow-api/internal/models"
	"github.com/eventflow-app/eventflow-api/internal/service"
	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"
	"github.com/eventflow-app/eventflow-api/pkg/response"
)

// QueryHandler exposes occurrence lookup endpoints.
type QueryHandler struct {
	queries *service.QueryService
}

// NewQueryHandler constructs handler.
func NewQueryHandler(queries *service.QueryService) *QueryHandler {
	return &QueryHandler{queries: queries}
}

func parseDateParam(raw string) (models.Date, error) {
	date, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}
	return date, nil
}

// OnDate godoc
// @Summary Occurrences on a date
// @Description Expands recurring events and returns occurrences for the given day, sorted by time
// @Tags Occurrences
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /occurrences/{date} [get]
func (h *QueryHandler) OnDate(c *gin.Context) {
	date, err := parseDateParam(c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	occurrences := h.queries.OccurrencesOnDate(c.Request.Context(), date)
	response.JSON(c, http.StatusOK, occurrences, nil)
}

// InRange godoc
// @Summary Occurrences within a range
// @Tags Occurrences
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /occurrences [get]
func (h *QueryHandler) InRange(c *gin.Context) {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	occurrences, err := h.queries.OccurrencesInRange(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, occurrences, nil)
}

// Today godoc
// @Summary Today's schedule
// @Description Returns today's occurrences with past and upcoming counts
// @Tags Occurrences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /occurrences/today [get]
func (h *QueryHandler) Today(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.queries.Today(c.Request.Context()), nil)
}
