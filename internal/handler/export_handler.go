package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventflow-app/eventflow-api/internal/service"
	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"
	"github.com/eventflow-app/eventflow-api/pkg/response"
)

// ExportHandler serves calendar downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

func (h *ExportHandler) serve(c *gin.Context, filename, mimeType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, mimeType, data)
}

// ICS godoc
// @Summary Export calendar as iCalendar
// @Tags Export
// @Produce plain
// @Success 200 {string} string "iCalendar feed"
// @Router /export/calendar.ics [get]
func (h *ExportHandler) ICS(c *gin.Context) {
	data, err := h.exports.ICS(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.serve(c, "calendar.ics", "text/calendar; charset=utf-8", data)
}

// CSV godoc
// @Summary Export events as CSV
// @Tags Export
// @Produce plain
// @Success 200 {string} string "CSV export"
// @Router /export/events.csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	data, err := h.exports.CSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.serve(c, "events.csv", "text/csv; charset=utf-8", data)
}

// AgendaPDF godoc
// @Summary Export a monthly agenda as PDF
// @Tags Export
// @Produce octet-stream
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {string} string "PDF agenda"
// @Failure 400 {object} response.Envelope
// @Router /export/agenda.pdf [get]
func (h *ExportHandler) AgendaPDF(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid month, expected YYYY-MM"))
		return
	}
	data, err := h.exports.AgendaPDF(c.Request.Context(), month)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.serve(c, fmt.Sprintf("agenda-%s.pdf", month), "application/pdf", data)
}
