package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"
	"github.com/eventflow-app/eventflow-api/pkg/export"

	"github.com/eventflow-app/eventflow-api/internal/ics"
	"github.com/eventflow-app/eventflow-api/internal/models"
)

type baseEventSource interface {
	Events() []models.Event
}

type rangeQuerier interface {
	OccurrencesInRange(ctx context.Context, from, to models.Date) ([]models.Occurrence, error)
}

// ExportService renders the calendar in formats other tools consume: an
// iCalendar feed, a CSV of base events, and a printable monthly agenda.
// Exports read the full event set, not the filtered view.
type ExportService struct {
	events  baseEventSource
	queries rangeQuerier
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs the service.
func NewExportService(events baseEventSource, queries rangeQuerier, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		events:  events,
		queries: queries,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		now:     time.Now,
	}
}

// ICS renders the full event set as an iCalendar document.
func (s *ExportService) ICS(ctx context.Context) ([]byte, error) {
	payload, err := ics.Render(s.events.Events(), s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar feed")
	}
	return []byte(payload), nil
}

// CSV renders base events as a flat table.
func (s *ExportService) CSV(ctx context.Context) ([]byte, error) {
	headers := []string{"ID", "Date", "Time", "End Time", "Title", "Description", "Category", "Color", "Recurrence"}
	events := s.events.Events()
	rows := make([]map[string]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, map[string]string{
			"ID":          ev.ID,
			"Date":        ev.Date.String(),
			"Time":        ev.Time,
			"End Time":    ev.EndTime,
			"Title":       ev.Title,
			"Description": ev.Description,
			"Category":    ev.Category,
			"Color":       ev.Color,
			"Recurrence":  recurrenceLabel(ev.Recurrence),
		})
	}

	data, err := s.csv.Render(export.Table{Headers: headers, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return data, nil
}

// AgendaPDF renders the occurrences of one month, expanded and ordered the
// same way the month grid shows them. month uses the YYYY-MM form.
func (s *ExportService) AgendaPDF(ctx context.Context, month string) ([]byte, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid month, expected YYYY-MM")
	}
	from := models.DateOf(start)
	to := from.AddMonths(1).AddDays(-1)

	occs, err := s.queries.OccurrencesInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	headers := []string{"Date", "Time", "Title", "Category"}
	rows := make([]map[string]string, 0, len(occs))
	for _, occ := range occs {
		rows = append(rows, map[string]string{
			"Date":     occ.Date.String(),
			"Time":     occ.Time,
			"Title":    occ.Title,
			"Category": occ.Category,
		})
	}

	title := fmt.Sprintf("EventFlow Agenda - %s", start.Format("January 2006"))
	data, err := s.pdf.Render(export.Table{Headers: headers, Rows: rows}, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render agenda pdf")
	}
	return data, nil
}

func recurrenceLabel(r *models.Recurrence) string {
	if !r.IsRecurring() {
		return ""
	}
	label := string(r.Type)
	if r.Interval > 1 {
		label = fmt.Sprintf("%s every %d", label, r.Interval)
	}
	if r.EndDate != nil {
		label = fmt.Sprintf("%s until %s", label, r.EndDate.String())
	}
	return label
}
