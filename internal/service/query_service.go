package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/dto"
	"github.com/eventflow-app/eventflow-api/internal/models"
	"github.com/eventflow-app/eventflow-api/internal/recurrence"
)

type filteredView interface {
	FilteredEvents() []models.Event
}

// QueryService answers per-date and per-range occurrence lookups against
// the current filtered view. Occurrences are expanded fresh on every call
// and discarded with the response; only base events have a lifetime.
type QueryService struct {
	view          filteredView
	expandOpts    recurrence.Options
	normalizeTime bool
	logger        *zap.Logger
	now           func() time.Time
	observe       func(query string, duration time.Duration)
}

// QueryConfig tunes the query engine.
type QueryConfig struct {
	HorizonMonths  int
	MaxOccurrences int
	// NormalizeTime enables chronological ordering of mixed-format
	// display times. Off preserves the original client's lexical sort.
	NormalizeTime bool
}

// NewQueryService constructs the service.
func NewQueryService(view filteredView, cfg QueryConfig, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{
		view: view,
		expandOpts: recurrence.Options{
			HorizonMonths:  cfg.HorizonMonths,
			MaxOccurrences: cfg.MaxOccurrences,
		},
		normalizeTime: cfg.NormalizeTime,
		logger:        logger,
		now:           time.Now,
	}
}

// WithMetrics attaches a query-duration observer. Call during wiring.
func (s *QueryService) WithMetrics(observe func(query string, duration time.Duration)) *QueryService {
	s.observe = observe
	return s
}

// OccurrencesOnDate returns every occurrence falling on the given calendar
// day, ordered by time of day ascending with ties keeping the order their
// source events were encountered in. An empty day yields an empty slice,
// never an error.
func (s *QueryService) OccurrencesOnDate(ctx context.Context, date models.Date) []models.Occurrence {
	if s.observe != nil {
		defer func(start time.Time) { s.observe("on_date", time.Since(start)) }(time.Now())
	}

	out := make([]models.Occurrence, 0)
	for _, ev := range s.view.FilteredEvents() {
		occs, truncated := recurrence.Expand(ev, s.expandOpts)
		if truncated {
			s.logger.Warn("recurrence expansion truncated", zap.String("event_id", ev.ID))
		}
		for _, occ := range occs {
			if occ.Date.Equal(date) {
				out = append(out, occ)
			}
		}
	}
	s.sortByTime(out)
	return out
}

// OccurrencesInRange returns occurrences for every day in [from, to]
// inclusive, ordered by date then time. It backs the month-grid view with
// a single call instead of one lookup per cell.
func (s *QueryService) OccurrencesInRange(ctx context.Context, from, to models.Date) ([]models.Occurrence, error) {
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "range end must not precede range start")
	}
	if s.observe != nil {
		defer func(start time.Time) { s.observe("in_range", time.Since(start)) }(time.Now())
	}

	out := make([]models.Occurrence, 0)
	for _, ev := range s.view.FilteredEvents() {
		occs, truncated := recurrence.Expand(ev, s.expandOpts)
		if truncated {
			s.logger.Warn("recurrence expansion truncated", zap.String("event_id", ev.ID))
		}
		for _, occ := range occs {
			if !occ.Date.Before(from) && !occ.Date.After(to) {
				out = append(out, occ)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return lessTime(out[i].Time, out[j].Time, s.normalizeTime)
	})
	return out, nil
}

// Today returns the current day's occurrences with past/upcoming counts
// relative to the wall clock, backing the notification badge.
func (s *QueryService) Today(ctx context.Context) dto.TodayResponse {
	now := s.now()
	today := models.DateOf(now)
	occs := s.OccurrencesOnDate(ctx, today)

	nowMinutes := now.Hour()*60 + now.Minute()
	past := 0
	for _, occ := range occs {
		if v, ok := timeSortValue(occ.Time); ok && v < nowMinutes {
			past++
		}
	}

	return dto.TodayResponse{
		Date:        today,
		Occurrences: occs,
		Total:       len(occs),
		Past:        past,
		Upcoming:    len(occs) - past,
	}
}

func (s *QueryService) sortByTime(occs []models.Occurrence) {
	sort.SliceStable(occs, func(i, j int) bool {
		return lessTime(occs[i].Time, occs[j].Time, s.normalizeTime)
	})
}
