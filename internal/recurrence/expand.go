// Package recurrence materializes concrete occurrences from an event's
// repeat rule. Expansion is finite: every rule is bounded by an explicit
// end date or the default 12-month horizon, and a per-event cap guards
// against pathological snapshots.
package recurrence

import (
	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/models"
)

const defaultMaxOccurrences = 1000

// Options tunes expansion behaviour.
type Options struct {
	// HorizonMonths bounds rules without an end date. Zero means the
	// model default of 12 months.
	HorizonMonths int
	// MaxOccurrences caps output per event. Zero means 1000.
	MaxOccurrences int
}

// Validate rejects rules the expander cannot honor. Creation and update
// paths call this so invalid intervals never enter the repository; the
// expander itself coerces rather than fails, see Expand. An interval of
// zero means "unset" and takes the documented default of 1; negative
// intervals are rejected.
func Validate(r *models.Recurrence) error {
	if !r.IsRecurring() {
		return nil
	}
	switch r.Type {
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly, models.RecurrenceCustom:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown recurrence type "+string(r.Type))
	}
	if r.Interval < 0 {
		return appErrors.ErrInvalidRecurrence
	}
	for _, wd := range r.DaysOfWeek {
		if wd < 0 || wd > 6 {
			return appErrors.Clone(appErrors.ErrValidation, "daysOfWeek entries must be between 0 (Sunday) and 6 (Saturday)")
		}
	}
	return nil
}

// Expand returns every occurrence of the event from its base date through
// the effective end date, inclusive. The base event is always the first
// occurrence, even when its own weekday is outside a custom rule's
// DaysOfWeek. The second return value reports cap truncation.
//
// Intervals below 1 are coerced to 1 here as a loop guard: validation
// rejects them on the write path, but snapshots written before that
// validation existed must still load without hanging expansion.
func Expand(event models.Event, opts Options) ([]models.Occurrence, bool) {
	if !event.Recurrence.IsRecurring() {
		return []models.Occurrence{event.OccurrenceOn(event.Date)}, false
	}

	rule := event.Recurrence
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}
	maxOut := opts.MaxOccurrences
	if maxOut <= 0 {
		maxOut = defaultMaxOccurrences
	}

	end := rule.EffectiveEnd(event.Date, opts.HorizonMonths)
	out := []models.Occurrence{event.OccurrenceOn(event.Date)}

	cursor := event.Date
	for {
		switch rule.Type {
		case models.RecurrenceDaily:
			cursor = cursor.AddDays(interval)
		case models.RecurrenceWeekly:
			cursor = cursor.AddDays(7 * interval)
		case models.RecurrenceMonthly:
			cursor = cursor.AddMonths(interval)
		case models.RecurrenceCustom:
			if len(rule.DaysOfWeek) > 0 {
				cursor = cursor.AddDays(1)
				for !weekdayIn(cursor, rule.DaysOfWeek) && !cursor.After(end) {
					cursor = cursor.AddDays(1)
				}
			} else {
				// Custom without weekdays behaves like daily.
				cursor = cursor.AddDays(interval)
			}
		default:
			return out, false
		}

		if cursor.After(end) {
			return out, false
		}
		out = append(out, event.OccurrenceOn(cursor))
		if len(out) >= maxOut {
			return out, true
		}
	}
}

func weekdayIn(d models.Date, daysOfWeek []int) bool {
	wd := int(d.Weekday())
	for _, candidate := range daysOfWeek {
		if candidate == wd {
			return true
		}
	}
	return false
}
