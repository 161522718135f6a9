// Package ics renders the event set as an iCalendar document so other
// calendar clients can subscribe to or import an EventFlow calendar.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/eventflow-app/eventflow-api/internal/models"
)

const uidDomain = "eventflow"

// Render builds an ICS payload for the given events. Events are exported
// as all-day entries (the data model has no timezone-aware instants; the
// display time travels in the description) and recurrence rules map onto
// RRULE lines bounded by the effective end date, so foreign clients expand
// exactly the instances the query engine would.
func Render(events []models.Event, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//EventFlow//Calendar//EN")

	for _, ev := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@%s", ev.ID, uidDomain))
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(ev.Title)
		if desc := describe(ev); desc != "" {
			ve.SetDescription(desc)
		}
		if ev.Category != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, ev.Category)
		}
		ve.SetAllDayStartAt(ev.Date.Time())
		ve.SetAllDayEndAt(ev.Date.AddDays(1).Time())

		if ev.Recurrence.IsRecurring() {
			rule, err := ruleFor(ev)
			if err != nil {
				return "", fmt.Errorf("event %s: %w", ev.ID, err)
			}
			ve.SetProperty(ical.ComponentPropertyRrule, rule)
		}
	}

	return cal.Serialize(), nil
}

// ruleFor translates a recurrence rule into an RRULE value string.
func ruleFor(ev models.Event) (string, error) {
	rec := ev.Recurrence
	interval := rec.Interval
	if interval < 1 {
		interval = 1
	}

	opt := rrule.ROption{
		Interval: interval,
		Until:    rec.EffectiveEnd(ev.Date, 0).Time(),
	}

	switch rec.Type {
	case models.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case models.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
	case models.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
	case models.RecurrenceCustom:
		if len(rec.DaysOfWeek) == 0 {
			opt.Freq = rrule.DAILY
			break
		}
		opt.Freq = rrule.WEEKLY
		opt.Interval = 1
		for _, wd := range rec.DaysOfWeek {
			if wd < 0 || wd > 6 {
				continue
			}
			opt.Byweekday = append(opt.Byweekday, weekdays[wd])
		}
	default:
		return "", fmt.Errorf("unsupported recurrence type %q", rec.Type)
	}

	return opt.RRuleString(), nil
}

// weekdays maps the model's Sunday=0 indexing onto rrule weekday values.
var weekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

func describe(ev models.Event) string {
	parts := make([]string, 0, 2)
	if ev.Time != "" {
		span := ev.Time
		if ev.EndTime != "" {
			span += " - " + ev.EndTime
		}
		parts = append(parts, span)
	}
	if ev.Description != "" {
		parts = append(parts, ev.Description)
	}
	return strings.Join(parts, "\n")
}
