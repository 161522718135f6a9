package models

import "fmt"

// RecurrenceType names a repeat rule.
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceCustom  RecurrenceType = "custom"
)

// DefaultHorizonMonths bounds recurrence expansion when a rule carries no
// explicit end date.
const DefaultHorizonMonths = 12

// Recurrence describes how an event repeats.
type Recurrence struct {
	Type RecurrenceType `json:"type"`
	// Interval is the step between occurrences in rule units (days,
	// weeks or months). Values below 1 are rejected at the API boundary.
	Interval int `json:"interval,omitempty"`
	// EndDate bounds expansion inclusively; when nil the horizon is
	// DefaultHorizonMonths after the base date.
	EndDate *Date `json:"endDate,omitempty"`
	// DaysOfWeek lists accepted weekdays for the custom rule, Sunday = 0.
	DaysOfWeek []int `json:"daysOfWeek,omitempty"`
}

// IsRecurring reports whether the rule produces more than the base occurrence.
func (r *Recurrence) IsRecurring() bool {
	return r != nil && r.Type != "" && r.Type != RecurrenceNone
}

// EffectiveEnd resolves the inclusive expansion horizon for a rule anchored
// at base. horizonMonths <= 0 falls back to DefaultHorizonMonths.
func (r *Recurrence) EffectiveEnd(base Date, horizonMonths int) Date {
	if r != nil && r.EndDate != nil && !r.EndDate.IsZero() {
		return *r.EndDate
	}
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}
	return base.AddMonths(horizonMonths)
}

// Event is a user-authored calendar entry, the unit the repository stores.
// Time and EndTime are display strings ("14:00" or "02:00 PM"); ordering
// within a day is derived from them, see the query service.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Date        Date        `json:"date"`
	Time        string      `json:"time"`
	EndTime     string      `json:"endTime,omitempty"`
	Color       string      `json:"color"`
	Category    string      `json:"category,omitempty"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`
}

// Occurrence is one concrete calendar-day instance of an event. Occurrences
// are derived per query and never persisted.
type Occurrence struct {
	ID          string `json:"id"`
	EventID     string `json:"eventId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        Date   `json:"date"`
	Time        string `json:"time"`
	EndTime     string `json:"endTime,omitempty"`
	Color       string `json:"color"`
	Category    string `json:"category,omitempty"`
}

// OccurrenceOn materializes the event as an occurrence on the given date.
// The id is `{eventID}-{epochMillis}` so every instance of a recurring
// event stays unique while remaining traceable to its base event.
func (e Event) OccurrenceOn(d Date) Occurrence {
	return Occurrence{
		ID:          fmt.Sprintf("%s-%d", e.ID, d.EpochMillis()),
		EventID:     e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        d,
		Time:        e.Time,
		EndTime:     e.EndTime,
		Color:       e.Color,
		Category:    e.Category,
	}
}

// EventColors is the palette offered by the event dialog. The core treats
// color values as opaque tags.
var EventColors = []string{
	"bg-red-500", "bg-blue-500", "bg-green-500", "bg-yellow-500", "bg-purple-500",
	"bg-pink-500", "bg-indigo-500", "bg-teal-500", "bg-orange-500", "bg-lime-500",
}
