package dto

import (
	"github.com/eventflow-app/eventflow-api/internal/models"
)

// RecurrenceRequest mirrors the recurrence rule on event payloads.
// Interval 0 means unset and takes the documented default of 1; negative
// intervals are rejected by the recurrence engine, not here, so the error
// surfaces with its own code.
type RecurrenceRequest struct {
	Type       string       `json:"type" validate:"omitempty,oneof=none daily weekly monthly custom"`
	Interval   int          `json:"interval"`
	EndDate    *models.Date `json:"endDate"`
	DaysOfWeek []int        `json:"daysOfWeek" validate:"omitempty,dive,gte=0,lte=6"`
}

// CreateEventRequest describes the create payload. ID is optional; the
// server assigns one when absent.
type CreateEventRequest struct {
	ID          string             `json:"id"`
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	Date        models.Date        `json:"date" validate:"required"`
	Time        string             `json:"time" validate:"required"`
	EndTime     string             `json:"endTime"`
	Color       string             `json:"color"`
	Category    string             `json:"category"`
	Recurrence  *RecurrenceRequest `json:"recurrence"`
}

// UpdateEventRequest describes the update payload; the id comes from the path.
type UpdateEventRequest struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	Date        models.Date        `json:"date" validate:"required"`
	Time        string             `json:"time" validate:"required"`
	EndTime     string             `json:"endTime"`
	Color       string             `json:"color"`
	Category    string             `json:"category"`
	Recurrence  *RecurrenceRequest `json:"recurrence"`
}

// FilterRequest replaces the active search term and category. Empty
// strings act as wildcards.
type FilterRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// TodayResponse is the today-view payload backing the notification badge.
type TodayResponse struct {
	Date        models.Date         `json:"date"`
	Occurrences []models.Occurrence `json:"occurrences"`
	Total       int                 `json:"total"`
	Past        int                 `json:"past"`
	Upcoming    int                 `json:"upcoming"`
}

// ToModel converts the create payload into a domain event.
func (r CreateEventRequest) ToModel() models.Event {
	return models.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		EndTime:     r.EndTime,
		Color:       r.Color,
		Category:    r.Category,
		Recurrence:  r.Recurrence.toModel(),
	}
}

// ToModel converts the update payload into a domain event without an id.
func (r UpdateEventRequest) ToModel() models.Event {
	return models.Event{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		EndTime:     r.EndTime,
		Color:       r.Color,
		Category:    r.Category,
		Recurrence:  r.Recurrence.toModel(),
	}
}

func (r *RecurrenceRequest) toModel() *models.Recurrence {
	if r == nil || r.Type == "" || r.Type == string(models.RecurrenceNone) {
		return nil
	}
	return &models.Recurrence{
		Type:       models.RecurrenceType(r.Type),
		Interval:   r.Interval,
		EndDate:    r.EndDate,
		DaysOfWeek: r.DaysOfWeek,
	}
}
