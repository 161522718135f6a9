// Package store owns the canonical event set and the filtered view derived
// from it. All mutation flows through explicit commands applied by a pure
// state-transition function, so the repository and the filtered view can
// never drift apart: every command that touches the event set recomputes
// the view in the same step.
package store

import (
	"fmt"
	"strings"

	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/models"
)

// State is a complete snapshot of calendar state at one point in time.
// Values are treated as immutable; Reduce returns fresh slices rather than
// mutating its input.
type State struct {
	Events           []models.Event
	FilteredEvents   []models.Event
	SearchTerm       string
	SelectedCategory string
}

// Command is one tagged mutation of calendar state.
type Command interface {
	commandName() string
	// mutatesEvents reports whether the command can change the event set,
	// which is what decides whether a snapshot must be persisted afterwards.
	mutatesEvents() bool
}

// AddEvent inserts a new event. Fails when the id is already present.
type AddEvent struct{ Event models.Event }

// UpdateEvent replaces an existing event wholesale, matched by id.
type UpdateEvent struct{ Event models.Event }

// RemoveEvent deletes the event with the given id. Removing an absent id
// is a no-op, not an error.
type RemoveEvent struct{ ID string }

// SetSearch replaces the free-text filter term.
type SetSearch struct{ Term string }

// SetCategory replaces the category filter.
type SetCategory struct{ Category string }

// LoadEvents replaces the whole event set, used when restoring a snapshot.
type LoadEvents struct{ Events []models.Event }

func (AddEvent) commandName() string    { return "add_event" }
func (UpdateEvent) commandName() string { return "update_event" }
func (RemoveEvent) commandName() string { return "remove_event" }
func (SetSearch) commandName() string   { return "set_search" }
func (SetCategory) commandName() string { return "set_category" }
func (LoadEvents) commandName() string  { return "load_events" }

func (AddEvent) mutatesEvents() bool    { return true }
func (UpdateEvent) mutatesEvents() bool { return true }
func (RemoveEvent) mutatesEvents() bool { return true }
func (SetSearch) mutatesEvents() bool   { return false }
func (SetCategory) mutatesEvents() bool { return false }
func (LoadEvents) mutatesEvents() bool  { return true }

// Reduce applies cmd to prev and returns the next state. It is a pure
// function: the same inputs always produce the same output and prev is
// never modified. On error the returned state equals prev.
func Reduce(prev State, cmd Command) (State, error) {
	switch c := cmd.(type) {
	case AddEvent:
		for _, ev := range prev.Events {
			if ev.ID == c.Event.ID {
				return prev, appErrors.ErrDuplicateEvent
			}
		}
		return prev.withEvents(append(copyEvents(prev.Events), c.Event)), nil

	case UpdateEvent:
		events := copyEvents(prev.Events)
		for i, ev := range events {
			if ev.ID == c.Event.ID {
				events[i] = c.Event
				return prev.withEvents(events), nil
			}
		}
		return prev, appErrors.Clone(appErrors.ErrNotFound, "event not found")

	case RemoveEvent:
		events := make([]models.Event, 0, len(prev.Events))
		for _, ev := range prev.Events {
			if ev.ID != c.ID {
				events = append(events, ev)
			}
		}
		return prev.withEvents(events), nil

	case SetSearch:
		next := prev
		next.SearchTerm = c.Term
		next.FilteredEvents = Filter(prev.Events, c.Term, prev.SelectedCategory)
		return next, nil

	case SetCategory:
		next := prev
		next.SelectedCategory = c.Category
		next.FilteredEvents = Filter(prev.Events, prev.SearchTerm, c.Category)
		return next, nil

	case LoadEvents:
		return prev.withEvents(copyEvents(c.Events)), nil

	default:
		return prev, fmt.Errorf("unknown command %T", cmd)
	}
}

// Filter returns the subsequence of events matching the search term and
// category. An event matches when the term is empty or is a
// case-insensitive substring of its title or description, and the category
// is empty or equals the event's category exactly. Input order is kept.
func Filter(events []models.Event, searchTerm, category string) []models.Event {
	term := strings.ToLower(searchTerm)
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(ev.Title), term) ||
			(ev.Description != "" && strings.Contains(strings.ToLower(ev.Description), term))
		matchesCategory := category == "" || ev.Category == category
		if matchesSearch && matchesCategory {
			out = append(out, ev)
		}
	}
	return out
}

func (s State) withEvents(events []models.Event) State {
	next := s
	next.Events = events
	next.FilteredEvents = Filter(events, s.SearchTerm, s.SelectedCategory)
	return next
}

func copyEvents(events []models.Event) []models.Event {
	out := make([]models.Event, len(events))
	copy(out, events)
	return out
}
