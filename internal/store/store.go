package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/eventflow-app/eventflow-api/internal/models"
)

// PersistHook receives a copy of the full event set after every successful
// mutation of it. Implementations must not dispatch back into the store.
type PersistHook func(events []models.Event)

// Store holds the current State and serializes command dispatch. The
// original application had exactly one writer; behind an HTTP server that
// guarantee becomes mutex-serialized dispatch, and any query issued after
// a Dispatch returns observes its effect.
type Store struct {
	mu     sync.RWMutex
	state  State
	hook   PersistHook
	logger *zap.Logger
}

// New constructs an empty store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// OnPersist registers the hook invoked synchronously after each successful
// event mutation. Set once during wiring, before the store is shared.
func (s *Store) OnPersist(hook PersistHook) {
	s.hook = hook
}

// Dispatch applies a command. Repository errors (duplicate id, unknown id)
// surface to the caller; on success the persistence hook runs before
// Dispatch returns, so no later query can observe unpersisted-but-lost
// state ordering.
func (s *Store) Dispatch(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, cmd)
	if err != nil {
		return err
	}
	s.state = next

	s.logger.Debug("command applied",
		zap.String("command", cmd.commandName()),
		zap.Int("events", len(next.Events)),
		zap.Int("filtered", len(next.FilteredEvents)),
	)

	if cmd.mutatesEvents() && s.hook != nil {
		s.hook(copyEvents(next.Events))
	}
	return nil
}

// Events returns a copy of the full event set.
func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEvents(s.state.Events)
}

// FilteredEvents returns a copy of the current filtered view.
func (s *Store) FilteredEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEvents(s.state.FilteredEvents)
}

// Filters returns the active search term and category.
func (s *Store) Filters() (searchTerm, category string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SearchTerm, s.state.SelectedCategory
}

// Find returns the base event with the given id.
func (s *Store) Find(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.state.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.Event{}, false
}

// Len reports the number of base events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Events)
}
