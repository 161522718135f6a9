package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/dto"
	"github.com/eventflow-app/eventflow-api/internal/models"
	"github.com/eventflow-app/eventflow-api/internal/recurrence"
	"github.com/eventflow-app/eventflow-api/internal/store"
)

type eventStore interface {
	Dispatch(cmd store.Command) error
	Events() []models.Event
	FilteredEvents() []models.Event
	Filters() (searchTerm, category string)
	Find(id string) (models.Event, bool)
	Len() int
}

// CalendarService owns event mutations and the filter inputs. Every write
// is validated here, then applied through the store's command dispatch.
type CalendarService struct {
	store     eventStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(st eventStore, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{store: st, validator: validate, logger: logger}
}

// List returns the current filtered view of base events.
func (s *CalendarService) List(ctx context.Context) []models.Event {
	return s.store.FilteredEvents()
}

// Get returns a base event by id.
func (s *CalendarService) Get(ctx context.Context, id string) (*models.Event, error) {
	ev, ok := s.store.Find(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return &ev, nil
}

// Create registers a new event. The server assigns a uuid when the client
// sends no id; a client-chosen id that already exists fails with a
// conflict the caller can surface.
func (s *CalendarService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	event := req.ToModel()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Color == "" {
		event.Color = models.EventColors[0]
	}
	if err := recurrence.Validate(event.Recurrence); err != nil {
		return nil, err
	}

	if err := s.store.Dispatch(store.AddEvent{Event: event}); err != nil {
		return nil, err
	}
	s.logger.Info("event created", zap.String("id", event.ID), zap.String("date", event.Date.String()))
	return &event, nil
}

// Update replaces an existing event wholesale, keeping its identity.
func (s *CalendarService) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	event := req.ToModel()
	event.ID = id
	if err := recurrence.Validate(event.Recurrence); err != nil {
		return nil, err
	}

	if err := s.store.Dispatch(store.UpdateEvent{Event: event}); err != nil {
		return nil, err
	}
	s.logger.Info("event updated", zap.String("id", id))
	return &event, nil
}

// Delete removes an event. Deleting an unknown id succeeds silently;
// callers that need confirmation check existence first.
func (s *CalendarService) Delete(ctx context.Context, id string) error {
	if err := s.store.Dispatch(store.RemoveEvent{ID: id}); err != nil {
		return err
	}
	s.logger.Info("event deleted", zap.String("id", id))
	return nil
}

// SetFilter replaces both filter inputs and returns the resulting view.
func (s *CalendarService) SetFilter(ctx context.Context, req dto.FilterRequest) ([]models.Event, error) {
	if err := s.store.Dispatch(store.SetSearch{Term: req.Search}); err != nil {
		return nil, err
	}
	if err := s.store.Dispatch(store.SetCategory{Category: req.Category}); err != nil {
		return nil, err
	}
	return s.store.FilteredEvents(), nil
}

// Palette returns the color tags the event dialog offers.
func (s *CalendarService) Palette() []string {
	out := make([]string, len(models.EventColors))
	copy(out, models.EventColors)
	return out
}
