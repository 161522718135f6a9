package service

import (
	"go.uber.org/zap"

	"github.com/eventflow-app/eventflow-api/internal/models"
	"github.com/eventflow-app/eventflow-api/internal/store"
)

func demoEvents() []models.Event {
	return []models.Event{
		{ID: "1", Title: "Project Deadline", Description: "Complete final report", Date: models.NewDate(2025, 5, 15), Time: "10:00 AM", Color: "bg-blue-500"},
		{ID: "2", Title: "Team Meeting", Description: "Discuss Q2 goals", Date: models.NewDate(2025, 5, 20), Time: "02:00 PM", Color: "bg-green-500"},
		{ID: "3", Title: "Client Call", Description: "Review progress with client", Date: models.NewDate(2025, 5, 27), Time: "04:30 PM", Color: "bg-red-500"},
		{ID: "4", Title: "Birthday Party", Description: "Celebrate John's birthday", Date: models.NewDate(2025, 5, 27), Time: "07:00 PM", Color: "bg-purple-500"},
		{ID: "5", Title: "Dentist Appointment", Description: "Annual check-up", Date: models.NewDate(2025, 6, 5), Time: "09:00 AM", Color: "bg-orange-500"},
	}
}

// SeedDemo populates a handful of sample events when the store is empty.
// It is a no-op once any event exists, so restored snapshots are never
// mixed with demo data.
func (s *CalendarService) SeedDemo() error {
	if s.store.Len() > 0 {
		return nil
	}
	for _, event := range demoEvents() {
		if err := s.store.Dispatch(store.AddEvent{Event: event}); err != nil {
			return err
		}
	}
	s.logger.Info("seeded demo events", zap.Int("count", len(demoEvents())))
	return nil
}
