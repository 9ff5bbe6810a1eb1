package services

import "github.com/dmitrijs2005/bluecup/internal/server/models"

// EventService serves the static event fixtures from configuration.
type EventService struct {
	events []models.Event
}

func NewEventService(events []models.Event) *EventService {
	return &EventService{events: append([]models.Event(nil), events...)}
}

// List returns a copy of the configured events.
func (s *EventService) List() []models.Event {
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}
