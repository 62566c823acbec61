package store

import (
	"fmt"
	"slices"

	"techplug_back_end/internal/models"
)

// TicketStore exposes service requests populated from outside the storefront.
type TicketStore struct {
	tickets *snapshot[models.ServiceRequest]
}

func NewTicketStore(initial ...models.ServiceRequest) *TicketStore {
	return &TicketStore{tickets: newSnapshot(slices.Clone(initial))}
}

func (s *TicketStore) Get(id string) (models.ServiceRequest, error) {
	for _, t := range s.tickets.load() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.ServiceRequest{}, fmt.Errorf("ticket %q: %w", id, models.ErrNotFound)
}

func (s *TicketStore) List() []models.ServiceRequest {
	out := slices.Clone(s.tickets.load())
	if out == nil {
		return []models.ServiceRequest{}
	}
	return out
}
