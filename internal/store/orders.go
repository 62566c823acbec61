package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"techplug_back_end/internal/models"
)

const orderIDPrefix = "ORD-"

// OrderStore owns placed orders, most recent first. Orders are never changed
// or removed once stored.
type OrderStore struct {
	orders *snapshot[models.Order]
	now    func() time.Time
	last   int64
}

type OrderStoreOption func(*OrderStore)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) OrderStoreOption {
	return func(s *OrderStore) { s.now = now }
}

func NewOrderStore(opts ...OrderStoreOption) *OrderStore {
	s := &OrderStore{orders: newSnapshot[models.Order](nil), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place validates the draft, stamps id, date and PENDING status, and stores the
// order at the head of the list.
func (s *OrderStore) Place(draft models.OrderDraft) (models.Order, error) {
	total, err := draft.Validate()
	if err != nil {
		return models.Order{}, err
	}

	var order models.Order
	err = s.orders.update(func(cur []models.Order) ([]models.Order, error) {
		now := s.now()
		order = models.Order{
			ID:            s.nextID(now),
			CustomerName:  strings.TrimSpace(draft.CustomerName),
			Email:         strings.TrimSpace(draft.Email),
			Address:       strings.TrimSpace(draft.Address),
			Items:         models.CloneItems(draft.Items),
			Total:         total,
			Status:        models.OrderStatusPending,
			Date:          now.UTC(),
			PaymentMethod: draft.PaymentMethod,
		}
		next := make([]models.Order, 0, len(cur)+1)
		next = append(next, order)
		return append(next, cur...), nil
	})
	return order.Clone(), err
}

// nextID derives the id from the wall clock in milliseconds and bumps it past
// the previous one when the clock has not advanced. Callers hold the write lock.
func (s *OrderStore) nextID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return orderIDPrefix + strconv.FormatInt(ms, 10)
}

func (s *OrderStore) Get(id string) (models.Order, error) {
	for _, o := range s.orders.load() {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return models.Order{}, fmt.Errorf("order %q: %w", id, models.ErrNotFound)
}

func (s *OrderStore) List() []models.Order {
	cur := s.orders.load()
	out := make([]models.Order, len(cur))
	for i, o := range cur {
		out[i] = o.Clone()
	}
	return out
}
