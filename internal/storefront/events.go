package storefront

import (
	"time"

	"techplug_back_end/internal/models"
)

type Topic string

const (
	TopicProducts Topic = "products"
	TopicServices Topic = "services"
	TopicCart     Topic = "cart"
	TopicOrders   Topic = "orders"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionCleared Action = "cleared"
)

// Event tells observers that one store published a new snapshot.
type Event struct {
	Topic   Topic                   `json:"topic"`
	Action  Action                  `json:"action"`
	ID      string                  `json:"id,omitempty"`
	Product *models.Product         `json:"product,omitempty"`
	Service *models.ServiceCategory `json:"service,omitempty"`
	Order   *models.Order           `json:"order,omitempty"`
	At      time.Time               `json:"at"`
}

// Observer is called synchronously after each successful mutation. It must not
// call back into mutating facade operations.
type Observer func(Event)

// Subscribe registers fn and returns a function that removes it again.
func (f *Facade) Subscribe(fn Observer) (unsubscribe func()) {
	f.obsMu.Lock()
	defer f.obsMu.Unlock()

	id := f.nextObserver
	f.nextObserver++
	f.observers[id] = fn
	return func() {
		f.obsMu.Lock()
		defer f.obsMu.Unlock()
		delete(f.observers, id)
	}
}

func (f *Facade) publish(e Event) {
	e.At = f.now().UTC()

	f.obsMu.RLock()
	observers := make([]Observer, 0, len(f.observers))
	for _, fn := range f.observers {
		observers = append(observers, fn)
	}
	f.obsMu.RUnlock()

	for _, fn := range observers {
		fn(e)
	}
}
