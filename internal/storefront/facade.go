// Package storefront is the single entry point the presentation layer talks to.
// It owns one instance of every store and republishes each change to observers.
package storefront

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"techplug_back_end/internal/models"
	"techplug_back_end/internal/store"
)

type Options struct {
	// StrictNotFound makes update/delete of an absent id return ErrNotFound
	// instead of silently doing nothing.
	StrictNotFound bool

	Products []models.Product
	Services []models.ServiceCategory
	Tickets  []models.ServiceRequest

	Clock  func() time.Time
	Logger *zap.Logger
}

type Facade struct {
	catalog  *store.CatalogStore
	services *store.ServiceCatalogStore
	cart     *store.CartStore
	orders   *store.OrderStore
	tickets  *store.TicketStore

	// cartMu serializes cart mutations with order placement, so reading the
	// cart, storing the order and clearing the cart are one step. Cart and
	// order events are published under it and arrive in mutation order.
	cartMu sync.Mutex

	strict bool
	now    func() time.Time
	logger *zap.Logger

	obsMu        sync.RWMutex
	observers    map[uint64]Observer
	nextObserver uint64
}

func New(opts Options) (*Facade, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	catalog, err := store.NewCatalogStore(opts.Products...)
	if err != nil {
		return nil, err
	}
	services, err := store.NewServiceCatalogStore(opts.Services...)
	if err != nil {
		return nil, err
	}

	return &Facade{
		catalog:   catalog,
		services:  services,
		cart:      store.NewCartStore(),
		orders:    store.NewOrderStore(store.WithClock(opts.Clock)),
		tickets:   store.NewTicketStore(opts.Tickets...),
		strict:    opts.StrictNotFound,
		now:       opts.Clock,
		logger:    opts.Logger,
		observers: make(map[uint64]Observer),
	}, nil
}

// missing applies the not-found policy to an update/delete error.
func (f *Facade) missing(err error) error {
	if err == nil || f.strict || !errors.Is(err, models.ErrNotFound) {
		return err
	}
	f.logger.Debug("ignoring operation on absent id", zap.Error(err))
	return nil
}

// --- Catalog ---

func (f *Facade) ListProducts() []models.Product {
	return f.catalog.List()
}

func (f *Facade) Product(id string) (models.Product, error) {
	return f.catalog.Get(id)
}

func (f *Facade) AddProduct(p models.Product) error {
	if err := f.catalog.Add(p); err != nil {
		return err
	}
	stored := p.Clone()
	f.publish(Event{Topic: TopicProducts, Action: ActionCreated, ID: p.ID, Product: &stored})
	return nil
}

func (f *Facade) UpdateProduct(id string, patch models.ProductPatch) error {
	updated, err := f.catalog.Update(id, patch)
	if err != nil {
		return f.missing(err)
	}
	f.publish(Event{Topic: TopicProducts, Action: ActionUpdated, ID: id, Product: &updated})
	return nil
}

func (f *Facade) DeleteProduct(id string) error {
	if err := f.catalog.Delete(id); err != nil {
		return f.missing(err)
	}
	f.publish(Event{Topic: TopicProducts, Action: ActionDeleted, ID: id})
	return nil
}

// --- Service catalog ---

func (f *Facade) ListServiceCategories() []models.ServiceCategory {
	return f.services.List()
}

func (f *Facade) ServiceCategory(id string) (models.ServiceCategory, error) {
	return f.services.Get(id)
}

func (f *Facade) AddServiceCategory(c models.ServiceCategory) error {
	if err := f.services.AddCategory(c); err != nil {
		return err
	}
	stored, _ := f.services.Get(c.ID)
	f.publish(Event{Topic: TopicServices, Action: ActionCreated, ID: c.ID, Service: &stored})
	return nil
}

func (f *Facade) UpdateServiceCategory(id string, patch models.CategoryPatch) error {
	updated, err := f.services.UpdateCategory(id, patch)
	if err != nil {
		return f.missing(err)
	}
	f.publish(Event{Topic: TopicServices, Action: ActionUpdated, ID: id, Service: &updated})
	return nil
}

func (f *Facade) DeleteServiceCategory(id string) error {
	if err := f.services.DeleteCategory(id); err != nil {
		return f.missing(err)
	}
	f.publish(Event{Topic: TopicServices, Action: ActionDeleted, ID: id})
	return nil
}

// --- Cart ---

func (f *Facade) CartContents() []models.CartItem {
	return f.cart.Items()
}

// AddToCart takes a product snapshot, not a catalog reference.
func (f *Facade) AddToCart(p models.Product) error {
	f.cartMu.Lock()
	defer f.cartMu.Unlock()
	line, err := f.cart.Add(p)
	if err != nil {
		return err
	}
	action := ActionUpdated
	if line.Quantity == 1 {
		action = ActionCreated
	}
	f.publish(Event{Topic: TopicCart, Action: action, ID: p.ID})
	return nil
}

func (f *Facade) RemoveFromCart(productID string) error {
	f.cartMu.Lock()
	defer f.cartMu.Unlock()
	if err := f.cart.Remove(productID); err != nil {
		return f.missing(err)
	}
	f.publish(Event{Topic: TopicCart, Action: ActionDeleted, ID: productID})
	return nil
}

func (f *Facade) CartTotal() decimal.Decimal {
	return f.cart.Total()
}

func (f *Facade) CartCount() int {
	return f.cart.Count()
}

// --- Orders ---

// PlaceOrder stores a new PENDING order and then empties the cart.
func (f *Facade) PlaceOrder(draft models.OrderDraft) (models.Order, error) {
	f.cartMu.Lock()
	defer f.cartMu.Unlock()
	return f.placeLocked(draft)
}

// Checkout places an order for the current cart contents.
func (f *Facade) Checkout(shipping models.ShippingDetails) (models.Order, error) {
	f.cartMu.Lock()
	defer f.cartMu.Unlock()
	items := f.cart.Items()
	if len(items) == 0 {
		return models.Order{}, fmt.Errorf("checkout: %w", models.Invalid("cart", "is empty"))
	}
	method := shipping.PaymentMethod
	if method == "" {
		method = models.PaymentStripe
	}
	return f.placeLocked(models.OrderDraft{
		CustomerName:  shipping.Name,
		Email:         shipping.Email,
		Address:       shipping.FullAddress(),
		Items:         items,
		Total:         models.CalcTotal(items),
		PaymentMethod: method,
	})
}

// placeLocked stores the order, clears the cart and publishes both events.
// Callers hold cartMu.
func (f *Facade) placeLocked(draft models.OrderDraft) (models.Order, error) {
	order, err := f.orders.Place(draft)
	if err != nil {
		return models.Order{}, err
	}
	f.cart.Clear()

	f.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("total", order.Total.String()),
		zap.Int("lines", len(order.Items)))

	published := order.Clone()
	f.publish(Event{Topic: TopicOrders, Action: ActionCreated, ID: order.ID, Order: &published})
	f.publish(Event{Topic: TopicCart, Action: ActionCleared})
	return order, nil
}

// ListOrders returns orders most recent first.
func (f *Facade) ListOrders() []models.Order {
	return f.orders.List()
}

func (f *Facade) Order(id string) (models.Order, error) {
	return f.orders.Get(id)
}

// --- Tickets ---

func (f *Facade) ListTickets() []models.ServiceRequest {
	return f.tickets.List()
}

func (f *Facade) Ticket(id string) (models.ServiceRequest, error) {
	return f.tickets.Get(id)
}
