package store

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"techplug_back_end/internal/models"
)

// CartStore owns the current basket. Lines hold copies of the product as it was
// when first added; later catalog edits do not reach them.
type CartStore struct {
	items *snapshot[models.CartItem]
}

func NewCartStore() *CartStore {
	return &CartStore{items: newSnapshot[models.CartItem](nil)}
}

// Add merges p into the cart: an existing line gains one unit and keeps its
// original fields, otherwise a new line with quantity 1 is appended.
func (s *CartStore) Add(p models.Product) (models.CartItem, error) {
	if strings.TrimSpace(p.ID) == "" {
		return models.CartItem{}, models.Invalid("id", "is required")
	}
	if p.Price.IsNegative() {
		return models.CartItem{}, models.Invalid("price", "must not be negative")
	}
	var line models.CartItem
	err := s.items.update(func(cur []models.CartItem) ([]models.CartItem, error) {
		i := indexOf(cur, byLineID(p.ID))
		if i >= 0 {
			line = cur[i].Clone()
			line.Quantity++
			return replaced(cur, i, line), nil
		}
		line = models.CartItem{Product: p.Clone(), Quantity: 1}
		return appended(cur, line), nil
	})
	return line.Clone(), err
}

// Remove drops the line for productID. ErrNotFound when there is none.
func (s *CartStore) Remove(productID string) error {
	return s.items.update(func(cur []models.CartItem) ([]models.CartItem, error) {
		i := indexOf(cur, byLineID(productID))
		if i < 0 {
			return nil, fmt.Errorf("cart line %q: %w", productID, models.ErrNotFound)
		}
		return without(cur, i), nil
	})
}

func (s *CartStore) Clear() {
	_ = s.items.update(func([]models.CartItem) ([]models.CartItem, error) {
		return nil, nil
	})
}

func (s *CartStore) Items() []models.CartItem {
	items := models.CloneItems(s.items.load())
	if items == nil {
		return []models.CartItem{}
	}
	return items
}

// Total is derived on every call and never stored.
func (s *CartStore) Total() decimal.Decimal {
	return models.CalcTotal(s.items.load())
}

// Count is the number of units across all lines.
func (s *CartStore) Count() int {
	n := 0
	for _, item := range s.items.load() {
		n += item.Quantity
	}
	return n
}

func byLineID(id string) func(models.CartItem) bool {
	return func(item models.CartItem) bool { return item.ID == id }
}
