package store

import (
	"fmt"

	"techplug_back_end/internal/models"
)

// CatalogStore owns the sellable products in insertion order.
type CatalogStore struct {
	products *snapshot[models.Product]
}

func NewCatalogStore(initial ...models.Product) (*CatalogStore, error) {
	s := &CatalogStore{products: newSnapshot[models.Product](nil)}
	for _, p := range initial {
		if err := s.Add(p); err != nil {
			return nil, fmt.Errorf("seed product %q: %w", p.ID, err)
		}
	}
	return s, nil
}

func (s *CatalogStore) Add(p models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.products.update(func(cur []models.Product) ([]models.Product, error) {
		if indexOf(cur, byProductID(p.ID)) >= 0 {
			return nil, fmt.Errorf("product %q: %w", p.ID, models.ErrDuplicateID)
		}
		return appended(cur, p.Clone()), nil
	})
}

// Update applies patch to the product with the given id and returns the result.
func (s *CatalogStore) Update(id string, patch models.ProductPatch) (models.Product, error) {
	if err := patch.Validate(); err != nil {
		return models.Product{}, err
	}
	var updated models.Product
	err := s.products.update(func(cur []models.Product) ([]models.Product, error) {
		i := indexOf(cur, byProductID(id))
		if i < 0 {
			return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
		}
		updated = patch.Apply(cur[i])
		return replaced(cur, i, updated), nil
	})
	return updated.Clone(), err
}

func (s *CatalogStore) Delete(id string) error {
	return s.products.update(func(cur []models.Product) ([]models.Product, error) {
		i := indexOf(cur, byProductID(id))
		if i < 0 {
			return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
		}
		return without(cur, i), nil
	})
}

func (s *CatalogStore) Get(id string) (models.Product, error) {
	cur := s.products.load()
	i := indexOf(cur, byProductID(id))
	if i < 0 {
		return models.Product{}, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
	}
	return cur[i].Clone(), nil
}

func (s *CatalogStore) List() []models.Product {
	cur := s.products.load()
	out := make([]models.Product, len(cur))
	for i, p := range cur {
		out[i] = p.Clone()
	}
	return out
}

func byProductID(id string) func(models.Product) bool {
	return func(p models.Product) bool { return p.ID == id }
}
