package store

import (
	"fmt"

	"techplug_back_end/internal/models"
)

// ServiceCatalogStore owns the service categories. Each category together with
// its nested items is one consistency unit: items are never addressed on their own.
type ServiceCatalogStore struct {
	categories *snapshot[models.ServiceCategory]
}

func NewServiceCatalogStore(initial ...models.ServiceCategory) (*ServiceCatalogStore, error) {
	s := &ServiceCatalogStore{categories: newSnapshot[models.ServiceCategory](nil)}
	for _, c := range initial {
		if err := s.AddCategory(c); err != nil {
			return nil, fmt.Errorf("seed service category %q: %w", c.ID, err)
		}
	}
	return s, nil
}

func (s *ServiceCatalogStore) AddCategory(c models.ServiceCategory) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c = c.Clone()
	if c.Services == nil {
		c.Services = []models.ServiceItem{}
	}
	return s.categories.update(func(cur []models.ServiceCategory) ([]models.ServiceCategory, error) {
		if indexOf(cur, byCategoryID(c.ID)) >= 0 {
			return nil, fmt.Errorf("service category %q: %w", c.ID, models.ErrDuplicateID)
		}
		return appended(cur, c), nil
	})
}

func (s *ServiceCatalogStore) UpdateCategory(id string, patch models.CategoryPatch) (models.ServiceCategory, error) {
	if err := patch.Validate(); err != nil {
		return models.ServiceCategory{}, err
	}
	var updated models.ServiceCategory
	err := s.categories.update(func(cur []models.ServiceCategory) ([]models.ServiceCategory, error) {
		i := indexOf(cur, byCategoryID(id))
		if i < 0 {
			return nil, fmt.Errorf("service category %q: %w", id, models.ErrNotFound)
		}
		updated = patch.Apply(cur[i])
		return replaced(cur, i, updated), nil
	})
	return updated.Clone(), err
}

// DeleteCategory removes the category and every item nested in it.
func (s *ServiceCatalogStore) DeleteCategory(id string) error {
	return s.categories.update(func(cur []models.ServiceCategory) ([]models.ServiceCategory, error) {
		i := indexOf(cur, byCategoryID(id))
		if i < 0 {
			return nil, fmt.Errorf("service category %q: %w", id, models.ErrNotFound)
		}
		return without(cur, i), nil
	})
}

func (s *ServiceCatalogStore) Get(id string) (models.ServiceCategory, error) {
	cur := s.categories.load()
	i := indexOf(cur, byCategoryID(id))
	if i < 0 {
		return models.ServiceCategory{}, fmt.Errorf("service category %q: %w", id, models.ErrNotFound)
	}
	return cur[i].Clone(), nil
}

func (s *ServiceCatalogStore) List() []models.ServiceCategory {
	cur := s.categories.load()
	out := make([]models.ServiceCategory, len(cur))
	for i, c := range cur {
		out[i] = c.Clone()
	}
	return out
}

func byCategoryID(id string) func(models.ServiceCategory) bool {
	return func(c models.ServiceCategory) bool { return c.ID == id }
}
