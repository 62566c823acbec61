package models

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type ServiceItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
}

// ServiceCategory groups bookable repair offerings. The item list is one unit:
// it is only ever replaced as a whole.
type ServiceCategory struct {
	ID          string        `json:"id"`
	ServiceType string        `json:"serviceType"`
	Description string        `json:"description"`
	Services    []ServiceItem `json:"services"`
}

// UnmarshalJSON accepts the legacy "category" key as an alias of "serviceType".
func (c *ServiceCategory) UnmarshalJSON(data []byte) error {
	type plain ServiceCategory
	var raw struct {
		plain
		Category string `json:"category"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ServiceCategory(raw.plain)
	if c.ServiceType == "" {
		c.ServiceType = raw.Category
	}
	return nil
}

func (c ServiceCategory) Clone() ServiceCategory {
	c.Services = slices.Clone(c.Services)
	return c
}

func (c ServiceCategory) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return Invalid("id", "is required")
	}
	if strings.TrimSpace(c.ServiceType) == "" {
		return Invalid("serviceType", "is required")
	}
	return ValidateServiceItems(c.Services)
}

// ValidateServiceItems checks one category's item list. Ids only need to be
// unique inside the list.
func ValidateServiceItems(items []ServiceItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return Invalid("services.id", "is required")
		}
		if strings.TrimSpace(item.Name) == "" {
			return Invalid("services.name", "is required")
		}
		if err := nonNegative("services.price", item.Price); err != nil {
			return err
		}
		if _, dup := seen[item.ID]; dup {
			return Invalid("services.id", "is duplicated: "+item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

type CategoryPatch struct {
	ServiceType *string        `json:"serviceType"`
	Description *string        `json:"description"`
	Services    *[]ServiceItem `json:"services"`
}

func (p *CategoryPatch) UnmarshalJSON(data []byte) error {
	type plain CategoryPatch
	var raw struct {
		plain
		Category *string `json:"category"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = CategoryPatch(raw.plain)
	if p.ServiceType == nil {
		p.ServiceType = raw.Category
	}
	return nil
}

func (p CategoryPatch) Validate() error {
	if p.ServiceType != nil && strings.TrimSpace(*p.ServiceType) == "" {
		return Invalid("serviceType", "must not be empty")
	}
	if p.Services != nil {
		return ValidateServiceItems(*p.Services)
	}
	return nil
}

// Apply returns dst with the patch applied. A Services patch replaces the whole list.
func (p CategoryPatch) Apply(dst ServiceCategory) ServiceCategory {
	dst = dst.Clone()
	if p.ServiceType != nil {
		dst.ServiceType = *p.ServiceType
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Services != nil {
		dst.Services = slices.Clone(*p.Services)
		if dst.Services == nil {
			dst.Services = []ServiceItem{}
		}
	}
	return dst
}
