package models

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	TypeLaptop    ProductType = "Laptop"
	TypeComponent ProductType = "Component"
	TypeAccessory ProductType = "Accessory"
	TypeSoftware  ProductType = "Software"
)

func (t ProductType) Valid() bool {
	switch t {
	case TypeLaptop, TypeComponent, TypeAccessory, TypeSoftware:
		return true
	}
	return false
}

type Brand string

const (
	BrandDell     Brand = "Dell"
	BrandHP       Brand = "HP"
	BrandLenovo   Brand = "Lenovo"
	BrandSamsung  Brand = "Samsung"
	BrandKingston Brand = "Kingston"
	BrandOther    Brand = "Other"
)

func (b Brand) Valid() bool {
	switch b {
	case BrandDell, BrandHP, BrandLenovo, BrandSamsung, BrandKingston, BrandOther:
		return true
	}
	return false
}

type Condition string

const (
	ConditionNew         Condition = "New"
	ConditionRefurbished Condition = "Refurbished"
)

func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionRefurbished
}

type ProductSpecs struct {
	CPU     string `json:"cpu,omitempty"`
	RAM     string `json:"ram,omitempty"`
	Storage string `json:"storage,omitempty"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Type        ProductType     `json:"type"`
	Brand       Brand           `json:"brand"`
	Condition   Condition       `json:"condition"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Specs       *ProductSpecs   `json:"specs,omitempty"`
}

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	if p.Specs != nil {
		specs := *p.Specs
		p.Specs = &specs
	}
	return p
}

// Validate checks a complete product as submitted for creation.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return Invalid("id", "is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return Invalid("name", "is required")
	}
	if !p.Type.Valid() {
		return Invalid("type", "is unknown: "+string(p.Type))
	}
	if !p.Brand.Valid() {
		return Invalid("brand", "is unknown: "+string(p.Brand))
	}
	if !p.Condition.Valid() {
		return Invalid("condition", "is unknown: "+string(p.Condition))
	}
	if err := nonNegative("price", p.Price); err != nil {
		return err
	}
	if p.Stock < 0 {
		return Invalid("stock", "must not be negative")
	}
	return validImage(p.Image)
}

func validImage(image string) error {
	if image == "" {
		return nil
	}
	if _, err := url.Parse(image); err != nil {
		return Invalid("image", "is not a valid URI")
	}
	return nil
}

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Type        *ProductType     `json:"type"`
	Brand       *Brand           `json:"brand"`
	Condition   *Condition       `json:"condition"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
	Specs       *ProductSpecs    `json:"specs"`
}

func (p ProductPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Invalid("name", "must not be empty")
	}
	if p.Type != nil && !p.Type.Valid() {
		return Invalid("type", "is unknown: "+string(*p.Type))
	}
	if p.Brand != nil && !p.Brand.Valid() {
		return Invalid("brand", "is unknown: "+string(*p.Brand))
	}
	if p.Condition != nil && !p.Condition.Valid() {
		return Invalid("condition", "is unknown: "+string(*p.Condition))
	}
	if p.Price != nil {
		if err := nonNegative("price", *p.Price); err != nil {
			return err
		}
	}
	if p.Stock != nil && *p.Stock < 0 {
		return Invalid("stock", "must not be negative")
	}
	if p.Image != nil {
		return validImage(*p.Image)
	}
	return nil
}

// Apply returns dst with every set field of p copied over.
func (p ProductPatch) Apply(dst Product) Product {
	dst = dst.Clone()
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Type != nil {
		dst.Type = *p.Type
	}
	if p.Brand != nil {
		dst.Brand = *p.Brand
	}
	if p.Condition != nil {
		dst.Condition = *p.Condition
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Specs != nil {
		specs := *p.Specs
		dst.Specs = &specs
	}
	return dst
}
