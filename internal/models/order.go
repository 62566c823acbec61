package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

type PaymentMethod string

const (
	PaymentStripe PaymentMethod = "Stripe"
	PaymentPayPal PaymentMethod = "PayPal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentStripe || m == PaymentPayPal
}

type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	Email         string          `json:"email"`
	Address       string          `json:"address"`
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	Date          time.Time       `json:"date"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

func (o Order) Clone() Order {
	o.Items = CloneItems(o.Items)
	return o
}

// OrderDraft is everything the caller supplies to place an order.
type OrderDraft struct {
	CustomerName  string          `json:"customerName"`
	Email         string          `json:"email"`
	Address       string          `json:"address"`
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// Validate checks the draft and returns the total computed from its items.
// A zero draft total is accepted and replaced by the computed one.
func (d OrderDraft) Validate() (decimal.Decimal, error) {
	if strings.TrimSpace(d.CustomerName) == "" {
		return decimal.Zero, Invalid("customerName", "is required")
	}
	if strings.TrimSpace(d.Email) == "" {
		return decimal.Zero, Invalid("email", "is required")
	}
	if strings.TrimSpace(d.Address) == "" {
		return decimal.Zero, Invalid("address", "is required")
	}
	if !d.PaymentMethod.Valid() {
		return decimal.Zero, Invalid("paymentMethod", "is unknown: "+string(d.PaymentMethod))
	}
	if len(d.Items) == 0 {
		return decimal.Zero, Invalid("items", "must not be empty")
	}
	for _, item := range d.Items {
		if item.ID == "" {
			return decimal.Zero, Invalid("items.id", "is required")
		}
		if item.Quantity < 1 {
			return decimal.Zero, Invalid("items.quantity", "must be at least 1")
		}
		if err := nonNegative("items.price", item.Price); err != nil {
			return decimal.Zero, err
		}
	}
	computed := CalcTotal(d.Items)
	if !d.Total.IsZero() && !d.Total.Equal(computed) {
		return decimal.Zero, Invalid("total", "does not match items ("+computed.String()+")")
	}
	return computed, nil
}

// ShippingDetails is the checkout form used to build a draft from the cart.
type ShippingDetails struct {
	Name          string        `json:"name" binding:"required"`
	Email         string        `json:"email" binding:"required,email"`
	Address       string        `json:"address" binding:"required"`
	City          string        `json:"city" binding:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// FullAddress joins street address and city the way the checkout form did.
func (s ShippingDetails) FullAddress() string {
	return s.Address + ", " + s.City
}
