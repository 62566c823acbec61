package models

import "github.com/shopspring/decimal"

// CartItem is a product snapshot taken when it first entered the cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) Clone() CartItem {
	i.Product = i.Product.Clone()
	return i
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CalcTotal returns Σ(price × quantity).
func CalcTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
