package models

import "github.com/shopspring/decimal"

func init() {
	// The storefront sends and expects plain JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return Invalid(field, "must not be negative")
	}
	return nil
}
