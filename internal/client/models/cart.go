package models

import "github.com/shopspring/decimal"

// CartLine is one seed plus the quantity of it the user intends to buy.
// The embedded Seed is a snapshot taken when the line was created; its
// Quantity field is the stock bound for CartQuantity.
type CartLine struct {
	Seed
	CartQuantity int `json:"cartQuantity"`
}

// Subtotal returns price × cart quantity with exact decimal arithmetic.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.CartQuantity)))
}
