// Package models defines the client-side views of the shop's entities.
package models

import "github.com/shopspring/decimal"

// Seed is an inventory item as served by the shop API. Quantity is the stock
// available at the time the snapshot was fetched.
type Seed struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// InStock reports whether at least one unit is available.
func (s Seed) InStock() bool {
	return s.Quantity > 0
}
