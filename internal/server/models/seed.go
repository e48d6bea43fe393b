package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSeedImage is used when a seed is created without an image.
const DefaultSeedImage = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'%3E%3Ccircle cx='50' cy='50' r='35' fill='%238B7355'/%3E%3Ccircle cx='50' cy='50' r='20' fill='%23A0826D'/%3E%3Ccircle cx='45' cy='48' r='2' fill='%23333333'/%3E%3Ccircle cx='55' cy='48' r='2' fill='%23333333'/%3E%3Ccircle cx='50' cy='57' r='2' fill='%23333333'/%3E%3C/svg%3E"

type Seed struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
