// Package api talks to the seed shop service. The rest of the client treats
// it as the single remote collaborator: auth, inventory, and purchases.
package api

import (
	"context"

	"github.com/dmitrijs2005/seedshop/internal/client/models"
	"github.com/shopspring/decimal"
)

// SeedInput carries the writable fields of a seed for create/update calls.
type SeedInput struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// SeedQuery narrows a seed search. Zero-valued fields are omitted.
type SeedQuery struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Client is the remote API surface. Login and Register return the raw bearer
// credential issued by the server.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)

	ListSeeds(ctx context.Context) ([]models.Seed, error)
	SearchSeeds(ctx context.Context, q SeedQuery) ([]models.Seed, error)
	CreateSeed(ctx context.Context, in SeedInput) (models.Seed, error)
	UpdateSeed(ctx context.Context, id int, in SeedInput) (models.Seed, error)
	DeleteSeed(ctx context.Context, id int) error

	// Purchase buys one unit and returns the updated seed snapshot.
	Purchase(ctx context.Context, id int) (models.Seed, error)
	// Restock adds amount units and returns the updated seed snapshot.
	Restock(ctx context.Context, id int, amount int) (models.Seed, error)

	Close() error
}
