package seeds

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/seedshop/internal/server/models"
)

var (
	ErrNotFound   = errors.New("seed not found")
	ErrOutOfStock = errors.New("seed is out of stock")
)

// SearchQuery holds the optional inventory filters. Zero-value fields are
// left out of the generated WHERE clause.
type SearchQuery struct {
	Name     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type Repository interface {
	List(ctx context.Context) ([]models.Seed, error)
	Search(ctx context.Context, q SearchQuery) ([]models.Seed, error)
	GetByID(ctx context.Context, id int) (*models.Seed, error)
	Create(ctx context.Context, seed *models.Seed) (*models.Seed, error)
	Update(ctx context.Context, seed *models.Seed) (*models.Seed, error)
	Delete(ctx context.Context, id int) error
	PurchaseOne(ctx context.Context, id int) (*models.Seed, error)
	Restock(ctx context.Context, id int, amount int) (*models.Seed, error)
	Count(ctx context.Context) (int, error)
}
