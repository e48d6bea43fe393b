// Package services contains application services for the storefront CLI.
// This file defines order submission: turning the current cart into a series
// of purchase calls against the shop API.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/seedshop/internal/client/cart"
	"github.com/dmitrijs2005/seedshop/internal/client/models"
	"github.com/dmitrijs2005/seedshop/internal/logging"
)

var ErrEmptyCart = errors.New("cart is empty")

// Receipt summarizes a completed order.
type Receipt struct {
	ID    string
	Items int
	Total decimal.Decimal
}

// InventoryClient is the slice of the remote API order submission needs.
type InventoryClient interface {
	Purchase(ctx context.Context, seedID int) (models.Seed, error)
}

// OrderService submits the cart as individual unit purchases, one call per
// unit, mirroring the shop API's purchase-one-unit operation.
type OrderService struct {
	client InventoryClient
	cart   *cart.Store
	log    logging.Logger
}

func NewOrderService(client InventoryClient, cart *cart.Store, log logging.Logger) *OrderService {
	return &OrderService{client: client, cart: cart, log: log}
}

// Submit purchases every unit in the cart. On full success the cart is
// cleared and a receipt is returned. On any purchase failure the cart is
// left as-is so the user can retry; the server's failure reason is wrapped
// with the offending seed's name.
//
// Stock is enforced server-side against live inventory; the cart's bounds
// only reflect the snapshot at add time and may be stale by now.
func (o *OrderService) Submit(ctx context.Context) (*Receipt, error) {
	lines := o.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := o.cart.TotalPrice()
	items := o.cart.TotalItems()

	for _, line := range lines {
		for i := 0; i < line.CartQuantity; i++ {
			if _, err := o.client.Purchase(ctx, line.ID); err != nil {
				return nil, fmt.Errorf("purchasing %q: %w", line.Name, err)
			}
		}
	}

	if err := o.cart.Clear(ctx); err != nil {
		// The order went through; a stale persisted cart is an annoyance,
		// not a failure.
		o.log.Warn(ctx, "clearing cart after order", "error", err.Error())
	}

	return &Receipt{ID: uuid.NewString(), Items: items, Total: total}, nil
}
