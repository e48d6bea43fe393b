// Package cart maintains the pending purchase lines: an ordered collection,
// at most one line per seed, quantities bounded by the stock snapshot. Every
// mutation is persisted to the cart's state slot after it commits in memory.
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/seedshop/internal/client/localdata"
	"github.com/dmitrijs2005/seedshop/internal/client/models"
	"github.com/dmitrijs2005/seedshop/internal/logging"
)

// slotKey is the store's exclusive slot in local state. The cart is shared
// by all accounts on this machine, matching the one-cart-per-browser scoping
// of the web client.
const slotKey = "cart"

// Store holds the cart lines. Not safe for concurrent use; the CLI drives it
// from a single goroutine.
type Store struct {
	slots localdata.Repository
	log   logging.Logger
	lines []models.CartLine
}

func NewStore(slots localdata.Repository, log logging.Logger) *Store {
	return &Store{slots: slots, log: log}
}

// Init loads the persisted cart. A missing or garbled slot leaves the cart
// empty without error; only a failing slot read is reported.
func (s *Store) Init(ctx context.Context) error {
	raw, ok, err := s.slots.Get(ctx, slotKey)
	if err != nil {
		return fmt.Errorf("reading cart slot: %w", err)
	}
	if !ok {
		return nil
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.log.Warn(ctx, "discarding unreadable cart", "reason", err.Error())
		return nil
	}
	s.lines = lines
	return nil
}

// Add puts one unit of the seed in the cart. A new line starts at quantity 1;
// an existing line grows by 1, clamped to the seed's available stock. Adding
// an out-of-stock seed, or adding past the clamp, is a no-op.
func (s *Store) Add(ctx context.Context, seed models.Seed) error {
	for i := range s.lines {
		if s.lines[i].ID != seed.ID {
			continue
		}
		next := s.lines[i].CartQuantity + 1
		if next > seed.Quantity {
			next = seed.Quantity
		}
		if next <= s.lines[i].CartQuantity {
			return nil
		}
		s.lines[i].CartQuantity = next
		return s.persist(ctx)
	}

	if seed.Quantity <= 0 {
		// Out of stock: the store stays silent, the UI layer messages the user.
		return nil
	}
	s.lines = append(s.lines, models.CartLine{Seed: seed, CartQuantity: 1})
	return s.persist(ctx)
}

// Remove deletes the line for the seed, if present.
func (s *Store) Remove(ctx context.Context, seedID int) error {
	for i := range s.lines {
		if s.lines[i].ID == seedID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// UpdateQuantity sets the line's quantity, clamped to [0, stock]. A resulting
// quantity of zero removes the line. Unknown seed ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, seedID, requested int) error {
	for i := range s.lines {
		if s.lines[i].ID != seedID {
			continue
		}
		q := requested
		if q < 0 {
			q = 0
		}
		if q > s.lines[i].Quantity {
			q = s.lines[i].Quantity
		}
		if q == 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].CartQuantity = q
		}
		return s.persist(ctx)
	}
	return nil
}

// Clear empties the cart and erases its slot.
func (s *Store) Clear(ctx context.Context) error {
	s.lines = nil
	if err := s.slots.Delete(ctx, slotKey); err != nil {
		return fmt.Errorf("erasing cart slot: %w", err)
	}
	return nil
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalPrice sums price * quantity over all lines with exact decimals.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// TotalItems sums the cart quantities over all lines.
func (s *Store) TotalItems() int {
	n := 0
	for _, l := range s.lines {
		n += l.CartQuantity
	}
	return n
}

func (s *Store) persist(ctx context.Context) error {
	b, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.slots.Set(ctx, slotKey, string(b)); err != nil {
		return fmt.Errorf("writing cart slot: %w", err)
	}
	return nil
}
