package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/seedshop/internal/client/api"
	"github.com/dmitrijs2005/seedshop/internal/client/models"
	"github.com/shopspring/decimal"
)

// handleAPIError drops the session when the server rejects our credential on
// a non-auth call, so the next prompt shows the real state.
func (a *App) handleAPIError(ctx context.Context, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		a.session.Logout(ctx)
		return errors.New("session expired, please log in again")
	}
	return err
}

// List fetches and prints the full inventory.
func (a *App) List(ctx context.Context) error {
	seeds, err := a.api.ListSeeds(ctx)
	if err != nil {
		return a.handleAPIError(ctx, err)
	}
	a.seeds = seeds
	a.printSeeds(seeds)
	return nil
}

// Search prompts for filters and prints the matching seeds.
func (a *App) Search(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name contains (empty to skip)", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (empty to skip)", a.out)
	if err != nil {
		return err
	}

	q := api.SeedQuery{Name: name, Category: category}
	if raw, err := getSimpleText(a.reader, "Max price (empty to skip)", a.out); err == nil && raw != "" {
		if p, perr := decimal.NewFromString(raw); perr == nil {
			q.MaxPrice = &p
		}
	}

	seeds, err := a.api.SearchSeeds(ctx, q)
	if err != nil {
		return a.handleAPIError(ctx, err)
	}
	a.seeds = seeds
	a.printSeeds(seeds)
	return nil
}

// AddToCart puts one unit of the given seed id in the cart.
func (a *App) AddToCart(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: add <id>")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: add <id>")
		return nil
	}

	seed, err := a.findSeed(ctx, id)
	if err != nil {
		return err
	}
	if seed == nil {
		fmt.Fprintln(a.out, "No seed with id", id)
		return nil
	}
	// The cart silently refuses out-of-stock adds; tell the user here.
	if !seed.InStock() {
		fmt.Fprintf(a.out, "%s is out of stock.\n", seed.Name)
		return nil
	}

	if err := a.cart.Add(ctx, *seed); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (cart: %d items)\n", seed.Name, a.cart.TotalItems())
	return nil
}

// ShowCart prints the cart lines and totals.
func (a *App) ShowCart(ctx context.Context) error {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			l.ID, l.Name, l.Price.StringFixed(2), l.CartQuantity, l.Subtotal().StringFixed(2))
	}
	w.Flush()
	fmt.Fprintf(a.out, "Total: %s (%d items)\n", a.cart.TotalPrice().StringFixed(2), a.cart.TotalItems())
	return nil
}

// SetQuantity changes a line's quantity; 0 removes the line.
func (a *App) SetQuantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: qty <id> <quantity>")
		return nil
	}
	id, err1 := strconv.Atoi(args[0])
	n, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(a.out, "Usage: qty <id> <quantity>")
		return nil
	}

	if err := a.cart.UpdateQuantity(ctx, id, n); err != nil {
		return err
	}
	return a.ShowCart(ctx)
}

// RemoveFromCart deletes a line.
func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: remove <id>")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: remove <id>")
		return nil
	}
	return a.cart.Remove(ctx, id)
}

// ClearCart empties the cart.
func (a *App) ClearCart(ctx context.Context) error {
	if err := a.cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cart cleared.")
	return nil
}

// Order submits the cart and prints the receipt.
func (a *App) Order(ctx context.Context) error {
	receipt, err := a.orders.Submit(ctx)
	if err != nil {
		return a.handleAPIError(ctx, err)
	}

	fmt.Fprintf(a.out, "Order %s placed: %d items, total %s\n",
		receipt.ID, receipt.Items, receipt.Total.StringFixed(2))

	// refresh stock figures after the purchase
	if seeds, err := a.api.ListSeeds(ctx); err == nil {
		a.seeds = seeds
	}
	return nil
}

// findSeed resolves an id against the cached snapshot, fetching the
// inventory first when nothing has been listed yet.
func (a *App) findSeed(ctx context.Context, id int) (*models.Seed, error) {
	if a.seeds == nil {
		seeds, err := a.api.ListSeeds(ctx)
		if err != nil {
			return nil, a.handleAPIError(ctx, err)
		}
		a.seeds = seeds
	}
	for i := range a.seeds {
		if a.seeds[i].ID == id {
			return &a.seeds[i], nil
		}
	}
	return nil, nil
}

func (a *App) printSeeds(seeds []models.Seed) {
	if len(seeds) == 0 {
		fmt.Fprintln(a.out, "No seeds found.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, s := range seeds {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Category, s.Price.StringFixed(2), s.Quantity)
	}
	w.Flush()
}
