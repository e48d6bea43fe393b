package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/seedshop/internal/client/api"
	"github.com/shopspring/decimal"
)

// NewSeed prompts for the seed fields and creates it.
func (a *App) NewSeed(ctx context.Context) error {
	in, err := a.promptSeedInput(api.SeedInput{})
	if err != nil {
		return err
	}

	seed, err := a.api.CreateSeed(ctx, in)
	if err != nil {
		return a.handleAPIError(ctx, err)
	}
	fmt.Fprintf(a.out, "Created %s (id %d)\n", seed.Name, seed.ID)
	a.seeds = nil
	return nil
}

// EditSeed prompts for new field values, prefilled from the current snapshot.
func (a *App) EditSeed(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: editseed <id>")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: editseed <id>")
		return nil
	}

	current, err := a.findSeed(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		fmt.Fprintln(a.out, "No seed with id", id)
		return nil
	}

	in, err := a.promptSeedInput(api.SeedInput{
		Name:     current.Name,
		Category: current.Category,
		Price:    current.Price,
		Quantity: current.Quantity,
		Image:    current.Image,
	})
	if err != nil {
		return err
	}

	seed, err := a.api.UpdateSeed(ctx, id, in)
	if err != nil {
		return a.handleAPIError(ctx, err)
	}
	fmt.Fprintf(a.out, "Updated %s\n", seed.Name)
	a.seeds = nil
	return nil
}

// DeleteSeed removes a seed from the inventory.
func (a *App) DeleteSeed(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delseed <id>")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: delseed <id>")
		return nil
	}

	if err := a.api.DeleteSeed(ctx, id); err != nil {
		return a.handleAPIError(ctx, err)
	}
	fmt.Fprintln(a.out, "Deleted seed", id)
	a.seeds = nil
	return nil
}

// Restock adds stock to a seed.
func (a *App) Restock(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: restock <id> <amount>")
		return nil
	}
	id, err1 := strconv.Atoi(args[0])
	amount, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || amount <= 0 {
		fmt.Fprintln(a.out, "Usage: restock <id> <amount> (amount must be positive)")
		return nil
	}

	seed, err := a.api.Restock(ctx, id, amount)
	if err != nil {
		return a.handleAPIError(ctx, err)
	}
	fmt.Fprintf(a.out, "%s now has %d in stock\n", seed.Name, seed.Quantity)
	a.seeds = nil
	return nil
}

func (a *App) promptSeedInput(defaults api.SeedInput) (api.SeedInput, error) {
	in := defaults

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", defaults.Name), a.out)
	if err != nil {
		return in, err
	}
	if name != "" {
		in.Name = name
	}

	category, err := getSimpleText(a.reader, fmt.Sprintf("Category [%s]", defaults.Category), a.out)
	if err != nil {
		return in, err
	}
	if category != "" {
		in.Category = category
	}

	price, err := getSimpleText(a.reader, fmt.Sprintf("Price [%s]", defaults.Price.StringFixed(2)), a.out)
	if err != nil {
		return in, err
	}
	if price != "" {
		p, perr := decimal.NewFromString(price)
		if perr != nil {
			return in, fmt.Errorf("invalid price: %w", perr)
		}
		in.Price = p
	}

	quantity, err := getSimpleText(a.reader, fmt.Sprintf("Quantity [%d]", defaults.Quantity), a.out)
	if err != nil {
		return in, err
	}
	if quantity != "" {
		q, qerr := strconv.Atoi(quantity)
		if qerr != nil || q < 0 {
			return in, fmt.Errorf("invalid quantity: %s", quantity)
		}
		in.Quantity = q
	}

	return in, nil
}
