// Package server initializes and runs the seed shop server: it opens the
// PostgreSQL storage, runs migrations, bootstraps the default inventory and
// admin account, handles graceful shutdown, and starts the HTTP endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/seedshop/internal/dbx"
	"github.com/dmitrijs2005/seedshop/internal/logging"
	"github.com/dmitrijs2005/seedshop/internal/server/auth"
	"github.com/dmitrijs2005/seedshop/internal/server/config"
	"github.com/dmitrijs2005/seedshop/internal/server/models"
	"github.com/dmitrijs2005/seedshop/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/seedshop/internal/server/repositories/users"
	"github.com/dmitrijs2005/seedshop/internal/server/rest"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	repos  repomanager.RepositoryManager
	server *rest.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	server := rest.NewServer(cfg, logger, m.Users(db), m.Seeds(db))

	return &App{config: cfg, logger: logger, db: db, repos: m, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// bootstrap migrates the schema, seeds the default inventory into an empty
// database, and creates the configured admin account if it is missing.
func (app *App) bootstrap(ctx context.Context) error {
	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	err := dbx.WithTx(ctx, app.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := app.repos.Seeds(tx)
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, s := range defaultSeeds() {
			if _, err := repo.Create(ctx, &s); err != nil {
				return err
			}
		}
		app.logger.Info(ctx, "seeded default inventory", "count", len(defaultSeeds()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("seeding inventory: %w", err)
	}

	if app.config.AdminEmail == "" {
		return nil
	}
	err = dbx.WithTx(ctx, app.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := app.repos.Users(tx)
		if _, err := repo.GetByEmail(ctx, app.config.AdminEmail); err == nil {
			return nil
		} else if !errors.Is(err, users.ErrNotFound) {
			return err
		}
		hash, err := auth.HashPassword(app.config.AdminPassword)
		if err != nil {
			return err
		}
		_, err = repo.Create(ctx, &models.User{
			Email:        app.config.AdminEmail,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		})
		if err == nil {
			app.logger.Info(ctx, "created admin account", "email", app.config.AdminEmail)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.bootstrap(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}

// defaultSeeds is the starter catalogue loaded into an empty database.
func defaultSeeds() []models.Seed {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	items := []models.Seed{
		{Name: "Sunflower Seed", Category: "Flower", Price: price("25.00"), Quantity: 50},
		{Name: "Pumpkin Seed", Category: "Vegetable", Price: price("20.00"), Quantity: 60},
		{Name: "Sesame Seed", Category: "Herb", Price: price("45.00"), Quantity: 40},
		{Name: "Chia Seed", Category: "Superfood", Price: price("30.00"), Quantity: 55},
		{Name: "Flaxseed", Category: "Superfood", Price: price("15.00"), Quantity: 80},
		{Name: "Quinoa Seed", Category: "Grain", Price: price("35.00"), Quantity: 45},
		{Name: "Mustard Seed", Category: "Spice", Price: price("40.00"), Quantity: 35},
		{Name: "Cumin Seed", Category: "Spice", Price: price("28.00"), Quantity: 50},
		{Name: "Fennel Seed", Category: "Spice", Price: price("32.00"), Quantity: 60},
		{Name: "Caraway Seed", Category: "Spice", Price: price("38.00"), Quantity: 55},
		{Name: "Coriander Seed", Category: "Spice", Price: price("35.00"), Quantity: 65},
		{Name: "Fenugreek Seed", Category: "Herb", Price: price("42.00"), Quantity: 48},
		{Name: "Hemp Seed", Category: "Superfood", Price: price("50.00"), Quantity: 35},
		{Name: "Sesame Seed (Black)", Category: "Herb", Price: price("48.00"), Quantity: 42},
		{Name: "Sunflower Seed (Striped)", Category: "Flower", Price: price("28.00"), Quantity: 58},
		{Name: "Pumpkin Seed (Raw)", Category: "Vegetable", Price: price("22.00"), Quantity: 70},
		{Name: "Watermelon Seed", Category: "Vegetable", Price: price("18.00"), Quantity: 75},
		{Name: "Muskmelon Seed", Category: "Vegetable", Price: price("19.00"), Quantity: 68},
		{Name: "Poppy Seed", Category: "Herb", Price: price("55.00"), Quantity: 30},
		{Name: "Nigella Seed", Category: "Spice", Price: price("44.00"), Quantity: 40},
	}
	for i := range items {
		items[i].Image = models.DefaultSeedImage
	}
	return items
}
