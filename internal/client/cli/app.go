// Package cli implements the interactive storefront client: a REPL over the
// session store, the cart store, and the shop API.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/seedshop/internal/client/api"
	"github.com/dmitrijs2005/seedshop/internal/client/cart"
	"github.com/dmitrijs2005/seedshop/internal/client/config"
	"github.com/dmitrijs2005/seedshop/internal/client/localdata"
	"github.com/dmitrijs2005/seedshop/internal/client/models"
	"github.com/dmitrijs2005/seedshop/internal/client/services"
	"github.com/dmitrijs2005/seedshop/internal/client/session"
	"github.com/dmitrijs2005/seedshop/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	api     api.Client
	session *session.Store
	cart    *cart.Store
	orders  *services.OrderService

	reader *bufio.Reader
	out    io.Writer

	// seeds is the last inventory snapshot shown to the user; cart commands
	// resolve ids against it.
	seeds []models.Seed
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr)

	db, err := localdata.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	slots := localdata.NewSQLiteRepository(db)

	// The token source closes over the session store created just below.
	var sess *session.Store
	apiClient := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout,
		func(ctx context.Context) string {
			if sess == nil {
				return ""
			}
			return sess.Token()
		}, logger)

	sess = session.NewStore(apiClient, slots, logger)
	cartStore := cart.NewStore(slots, logger)
	orders := services.NewOrderService(apiClient, cartStore, logger)

	return &App{
		config:  cfg,
		log:     logger,
		api:     apiClient,
		session: sess,
		cart:    cartStore,
		orders:  orders,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run resolves the persisted session and cart, then enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	if err := a.session.Init(ctx); err != nil {
		a.log.Error(ctx, "restoring session", "error", err.Error())
	}
	if err := a.cart.Init(ctx); err != nil {
		a.log.Error(ctx, "restoring cart", "error", err.Error())
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.statusLine, scanner, a.out)
}

func (a *App) sessionStatus() session.Status {
	return a.session.Status()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	user, ok := a.session.Identity()
	return ok && user.IsAdmin()
}

func (a *App) statusLine() string {
	user, ok := a.session.Identity()
	if !ok {
		return "anonymous"
	}
	s := user.Email
	if user.IsAdmin() {
		s += " (admin)"
	}
	if n := a.cart.TotalItems(); n > 0 {
		s = fmt.Sprintf("%s cart:%d", s, n)
	}
	return s
}
