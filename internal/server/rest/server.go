package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/seedshop/internal/logging"
	"github.com/dmitrijs2005/seedshop/internal/server/config"
	"github.com/dmitrijs2005/seedshop/internal/server/repositories/seeds"
	"github.com/dmitrijs2005/seedshop/internal/server/repositories/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config *config.Config
	log    logging.Logger
	users  users.Repository
	seeds  seeds.Repository

	srv *http.Server
}

func NewServer(cfg *config.Config, log logging.Logger, usersRepo users.Repository, seedsRepo seeds.Repository) *Server {
	return &Server{
		config: cfg,
		log:    log,
		users:  usersRepo,
		seeds:  seedsRepo,
	}
}

// Handler builds the full middleware and routing stack.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	limiter := rate.NewLimiter(rate.Limit(s.config.RateLimitRPS), s.config.RateLimitBurst)
	r.Use(s.logRequests)
	r.Use(s.rateLimit(limiter))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	// Endpoints open to any authenticated account.
	shop := r.PathPrefix("/api/seeds").Subrouter()
	shop.Use(s.authenticate)
	shop.HandleFunc("", s.handleListSeeds).Methods(http.MethodGet)
	shop.HandleFunc("/search", s.handleSearchSeeds).Methods(http.MethodGet)
	shop.HandleFunc("/{id:[0-9]+}", s.handleGetSeed).Methods(http.MethodGet)
	shop.HandleFunc("/{id:[0-9]+}", s.handleUpdateSeed).Methods(http.MethodPut)
	shop.HandleFunc("/{id:[0-9]+}/purchase", s.handlePurchaseSeed).Methods(http.MethodPost)

	// Inventory management requires the admin role.
	admin := r.PathPrefix("/api/seeds").Subrouter()
	admin.Use(s.authenticate, s.adminOnly)
	admin.HandleFunc("", s.handleCreateSeed).Methods(http.MethodPost)
	admin.HandleFunc("/{id:[0-9]+}", s.handleDeleteSeed).Methods(http.MethodDelete)
	admin.HandleFunc("/{id:[0-9]+}/restock", s.handleRestockSeed).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{Addr: s.config.EndpointAddr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	s.log.Info(ctx, "http server listening", "address", s.config.EndpointAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
