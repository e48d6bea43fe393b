package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/seedshop/internal/server/models"
	"github.com/dmitrijs2005/seedshop/internal/server/repositories/seeds"
)

type seedRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

func (req *seedRequest) validate() string {
	if req.Name == "" {
		return "Name is required"
	}
	if req.Category == "" {
		return "Category is required"
	}
	if !req.Price.IsPositive() {
		return "Price must be positive"
	}
	if req.Quantity < 0 {
		return "Quantity must not be negative"
	}
	return ""
}

func seedID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

func (s *Server) handleListSeeds(w http.ResponseWriter, r *http.Request) {
	list, err := s.seeds.List(r.Context())
	if err != nil {
		s.log.Error(r.Context(), "listing seeds", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSearchSeeds(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := seeds.SearchQuery{
		Name:     params.Get("name"),
		Category: params.Get("category"),
	}
	if raw := params.Get("min_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil || p.IsNegative() {
			writeDetail(w, http.StatusBadRequest, "Invalid min_price")
			return
		}
		q.MinPrice = &p
	}
	if raw := params.Get("max_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil || p.IsNegative() {
			writeDetail(w, http.StatusBadRequest, "Invalid max_price")
			return
		}
		q.MaxPrice = &p
	}

	list, err := s.seeds.Search(r.Context(), q)
	if err != nil {
		s.log.Error(r.Context(), "searching seeds", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSeed(w http.ResponseWriter, r *http.Request) {
	id, ok := seedID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Seed not found")
		return
	}

	seed, err := s.seeds.GetByID(r.Context(), id)
	if err != nil {
		s.writeSeedError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seed)
}

func (s *Server) handleCreateSeed(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}
	if req.Image == "" {
		req.Image = models.DefaultSeedImage
	}

	seed, err := s.seeds.Create(r.Context(), &models.Seed{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
		Image:    req.Image,
	})
	if err != nil {
		s.log.Error(r.Context(), "creating seed", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, seed)
}

func (s *Server) handleUpdateSeed(w http.ResponseWriter, r *http.Request) {
	id, ok := seedID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Seed not found")
		return
	}

	current, err := s.seeds.GetByID(r.Context(), id)
	if err != nil {
		s.writeSeedError(w, r, err)
		return
	}

	// Partial update: absent fields keep their stored values.
	req := seedRequest{
		Name:     current.Name,
		Category: current.Category,
		Price:    current.Price,
		Quantity: current.Quantity,
		Image:    current.Image,
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}

	seed, err := s.seeds.Update(r.Context(), &models.Seed{
		ID:       id,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
		Image:    req.Image,
	})
	if err != nil {
		s.writeSeedError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seed)
}

func (s *Server) handleDeleteSeed(w http.ResponseWriter, r *http.Request) {
	id, ok := seedID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Seed not found")
		return
	}

	if err := s.seeds.Delete(r.Context(), id); err != nil {
		s.writeSeedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePurchaseSeed(w http.ResponseWriter, r *http.Request) {
	id, ok := seedID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Seed not found")
		return
	}

	seed, err := s.seeds.PurchaseOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, seeds.ErrOutOfStock) {
			writeDetail(w, http.StatusBadRequest, "Seed is out of stock")
			return
		}
		s.writeSeedError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seed)
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleRestockSeed(w http.ResponseWriter, r *http.Request) {
	id, ok := seedID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Seed not found")
		return
	}

	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity <= 0 {
		writeDetail(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	seed, err := s.seeds.Restock(r.Context(), id, req.Quantity)
	if err != nil {
		s.writeSeedError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seed)
}

func (s *Server) writeSeedError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, seeds.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Seed not found")
		return
	}
	s.log.Error(r.Context(), "seed operation", "error", err.Error())
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}
