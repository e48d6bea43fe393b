package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/seedshop/internal/server/auth"
	"github.com/dmitrijs2005/seedshop/internal/server/models"
	"github.com/dmitrijs2005/seedshop/internal/server/repositories/users"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *Server) issueToken(user *models.User) (tokenResponse, error) {
	tok, err := auth.GenerateToken(user.ID, user.Email, user.Role,
		[]byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return tokenResponse{}, err
	}
	return tokenResponse{AccessToken: tok, TokenType: "bearer"}, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error(r.Context(), "hashing password", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := s.users.Create(r.Context(), &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.log.Error(r.Context(), "creating user", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp, err := s.issueToken(user)
	if err != nil {
		s.log.Error(r.Context(), "issuing token", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		s.log.Error(r.Context(), "fetching user", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	resp, err := s.issueToken(user)
	if err != nil {
		s.log.Error(r.Context(), "issuing token", "error", err.Error())
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
