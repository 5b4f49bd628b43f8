package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/akovalyov/storefront-api/internal/auth"
	"github.com/akovalyov/storefront-api/internal/user"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
}

type AuthHandler struct {
	svc      user.Service
	tokens   *auth.Manager
	validate *validator.Validate
}

func NewAuthHandler(svc user.Service, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens, validate: validator.New()}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	_, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			respondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}
		log.Error().Err(err).Msg("failed to register user")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondWithError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		log.Error().Err(err).Msg("failed to log user in")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", u.ID).Msg("failed to issue token")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": userResponse{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			ProfilePicture: u.ProfilePicture,
		},
	})
}
