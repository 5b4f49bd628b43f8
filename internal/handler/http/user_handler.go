package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/akovalyov/storefront-api/internal/user"
)

type updateProfileRequest struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	PhoneNumber    *string `json:"phoneNumber"`
	ProfilePicture string  `json:"profilePicture"`
}

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Put("/users/{userId}/profile", h.handleUpdateProfile)
}

func (h *UserHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.FromString(chi.URLParam(r, "userId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), userID, user.ProfileUpdate{
		Name:           req.Name,
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to update profile")
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    u,
	})
}
