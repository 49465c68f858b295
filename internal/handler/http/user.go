package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/logger"
	"fintrack/internal/service"
	"fintrack/internal/store"
	"fintrack/internal/utils"
	"fintrack/models"
)

// profileRequest is the expected body of PUT /api/user/profile.
type profileRequest struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	foundUser, err := h.services.AuthService.Profile(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("user no longer exists")
			utils.WriteJSON(w, models.MessageResponse{Message: "User not found"}, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred fetching profile")
			utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.DataResponse{
		Success: true,
		Data:    models.ProfileOf(foundUser),
	}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.MessageResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	updatedUser, err := h.services.AuthService.UpdateProfile(ctx, userID, req.Name, req.Photo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid profile data provided")
			utils.WriteJSON(w, models.MessageResponse{Message: "Name is required"}, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("user no longer exists")
			utils.WriteJSON(w, models.MessageResponse{Message: "User not found"}, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred updating profile")
			utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.DataResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    models.ProfileOf(updatedUser),
	}, http.StatusOK)
}
