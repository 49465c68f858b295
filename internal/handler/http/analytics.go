package http

import (
	"errors"
	"net/http"

	"fintrack/internal/logger"
	"fintrack/internal/service"
	"fintrack/internal/utils"
	"fintrack/models"
)

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeFinError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
		return
	}

	filter, err := entryFilterFromQuery(r, userID)
	if err != nil {
		log.Err(err).Msg("invalid date filter provided")
		writeFinError(w, http.StatusBadRequest, "Invalid date filter", err)
		return
	}

	analytics, err := h.services.AnalyticsService.Analytics(ctx, filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid analytics filter provided")
			writeFinError(w, http.StatusBadRequest, "Invalid filter", nil)
			return
		default:
			log.Err(err).Msg("unexpected error occurred computing analytics")
			writeFinError(w, http.StatusInternalServerError, "Failed to fetch analytics", nil)
			return
		}
	}

	utils.WriteJSON(w, models.DataResponse{
		Success: true,
		Data:    analytics,
	}, http.StatusOK)
}
