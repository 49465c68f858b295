package http

import (
	"errors"
	"net/http"

	"fintrack/internal/logger"
	"fintrack/internal/service"
	"fintrack/internal/utils"
)

// exportFileName is the attachment name offered to the browser.
const exportFileName = "financial_data.csv"

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
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

	csv, err := h.services.ExportService.ExportCSV(ctx, filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid export filter provided")
			writeFinError(w, http.StatusBadRequest, "Invalid filter", nil)
			return
		default:
			log.Err(err).Msg("unexpected error occurred exporting entries")
			writeFinError(w, http.StatusInternalServerError, "Failed to export entries", nil)
			return
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+exportFileName)
	w.WriteHeader(http.StatusOK)
	w.Write(csv)
}
