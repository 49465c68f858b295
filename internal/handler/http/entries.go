package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/logger"
	"fintrack/internal/service"
	"fintrack/internal/store"
	"fintrack/internal/utils"
	"fintrack/models"
)

// parseDateParam parses a query-string date that may arrive either as a full
// RFC 3339 timestamp or a plain calendar date.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}

	return nil, errors.New("unsupported date format")
}

// entryFilterFromQuery assembles the shared filter criteria of the list,
// analytics and export endpoints. The user id comes from the session, never
// from the query.
func entryFilterFromQuery(r *http.Request, userID int64) (models.EntryFilter, error) {
	query := r.URL.Query()

	startDate, err := parseDateParam(query.Get("startDate"))
	if err != nil {
		return models.EntryFilter{}, err
	}
	endDate, err := parseDateParam(query.Get("endDate"))
	if err != nil {
		return models.EntryFilter{}, err
	}

	return models.EntryFilter{
		UserID:    userID,
		Type:      models.EntryType(query.Get("type")),
		Category:  query.Get("category"),
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// writeFinError writes the uniform failure body of the financial endpoints.
func writeFinError(w http.ResponseWriter, status int, message string, err error) {
	body := models.ErrorResponse{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	utils.WriteJSON(w, body, status)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeFinError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
		return
	}

	var entry models.FinancialEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeFinError(w, http.StatusBadRequest, "Invalid JSON was passed", err)
		return
	}
	entry.UserID = userID

	createdEntry, err := h.services.EntryService.AddEntry(ctx, entry)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid entry data provided")
			writeFinError(w, http.StatusBadRequest, "Type, category and a non-negative amount are required", nil)
			return
		default:
			log.Err(err).Msg("unexpected error occurred creating entry")
			writeFinError(w, http.StatusInternalServerError, "Failed to add entry", nil)
			return
		}
	}

	utils.WriteJSON(w, models.DataResponse{
		Success: true,
		Message: "Entry added successfully",
		Data:    createdEntry,
	}, http.StatusCreated)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	entries, pagination, err := h.services.EntryService.ListEntries(ctx, filter, models.EntryPage{Page: page, Limit: limit})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid list filter provided")
			writeFinError(w, http.StatusBadRequest, "Invalid filter", nil)
			return
		default:
			log.Err(err).Msg("unexpected error occurred listing entries")
			writeFinError(w, http.StatusInternalServerError, "Failed to fetch entries", nil)
			return
		}
	}

	if entries == nil {
		entries = []models.FinancialEntry{}
	}

	utils.WriteJSON(w, models.DataResponse{
		Success:    true,
		Data:       entries,
		Pagination: &pagination,
	}, http.StatusOK)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeFinError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
		return
	}

	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid entry id in path")
		writeFinError(w, http.StatusBadRequest, "Invalid entry id", err)
		return
	}

	var update models.EntryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeFinError(w, http.StatusBadRequest, "Invalid JSON was passed", err)
		return
	}

	updatedEntry, err := h.services.EntryService.UpdateEntry(ctx, userID, entryID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid entry update provided")
			writeFinError(w, http.StatusBadRequest, "Invalid entry update", nil)
			return
		case errors.Is(err, store.ErrEntryNotFound):
			log.Err(err).Int64("entryID", entryID).Msg("entry not found")
			writeFinError(w, http.StatusNotFound, "Entry not found", nil)
			return
		default:
			log.Err(err).Msg("unexpected error occurred updating entry")
			writeFinError(w, http.StatusInternalServerError, "Failed to update entry", nil)
			return
		}
	}

	utils.WriteJSON(w, models.DataResponse{
		Success: true,
		Message: "Entry updated successfully",
		Data:    updatedEntry,
	}, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeFinError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
		return
	}

	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid entry id in path")
		writeFinError(w, http.StatusBadRequest, "Invalid entry id", err)
		return
	}

	if err := h.services.EntryService.DeleteEntry(ctx, userID, entryID); err != nil {
		switch {
		case errors.Is(err, store.ErrEntryNotFound):
			log.Err(err).Int64("entryID", entryID).Msg("entry not found")
			writeFinError(w, http.StatusNotFound, "Entry not found", nil)
			return
		default:
			log.Err(err).Msg("unexpected error occurred deleting entry")
			writeFinError(w, http.StatusInternalServerError, "Failed to delete entry", nil)
			return
		}
	}

	utils.WriteJSON(w, models.DataResponse{
		Success: true,
		Message: "Entry deleted successfully",
	}, http.StatusOK)
}
