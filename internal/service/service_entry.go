package service

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/logger"
	"fintrack/internal/store"
	"fintrack/models"
)

// Pagination bounds for entry listing. A missing page or limit falls back to
// the defaults; a limit above the cap is clamped.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// entryService is the concrete implementation of EntryService.
// It validates client input and delegates persistence to an EntryRepository;
// ownership scoping is enforced by the repository queries themselves.
type entryService struct {
	entryRepository store.EntryRepository
	logger          *logger.Logger
}

func NewEntryService(entryRepository store.EntryRepository, logger *logger.Logger) EntryService {
	return &entryService{
		entryRepository: entryRepository,
		logger:          logger,
	}
}

// AddEntry creates a new financial entry for the user carried in entry.UserID.
//
// The entry type must be one of the supported kinds, the category and
// description must be present, and the amount must not be negative. A zero
// date defaults to the current time, nil tags become an empty list, and the
// recurrence frequency is dropped unless the entry is actually marked
// recurring.
//
// Returns the persisted entry (with a server-assigned EntryID) or
// ErrInvalidDataProvided when validation fails.
func (s *entryService) AddEntry(ctx context.Context, entry models.FinancialEntry) (models.FinancialEntry, error) {
	log := logger.FromContext(ctx)

	if !entry.Type.Valid() || entry.Category == "" || entry.Description == "" || entry.Amount < 0 {
		log.Error().Str("type", string(entry.Type)).Str("category", entry.Category).Msg("invalid entry data provided")
		return models.FinancialEntry{}, ErrInvalidDataProvided
	}
	if entry.IsRecurring {
		if entry.RecurringFrequency == nil || !entry.RecurringFrequency.Valid() {
			log.Error().Msg("recurring entry without a valid frequency")
			return models.FinancialEntry{}, ErrInvalidDataProvided
		}
	} else {
		entry.RecurringFrequency = nil
	}

	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	createdEntry, err := s.entryRepository.CreateEntry(ctx, entry)
	if err != nil {
		log.Err(err).Int64("userID", entry.UserID).Msg("entry creation ended with error")
		return models.FinancialEntry{}, fmt.Errorf("entry creation ended with error: %w", err)
	}

	return createdEntry, nil
}

// ListEntries returns one page of the user's entries, newest first, together
// with pagination metadata computed from the total match count.
func (s *entryService) ListEntries(ctx context.Context, filter models.EntryFilter, page models.EntryPage) ([]models.FinancialEntry, models.Pagination, error) {
	log := logger.FromContext(ctx)

	if filter.Type != "" && !filter.Type.Valid() {
		log.Error().Str("type", string(filter.Type)).Msg("invalid type filter provided")
		return nil, models.Pagination{}, ErrInvalidDataProvided
	}

	page = normalizePage(page)

	entries, total, err := s.entryRepository.ListEntries(ctx, filter, page)
	if err != nil {
		log.Err(err).Int64("userID", filter.UserID).Msg("entry listing ended with error")
		return nil, models.Pagination{}, fmt.Errorf("entry listing ended with error: %w", err)
	}

	totalPages := total / page.Limit
	if total%page.Limit != 0 {
		totalPages++
	}

	return entries, models.Pagination{
		CurrentPage:    page.Page,
		TotalPages:     totalPages,
		TotalEntries:   total,
		EntriesPerPage: page.Limit,
	}, nil
}

// UpdateEntry applies a partial update to one of the user's entries.
//
// Returns ErrInvalidDataProvided when the update carries no fields, an
// invalid enum value, or a recurrence frequency that is not paired with
// isRecurring, and passes through store.ErrEntryNotFound when the entry does
// not exist or belongs to another user.
func (s *entryService) UpdateEntry(ctx context.Context, userID, entryID int64, update models.EntryUpdate) (models.FinancialEntry, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		log.Error().Int64("entryID", entryID).Msg("empty entry update provided")
		return models.FinancialEntry{}, ErrInvalidDataProvided
	}
	if update.Type != nil && !update.Type.Valid() {
		log.Error().Str("type", string(*update.Type)).Msg("invalid type in entry update")
		return models.FinancialEntry{}, ErrInvalidDataProvided
	}
	if update.Amount != nil && *update.Amount < 0 {
		log.Error().Float64("amount", *update.Amount).Msg("negative amount in entry update")
		return models.FinancialEntry{}, ErrInvalidDataProvided
	}
	if update.Description != nil && *update.Description == "" {
		log.Error().Int64("entryID", entryID).Msg("empty description in entry update")
		return models.FinancialEntry{}, ErrInvalidDataProvided
	}
	if update.RecurringFrequency != nil && !update.RecurringFrequency.Valid() {
		log.Error().Str("frequency", string(*update.RecurringFrequency)).Msg("invalid frequency in entry update")
		return models.FinancialEntry{}, ErrInvalidDataProvided
	}

	// a frequency exists only on a recurring entry, so the pair travels
	// together: turning recurrence off drops any frequency in the same
	// update, turning it on requires one, and a bare frequency change must
	// restate isRecurring
	if update.IsRecurring != nil {
		if *update.IsRecurring {
			if update.RecurringFrequency == nil {
				log.Error().Int64("entryID", entryID).Msg("recurring entry update without a frequency")
				return models.FinancialEntry{}, ErrInvalidDataProvided
			}
		} else {
			update.RecurringFrequency = nil
		}
	} else if update.RecurringFrequency != nil {
		log.Error().Int64("entryID", entryID).Msg("frequency update without the recurrence flag")
		return models.FinancialEntry{}, ErrInvalidDataProvided
	}

	updatedEntry, err := s.entryRepository.UpdateEntry(ctx, userID, entryID, update)
	if err != nil {
		log.Err(err).Int64("entryID", entryID).Msg("entry update ended with error")
		return models.FinancialEntry{}, fmt.Errorf("entry update ended with error: %w", err)
	}

	return updatedEntry, nil
}

// DeleteEntry removes one of the user's entries. Passes through
// store.ErrEntryNotFound when the entry does not exist or belongs to another
// user.
func (s *entryService) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	log := logger.FromContext(ctx)

	if err := s.entryRepository.DeleteEntry(ctx, userID, entryID); err != nil {
		log.Err(err).Int64("entryID", entryID).Msg("entry deletion ended with error")
		return fmt.Errorf("entry deletion ended with error: %w", err)
	}

	return nil
}

func normalizePage(page models.EntryPage) models.EntryPage {
	if page.Page < 1 {
		page.Page = defaultPage
	}
	if page.Limit < 1 {
		page.Limit = defaultLimit
	}
	if page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}
