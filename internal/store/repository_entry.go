package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fintrack/internal/logger"
	"fintrack/models"
)

// entryRepository is the PostgreSQL-backed implementation of
// [EntryRepository]. It executes all financial-entry CRUD operations and the
// analytics aggregations directly against the "financial_entries" table
// using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, entry_id, filter criteria).
type entryRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntryRepository constructs an [EntryRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	logger.Debug().Msg("creating entry repository")
	return &entryRepository{
		DB:     db,
		logger: logger,
	}
}

// marshalTags serializes the tag set into its JSONB column representation.
// A nil slice is stored as an empty array, never as SQL NULL.
func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

// scanEntry reads one financial_entries row into a [models.FinancialEntry],
// decoding the JSONB tags column and the nullable recurrence frequency.
func scanEntry(row interface{ Scan(...any) error }) (models.FinancialEntry, error) {
	var entry models.FinancialEntry
	var tagsRaw []byte
	var frequency sql.NullString

	err := row.Scan(
		&entry.EntryID,
		&entry.UserID,
		&entry.Type,
		&entry.Category,
		&entry.Amount,
		&entry.Description,
		&entry.Date,
		&tagsRaw,
		&entry.IsRecurring,
		&frequency,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return models.FinancialEntry{}, err
	}

	if err := json.Unmarshal(tagsRaw, &entry.Tags); err != nil {
		return models.FinancialEntry{}, fmt.Errorf("decoding tags: %w", err)
	}
	if frequency.Valid {
		f := models.RecurringFrequency(frequency.String)
		entry.RecurringFrequency = &f
	}

	return entry, nil
}

// CreateEntry persists a new financial entry and returns the fully populated
// record with server-assigned fields (EntryID, CreatedAt, UpdatedAt).
func (r *entryRepository) CreateEntry(ctx context.Context, entry models.FinancialEntry) (models.FinancialEntry, error) {
	log := logger.FromContext(ctx)

	tagsJSON, err := marshalTags(entry.Tags)
	if err != nil {
		return models.FinancialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var frequency any
	if entry.RecurringFrequency != nil {
		frequency = string(*entry.RecurringFrequency)
	}

	row := r.DB.QueryRowContext(ctx, createEntry,
		entry.UserID,
		entry.Type,
		entry.Category,
		entry.Amount,
		entry.Description,
		entry.Date,
		tagsJSON,
		entry.IsRecurring,
		frequency,
	)

	created, err := scanEntry(row)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.CreateEntry").
			Int64("user_id", entry.UserID).
			Msg("error creating financial entry")
		return models.FinancialEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// ListEntries retrieves one page of the user's entries matching the filter,
// sorted by date descending, together with the total count of matching rows
// for pagination metadata.
func (r *entryRepository) ListEntries(ctx context.Context, filter models.EntryFilter, page models.EntryPage) ([]models.FinancialEntry, int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListEntriesQuery(filter, page)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.ListEntries").
			Int64("user_id", filter.UserID).
			Msg("failed to build list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entries, err := r.queryEntries(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := buildCountEntriesQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "*entryRepository.ListEntries").
			Int64("user_id", filter.UserID).
			Msg("failed to count matching entries")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entries, total, nil
}

// ListAllEntries retrieves every entry matching the filter without
// pagination, sorted by date descending. Used by the CSV export.
func (r *entryRepository) ListAllEntries(ctx context.Context, filter models.EntryFilter) ([]models.FinancialEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAllEntriesQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.ListAllEntries").
			Int64("user_id", filter.UserID).
			Msg("failed to build export query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntries(ctx, query, args)
}

// queryEntries runs an entry SELECT and scans all rows.
func (r *entryRepository) queryEntries(ctx context.Context, query string, args []any) ([]models.FinancialEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.queryEntries").Msg("failed to execute entry query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.FinancialEntry, 0, 10)

	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*entryRepository.queryEntries").Msg("failed to scan entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*entryRepository.queryEntries").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// UpdateEntry applies a partial update to the entry identified by
// (entryID, userID) and returns the updated record.
//
// Returns [ErrEntryNotFound] both when the entry does not exist and when it
// belongs to another user; callers cannot distinguish the two cases.
func (r *entryRepository) UpdateEntry(ctx context.Context, userID, entryID int64, update models.EntryUpdate) (models.FinancialEntry, error) {
	log := logger.FromContext(ctx)

	var tagsJSON []byte
	if update.Tags != nil {
		var err error
		tagsJSON, err = marshalTags(*update.Tags)
		if err != nil {
			return models.FinancialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
	}

	query, args, err := buildUpdateEntryQuery(userID, entryID, update, tagsJSON)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.UpdateEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to build update query")
		return models.FinancialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)

	updated, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FinancialEntry{}, ErrEntryNotFound
		}

		log.Err(err).
			Str("func", "*entryRepository.UpdateEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("error updating financial entry")
		return models.FinancialEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// DeleteEntry removes the entry identified by (entryID, userID).
//
// Returns [ErrEntryNotFound] when no row matched, covering both a missing
// entry and one owned by another user.
func (r *entryRepository) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteEntry, entryID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.DeleteEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("error deleting financial entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// TotalsByType sums amounts per entry type within the filter window.
// Types with no matching entries are absent from the result map.
func (r *entryRepository) TotalsByType(ctx context.Context, filter models.EntryFilter) (map[models.EntryType]float64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTotalsByTypeQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.TotalsByType").
			Int64("user_id", filter.UserID).
			Msg("failed to execute totals query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	totals := make(map[models.EntryType]float64, 4)

	for rows.Next() {
		var entryType models.EntryType
		var total float64
		if scanErr := rows.Scan(&entryType, &total); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		totals[entryType] = total
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return totals, nil
}

// CategoryTotals sums amounts per (type, category) pair within the filter
// window, ordered by type then category.
func (r *entryRepository) CategoryTotals(ctx context.Context, filter models.EntryFilter) ([]models.TypeCategoryTotal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCategoryTotalsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.CategoryTotals").
			Int64("user_id", filter.UserID).
			Msg("failed to execute category totals query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	totals := make([]models.TypeCategoryTotal, 0, 10)

	for rows.Next() {
		var row models.TypeCategoryTotal
		if scanErr := rows.Scan(&row.Type, &row.Category, &row.Total); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		totals = append(totals, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return totals, nil
}

// MonthlyTotals sums amounts per (year, month, type) group within the filter
// window, ordered ascending by year then month.
func (r *entryRepository) MonthlyTotals(ctx context.Context, filter models.EntryFilter) ([]models.MonthlyTrend, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildMonthlyTotalsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*entryRepository.MonthlyTotals").
			Int64("user_id", filter.UserID).
			Msg("failed to execute monthly totals query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	trends := make([]models.MonthlyTrend, 0, 12)

	for rows.Next() {
		var trend models.MonthlyTrend
		if scanErr := rows.Scan(&trend.Year, &trend.Month, &trend.Type, &trend.Total); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		trends = append(trends, trend)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return trends, nil
}
