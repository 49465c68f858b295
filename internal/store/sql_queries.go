package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"fintrack/models"
)

const (
	userColumns = `user_id, name, email, password_hash, photo, is_verified, verify_otp, otp_expires_at, created_at, updated_at`

	entryColumns = `entry_id, user_id, type, category, amount, description, date, tags, is_recurring, recurring_frequency, created_at, updated_at`

	createUser = `INSERT INTO users (name, email, password_hash, photo)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE LOWER(email) = LOWER($1);`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	updateProfile = `UPDATE users
    SET name = $2, photo = $3, updated_at = NOW()
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	setVerificationCode = `UPDATE users
    SET verify_otp = $2, otp_expires_at = $3, updated_at = NOW()
    WHERE user_id = $1;`

	// The code value sits in the WHERE clause so that a concurrent consume
	// of the same code can succeed at most once.
	consumeVerificationCode = `UPDATE users
    SET is_verified = TRUE, verify_otp = NULL, otp_expires_at = NULL, updated_at = NOW()
    WHERE user_id = $1 AND verify_otp = $2;`

	createEntry = `INSERT INTO financial_entries (user_id, type, category, amount, description, date, tags, is_recurring, recurring_frequency)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING ` + entryColumns + `;`

	deleteEntry = `DELETE FROM financial_entries
    WHERE entry_id = $1 AND user_id = $2;`
)

// psql is the shared squirrel builder configured for PostgreSQL $N
// placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// entryFilterConds translates an [models.EntryFilter] into squirrel
// conditions. UserID is always present; the remaining criteria are applied
// only when set.
func entryFilterConds(filter models.EntryFilter) sq.And {
	conds := sq.And{sq.Eq{"user_id": filter.UserID}}

	if filter.Type != "" {
		conds = append(conds, sq.Eq{"type": filter.Type})
	}
	if filter.Category != "" {
		conds = append(conds, sq.Eq{"category": filter.Category})
	}
	if filter.StartDate != nil {
		conds = append(conds, sq.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		conds = append(conds, sq.LtOrEq{"date": *filter.EndDate})
	}

	return conds
}

// buildListEntriesQuery builds the paginated entry list query, newest first.
func buildListEntriesQuery(filter models.EntryFilter, page models.EntryPage) (string, []any, error) {
	return psql.
		Select(entryColumns).
		From("financial_entries").
		Where(entryFilterConds(filter)).
		OrderBy("date DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
}

// buildListAllEntriesQuery builds the unpaginated variant used by the CSV
// export, newest first.
func buildListAllEntriesQuery(filter models.EntryFilter) (string, []any, error) {
	return psql.
		Select(entryColumns).
		From("financial_entries").
		Where(entryFilterConds(filter)).
		OrderBy("date DESC").
		ToSql()
}

// buildCountEntriesQuery builds the total-count query matching the same
// filter as the list query; the pair feeds pagination metadata.
func buildCountEntriesQuery(filter models.EntryFilter) (string, []any, error) {
	return psql.
		Select("COUNT(*)").
		From("financial_entries").
		Where(entryFilterConds(filter)).
		ToSql()
}

// buildUpdateEntryQuery builds a partial UPDATE touching only the fields set
// in update, scoped to (entryID, userID), returning the updated row.
func buildUpdateEntryQuery(userID, entryID int64, update models.EntryUpdate, tagsJSON []byte) (string, []any, error) {
	builder := psql.
		Update("financial_entries").
		Set("updated_at", sq.Expr("NOW()"))

	if update.Type != nil {
		builder = builder.Set("type", *update.Type)
	}
	if update.Category != nil {
		builder = builder.Set("category", *update.Category)
	}
	if update.Amount != nil {
		builder = builder.Set("amount", *update.Amount)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Date != nil {
		builder = builder.Set("date", *update.Date)
	}
	if update.Tags != nil {
		builder = builder.Set("tags", tagsJSON)
	}
	if update.IsRecurring != nil {
		builder = builder.Set("is_recurring", *update.IsRecurring)
	}
	// recurring_frequency is assigned at most once: turning recurrence off
	// wins over any frequency carried in the same update
	switch {
	case update.IsRecurring != nil && !*update.IsRecurring:
		builder = builder.Set("recurring_frequency", nil)
	case update.RecurringFrequency != nil:
		builder = builder.Set("recurring_frequency", *update.RecurringFrequency)
	}

	return builder.
		Where(sq.Eq{"entry_id": entryID, "user_id": userID}).
		Suffix(fmt.Sprintf("RETURNING %s", entryColumns)).
		ToSql()
}

// buildTotalsByTypeQuery builds the summary aggregation: summed amount per
// entry type within the filter window.
func buildTotalsByTypeQuery(filter models.EntryFilter) (string, []any, error) {
	return psql.
		Select("type", "COALESCE(SUM(amount), 0)").
		From("financial_entries").
		Where(entryFilterConds(filter)).
		GroupBy("type").
		ToSql()
}

// buildCategoryTotalsQuery builds the two-level breakdown aggregation:
// summed amount per (type, category) pair.
func buildCategoryTotalsQuery(filter models.EntryFilter) (string, []any, error) {
	return psql.
		Select("type", "category", "COALESCE(SUM(amount), 0)").
		From("financial_entries").
		Where(entryFilterConds(filter)).
		GroupBy("type", "category").
		OrderBy("type", "category").
		ToSql()
}

// buildMonthlyTotalsQuery builds the trend aggregation: summed amount per
// (year, month, type) group in chronological order.
func buildMonthlyTotalsQuery(filter models.EntryFilter) (string, []any, error) {
	return psql.
		Select(
			"EXTRACT(YEAR FROM date)::int AS year",
			"EXTRACT(MONTH FROM date)::int AS month",
			"type",
			"COALESCE(SUM(amount), 0)",
		).
		From("financial_entries").
		Where(entryFilterConds(filter)).
		GroupBy("year", "month", "type").
		OrderBy("year ASC", "month ASC").
		ToSql()
}
