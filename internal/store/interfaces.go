package store

import (
	"context"
	"time"

	"fintrack/models"
)

// UserRepository is the data-access contract for user accounts and the email
// verification lifecycle.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, photo string) (models.User, error)

	// SetVerificationCode stores a fresh one-time code with its expiry for
	// the user, replacing any previous pending code.
	SetVerificationCode(ctx context.Context, userID int64, otp string, expiresAt time.Time) error

	// ConsumeVerificationCode atomically marks the user verified and clears
	// the code fields, but only if the stored code equals otp. Returns
	// ErrOTPNotConsumed when no row matched, leaving expiry inspection to
	// the caller.
	ConsumeVerificationCode(ctx context.Context, userID int64, otp string) error
}

// EntryRepository is the data-access contract for financial entries and the
// aggregations computed over them. Every operation is scoped to the owning
// user id carried in the arguments.
type EntryRepository interface {
	CreateEntry(ctx context.Context, entry models.FinancialEntry) (models.FinancialEntry, error)
	ListEntries(ctx context.Context, filter models.EntryFilter, page models.EntryPage) ([]models.FinancialEntry, int, error)
	ListAllEntries(ctx context.Context, filter models.EntryFilter) ([]models.FinancialEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID int64, update models.EntryUpdate) (models.FinancialEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) error

	// TotalsByType sums amounts per entry type within the filter window.
	TotalsByType(ctx context.Context, filter models.EntryFilter) (map[models.EntryType]float64, error)

	// CategoryTotals sums amounts per (type, category) pair within the
	// filter window.
	CategoryTotals(ctx context.Context, filter models.EntryFilter) ([]models.TypeCategoryTotal, error)

	// MonthlyTotals sums amounts per (year, month, type) group within the
	// filter window, ordered ascending by year then month.
	MonthlyTotals(ctx context.Context, filter models.EntryFilter) ([]models.MonthlyTrend, error)
}
