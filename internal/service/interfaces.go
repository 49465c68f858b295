package service

import (
	"context"

	"fintrack/models"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	Profile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, photo string) (models.User, error)

	SendVerificationCode(ctx context.Context, userID int64) error
	VerifyEmail(ctx context.Context, userID int64, otp string) error
}

type EntryService interface {
	AddEntry(ctx context.Context, entry models.FinancialEntry) (models.FinancialEntry, error)
	ListEntries(ctx context.Context, filter models.EntryFilter, page models.EntryPage) ([]models.FinancialEntry, models.Pagination, error)
	UpdateEntry(ctx context.Context, userID, entryID int64, update models.EntryUpdate) (models.FinancialEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID int64) error
}

type AnalyticsService interface {
	Analytics(ctx context.Context, filter models.EntryFilter) (models.Analytics, error)
}

type ExportService interface {
	ExportCSV(ctx context.Context, filter models.EntryFilter) ([]byte, error)
}
