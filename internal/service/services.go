package service

import (
	"fintrack/internal/config"
	"fintrack/internal/logger"
	"fintrack/internal/notify"
	"fintrack/internal/store"
)

type Services struct {
	AuthService      AuthService
	EntryService     EntryService
	AnalyticsService AnalyticsService
	ExportService    ExportService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, mail notify.Publisher, logger *logger.Logger) *Services {
	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg.Auth, mail, logger),
		EntryService:     NewEntryService(storages.EntryRepository, logger),
		AnalyticsService: NewAnalyticsService(storages.EntryRepository, logger),
		ExportService:    NewExportService(storages.EntryRepository, logger),
	}
}
