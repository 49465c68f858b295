package service

import (
	"context"
	"fmt"
	"math"

	"fintrack/internal/logger"
	"fintrack/internal/store"
	"fintrack/models"
)

// analyticsService is the concrete implementation of AnalyticsService.
// It combines the three store aggregations into one Analytics value; nothing
// is cached, every call recomputes from the persisted entries.
type analyticsService struct {
	entryRepository store.EntryRepository
	logger          *logger.Logger
}

func NewAnalyticsService(entryRepository store.EntryRepository, logger *logger.Logger) AnalyticsService {
	return &analyticsService{
		entryRepository: entryRepository,
		logger:          logger,
	}
}

// Analytics computes the summary totals, per-category breakdown and monthly
// trends over the user's entries within the optional filter window.
func (s *analyticsService) Analytics(ctx context.Context, filter models.EntryFilter) (models.Analytics, error) {
	log := logger.FromContext(ctx)

	if filter.Type != "" && !filter.Type.Valid() {
		log.Error().Str("type", string(filter.Type)).Msg("invalid type filter provided")
		return models.Analytics{}, ErrInvalidDataProvided
	}

	totals, err := s.entryRepository.TotalsByType(ctx, filter)
	if err != nil {
		log.Err(err).Int64("userID", filter.UserID).Msg("summary aggregation ended with error")
		return models.Analytics{}, fmt.Errorf("summary aggregation ended with error: %w", err)
	}

	categoryTotals, err := s.entryRepository.CategoryTotals(ctx, filter)
	if err != nil {
		log.Err(err).Int64("userID", filter.UserID).Msg("category aggregation ended with error")
		return models.Analytics{}, fmt.Errorf("category aggregation ended with error: %w", err)
	}

	trends, err := s.entryRepository.MonthlyTotals(ctx, filter)
	if err != nil {
		log.Err(err).Int64("userID", filter.UserID).Msg("monthly aggregation ended with error")
		return models.Analytics{}, fmt.Errorf("monthly aggregation ended with error: %w", err)
	}
	if trends == nil {
		trends = []models.MonthlyTrend{}
	}

	return models.Analytics{
		Summary:           summarize(totals),
		CategoryBreakdown: groupByType(categoryTotals),
		MonthlyTrends:     trends,
	}, nil
}

// summarize derives the headline totals from the per-type sums.
// SavingsRate is defined as exactly 0 when there is no income, so the value
// is never NaN or infinite.
func summarize(totals map[models.EntryType]float64) models.Summary {
	income := totals[models.EntryTypeIncome]
	expense := totals[models.EntryTypeExpense]
	net := income - expense

	var rate float64
	if income > 0 {
		rate = math.Round(net/income*100*100) / 100
	}

	return models.Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		NetIncome:    net,
		SavingsRate:  rate,
	}
}

// groupByType folds the flat (type, category, total) rows into one breakdown
// per type. Rows arrive sorted by type then category, so a type's categories
// are always consecutive.
func groupByType(rows []models.TypeCategoryTotal) []models.CategoryBreakdown {
	breakdowns := []models.CategoryBreakdown{}

	for _, row := range rows {
		n := len(breakdowns)
		if n == 0 || breakdowns[n-1].Type != row.Type {
			breakdowns = append(breakdowns, models.CategoryBreakdown{Type: row.Type})
			n++
		}
		breakdowns[n-1].Categories = append(breakdowns[n-1].Categories, models.CategoryTotal{
			Category: row.Category,
			Total:    row.Total,
		})
	}

	return breakdowns
}
