package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/logger"
	"fintrack/models"
)

func newTestExportService(repo *mockEntryRepository) ExportService {
	return NewExportService(repo, logger.Nop())
}

func TestExportService_EmptyExport(t *testing.T) {
	svc := newTestExportService(&mockEntryRepository{})

	csv, err := svc.ExportCSV(context.Background(), models.EntryFilter{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Date,Type,Category,Amount,Description,Tags\n", string(csv))
}

func TestExportService_RowFormatting(t *testing.T) {
	repo := &mockEntryRepository{
		listAllFn: func(ctx context.Context, filter models.EntryFilter) ([]models.FinancialEntry, error) {
			return []models.FinancialEntry{
				{
					Type:        models.EntryTypeExpense,
					Category:    "Food",
					Amount:      1234.5,
					Description: "lunch, with friends",
					Date:        time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
					Tags:        []string{"work", "lunch"},
				},
			}, nil
		},
	}
	svc := newTestExportService(repo)

	csv, err := svc.ExportCSV(context.Background(), models.EntryFilter{UserID: 1})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(csv), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-03-15,expense,Food,1234.5,lunch; with friends,work;lunch", lines[1])
}

func TestExportService_RowCountMatchesEntries(t *testing.T) {
	repo := &mockEntryRepository{
		listAllFn: func(ctx context.Context, filter models.EntryFilter) ([]models.FinancialEntry, error) {
			entries := make([]models.FinancialEntry, 17)
			for i := range entries {
				entries[i] = models.FinancialEntry{
					Type:     models.EntryTypeIncome,
					Category: "Salary",
					Amount:   100,
					Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				}
			}
			return entries, nil
		},
	}
	svc := newTestExportService(repo)

	csv, err := svc.ExportCSV(context.Background(), models.EntryFilter{UserID: 1})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(csv), "\n"), "\n")
	assert.Len(t, lines, 18) // header + one line per entry
}

func TestExportService_StorageError(t *testing.T) {
	repo := &mockEntryRepository{
		listAllFn: func(ctx context.Context, filter models.EntryFilter) ([]models.FinancialEntry, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestExportService(repo)

	_, err := svc.ExportCSV(context.Background(), models.EntryFilter{UserID: 1})
	assert.Error(t, err)
}

func TestExportService_InvalidTypeFilter(t *testing.T) {
	svc := newTestExportService(&mockEntryRepository{})

	_, err := svc.ExportCSV(context.Background(), models.EntryFilter{UserID: 1, Type: "loan"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
