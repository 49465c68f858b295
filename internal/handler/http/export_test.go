package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/service"
	"fintrack/models"
)

func TestExportCSV_Success(t *testing.T) {
	export := &mockExportService{
		exportFn: func(_ context.Context, filter models.EntryFilter) ([]byte, error) {
			return []byte("Date,Type,Category,Amount,Description,Tags\n2024-03-15,expense,Food,12.5,lunch,work\n"), nil
		},
	}
	h := newTestHandler(t, &service.Services{ExportService: export})

	req := httptest.NewRequest(http.MethodGet, "/api/financial/export", nil)
	rec := serveSession(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=financial_data.csv", rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "2024-03-15,expense,Food")
}

func TestExportCSV_TypeFilterForwarded(t *testing.T) {
	var gotFilter models.EntryFilter
	export := &mockExportService{
		exportFn: func(_ context.Context, filter models.EntryFilter) ([]byte, error) {
			gotFilter = filter
			return []byte("Date,Type,Category,Amount,Description,Tags\n"), nil
		},
	}
	h := newTestHandler(t, &service.Services{ExportService: export})

	req := httptest.NewRequest(http.MethodGet, "/api/financial/export?type=income", nil)
	serveSession(t, h, req)

	assert.Equal(t, models.EntryTypeIncome, gotFilter.Type)
}

func TestExportCSV_ServiceError(t *testing.T) {
	export := &mockExportService{
		exportFn: func(_ context.Context, filter models.EntryFilter) ([]byte, error) {
			return nil, errors.New("connection reset")
		},
	}
	h := newTestHandler(t, &service.Services{ExportService: export})

	req := httptest.NewRequest(http.MethodGet, "/api/financial/export", nil)
	rec := serveSession(t, h, req)

	// errors still come back as JSON, not a half-written CSV
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
