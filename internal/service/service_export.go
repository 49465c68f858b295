package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"fintrack/internal/logger"
	"fintrack/internal/store"
	"fintrack/models"
)

// csvHeader is the fixed first line of every export.
const csvHeader = "Date,Type,Category,Amount,Description,Tags"

// exportService is the concrete implementation of ExportService.
// It renders the user's entries to CSV, newest first, honouring the same
// filter criteria as the list endpoint but without pagination.
type exportService struct {
	entryRepository store.EntryRepository
	logger          *logger.Logger
}

func NewExportService(entryRepository store.EntryRepository, logger *logger.Logger) ExportService {
	return &exportService{
		entryRepository: entryRepository,
		logger:          logger,
	}
}

// ExportCSV returns the user's entries within the filter window as a CSV
// document. An empty result still yields the header line.
//
// Commas inside the description are replaced with semicolons and tags are
// joined with semicolons, keeping the column count stable without quoting.
func (s *exportService) ExportCSV(ctx context.Context, filter models.EntryFilter) ([]byte, error) {
	log := logger.FromContext(ctx)

	if filter.Type != "" && !filter.Type.Valid() {
		log.Error().Str("type", string(filter.Type)).Msg("invalid type filter provided")
		return nil, ErrInvalidDataProvided
	}

	entries, err := s.entryRepository.ListAllEntries(ctx, filter)
	if err != nil {
		log.Err(err).Int64("userID", filter.UserID).Msg("entry export ended with error")
		return nil, fmt.Errorf("entry export ended with error: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(csvHeader)
	buf.WriteByte('\n')

	for _, entry := range entries {
		buf.WriteString(entry.Date.Format("2006-01-02"))
		buf.WriteByte(',')
		buf.WriteString(string(entry.Type))
		buf.WriteByte(',')
		buf.WriteString(entry.Category)
		buf.WriteByte(',')
		buf.WriteString(strconv.FormatFloat(entry.Amount, 'f', -1, 64))
		buf.WriteByte(',')
		buf.WriteString(strings.ReplaceAll(entry.Description, ",", ";"))
		buf.WriteByte(',')
		buf.WriteString(strings.Join(entry.Tags, ";"))
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
