package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"fintrack/internal/logger"
	"fintrack/models"
)

func newTestEntryRepo(t *testing.T) (*entryRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &entryRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func entryRows(entries ...models.FinancialEntry) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"entry_id", "user_id", "type", "category", "amount", "description",
		"date", "tags", "is_recurring", "recurring_frequency", "created_at", "updated_at",
	})
	now := time.Now()
	for _, e := range entries {
		rows.AddRow(e.EntryID, e.UserID, string(e.Type), e.Category, e.Amount, e.Description,
			e.Date, []byte(`["lunch"]`), e.IsRecurring, nil, now, now)
	}
	return rows
}

func TestCreateEntry_Success(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	entry := models.FinancialEntry{
		EntryID:     1,
		UserID:      42,
		Type:        models.EntryTypeExpense,
		Category:    "Food",
		Amount:      50,
		Description: "Lunch",
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"lunch"},
	}

	mock.ExpectQuery("INSERT INTO financial_entries").
		WithArgs(entry.UserID, string(entry.Type), entry.Category, entry.Amount,
			entry.Description, entry.Date, sqlmock.AnyArg(), entry.IsRecurring, nil).
		WillReturnRows(entryRows(entry))

	created, err := repo.CreateEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.EntryID != 1 {
		t.Errorf("expected EntryID=1, got %d", created.EntryID)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "lunch" {
		t.Errorf("expected tags decoded from JSONB, got %v", created.Tags)
	}
}

func TestListEntries_ReturnsPageAndTotal(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	filter := models.EntryFilter{UserID: 42, Type: models.EntryTypeExpense}
	page := models.EntryPage{Page: 1, Limit: 10}

	first := models.FinancialEntry{EntryID: 2, UserID: 42, Type: models.EntryTypeExpense, Category: "Food", Amount: 50, Date: time.Now()}
	second := models.FinancialEntry{EntryID: 1, UserID: 42, Type: models.EntryTypeExpense, Category: "Rent", Amount: 900, Date: time.Now().Add(-time.Hour)}

	mock.ExpectQuery("SELECT (.+) FROM financial_entries").
		WithArgs(int64(42), string(models.EntryTypeExpense)).
		WillReturnRows(entryRows(first, second))

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(42), string(models.EntryTypeExpense)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	entries, total, err := repo.ListEntries(context.Background(), filter, page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
	if total != 12 {
		t.Errorf("expected total=12, got %d", total)
	}
}

func TestUpdateEntry_NotOwned(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	category := "Travel"
	update := models.EntryUpdate{Category: &category}

	mock.ExpectQuery("UPDATE financial_entries").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateEntry(context.Background(), 42, 7, update)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestDeleteEntry_NotOwned(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM financial_entries").
		WithArgs(int64(7), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteEntry(context.Background(), 42, 7)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestDeleteEntry_Success(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM financial_entries").
		WithArgs(int64(7), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteEntry(context.Background(), 42, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTotalsByType(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT type").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"type", "total"}).
			AddRow("income", 3000.0).
			AddRow("expense", 1200.0))

	totals, err := repo.TotalsByType(context.Background(), models.EntryFilter{UserID: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals[models.EntryTypeIncome] != 3000 {
		t.Errorf("expected income total 3000, got %v", totals[models.EntryTypeIncome])
	}
	if totals[models.EntryTypeExpense] != 1200 {
		t.Errorf("expected expense total 1200, got %v", totals[models.EntryTypeExpense])
	}
}

func TestMonthlyTotals_PreservesRowOrder(t *testing.T) {
	repo, mock, db := newTestEntryRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXTRACT").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"year", "month", "type", "total"}).
			AddRow(2024, 1, "income", 3000.0).
			AddRow(2024, 2, "income", 3100.0))

	trends, err := repo.MonthlyTotals(context.Background(), models.EntryFilter{UserID: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("expected 2 trend rows, got %d", len(trends))
	}
	if trends[0].Month != 1 || trends[1].Month != 2 {
		t.Errorf("expected chronological order, got %+v", trends)
	}
}
