package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"fintrack/internal/logger"
	"fintrack/internal/service"
	"fintrack/internal/utils"
	"fintrack/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case; unset fields fall back
// to benign defaults.
type mockAuthService struct {
	registerFn      func(ctx context.Context, name, email, password string) (models.User, error)
	loginFn         func(ctx context.Context, email, password string) (models.User, error)
	createTokenFn   func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn    func(ctx context.Context, tokenString string) (models.Token, error)
	profileFn       func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn func(ctx context.Context, userID int64, name, photo string) (models.User, error)
	sendOTPFn       func(ctx context.Context, userID int64) error
	verifyEmailFn   func(ctx context.Context, userID int64, otp string) error
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, email, password)
	}
	return models.User{UserID: 1, Name: name, Email: email}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return models.User{UserID: 1, Email: email}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "stub.jwt.token"}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{UserID: 1}, nil
}

func (m *mockAuthService) Profile(ctx context.Context, userID int64) (models.User, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, name, photo string) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, name, photo)
	}
	return models.User{UserID: userID, Name: name, Photo: photo}, nil
}

func (m *mockAuthService) SendVerificationCode(ctx context.Context, userID int64) error {
	if m.sendOTPFn != nil {
		return m.sendOTPFn(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, userID int64, otp string) error {
	if m.verifyEmailFn != nil {
		return m.verifyEmailFn(ctx, userID, otp)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock EntryService / AnalyticsService / ExportService
// ─────────────────────────────────────────────

type mockEntryService struct {
	addFn    func(ctx context.Context, entry models.FinancialEntry) (models.FinancialEntry, error)
	listFn   func(ctx context.Context, filter models.EntryFilter, page models.EntryPage) ([]models.FinancialEntry, models.Pagination, error)
	updateFn func(ctx context.Context, userID, entryID int64, update models.EntryUpdate) (models.FinancialEntry, error)
	deleteFn func(ctx context.Context, userID, entryID int64) error
}

func (m *mockEntryService) AddEntry(ctx context.Context, entry models.FinancialEntry) (models.FinancialEntry, error) {
	if m.addFn != nil {
		return m.addFn(ctx, entry)
	}
	entry.EntryID = 1
	return entry, nil
}

func (m *mockEntryService) ListEntries(ctx context.Context, filter models.EntryFilter, page models.EntryPage) ([]models.FinancialEntry, models.Pagination, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, page)
	}
	return nil, models.Pagination{}, nil
}

func (m *mockEntryService) UpdateEntry(ctx context.Context, userID, entryID int64, update models.EntryUpdate) (models.FinancialEntry, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, entryID, update)
	}
	return models.FinancialEntry{EntryID: entryID, UserID: userID}, nil
}

func (m *mockEntryService) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, entryID)
	}
	return nil
}

type mockAnalyticsService struct {
	analyticsFn func(ctx context.Context, filter models.EntryFilter) (models.Analytics, error)
}

func (m *mockAnalyticsService) Analytics(ctx context.Context, filter models.EntryFilter) (models.Analytics, error) {
	if m.analyticsFn != nil {
		return m.analyticsFn(ctx, filter)
	}
	return models.Analytics{}, nil
}

type mockExportService struct {
	exportFn func(ctx context.Context, filter models.EntryFilter) ([]byte, error)
}

func (m *mockExportService) ExportCSV(ctx context.Context, filter models.EntryFilter) ([]byte, error) {
	if m.exportFn != nil {
		return m.exportFn(ctx, filter)
	}
	return []byte("Date,Type,Category,Amount,Description,Tags\n"), nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given service mocks; nil mocks
// are replaced with defaults so tests only define what they assert on.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs == nil {
		svcs = &service.Services{}
	}
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.EntryService == nil {
		svcs.EntryService = &mockEntryService{}
	}
	if svcs.AnalyticsService == nil {
		svcs.AnalyticsService = &mockAnalyticsService{}
	}
	if svcs.ExportService == nil {
		svcs.ExportService = &mockExportService{}
	}
	return NewHandler(svcs, logger.Nop())
}

// asUser attaches an authenticated user id to the request context the way
// the auth middleware would.
func asUser(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	return r.WithContext(ctx)
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// decodeBody unmarshals the recorded response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// sessionCookie returns the session cookie from the recorded response, or
// nil when none was set.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == models.SessionCookieName {
			return c
		}
	}
	return nil
}
