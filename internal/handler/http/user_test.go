package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/service"
	"fintrack/models"
)

func TestProfile_Success(t *testing.T) {
	auth := &mockAuthService{
		profileFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{
				UserID:     userID,
				Name:       "Alice",
				Email:      "alice@example.com",
				IsVerified: true,
			}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil), 7)
	rec := httptest.NewRecorder()

	h.profile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"name": "Alice",
			"email": "alice@example.com",
			"isAccountVerified": true
		}
	}`, rec.Body.String())
}

func TestProfile_NoSession(t *testing.T) {
	h := newTestHandler(t, nil)

	// no user id in the context means the middleware never ran
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	rec := httptest.NewRecorder()

	h.profile(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfile_Success(t *testing.T) {
	auth := &mockAuthService{
		updateProfileFn: func(_ context.Context, userID int64, name, photo string) (models.User, error) {
			return models.User{UserID: userID, Name: name, Photo: photo}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	body := jsonBody(t, profileRequest{Name: "Alice B", Photo: "https://example.com/a.png"})
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/user/profile", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DataResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	auth := &mockAuthService{
		updateProfileFn: func(_ context.Context, userID int64, name, photo string) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	body := jsonBody(t, profileRequest{})
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/user/profile", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
