// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package http

import (
	"context"
	"net/http"

	"fintrack/internal/logger"
	"fintrack/internal/service"
	"fintrack/internal/utils"
	"fintrack/models"
)

// auth is an HTTP middleware that enforces session-cookie authentication.
//
// It reads the session cookie, validates the signed token via
// [service.AuthService.ParseToken], and on success stores the authenticated
// user's ID in the request context under [utils.UserIDCtxKey] before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - the session cookie is absent ([ErrNoSessionCookie]);
//   - the cookie value is empty ([ErrEmptySessionCookie]);
//   - the token is expired, forged, or otherwise invalid
//     ([service.ErrTokenIsExpiredOrInvalid]).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(models.SessionCookieName)
		if err != nil {
			log.Err(ErrNoSessionCookie).Send()
			utils.WriteJSON(w, models.MessageResponse{Message: "Not authorized, please log in"}, http.StatusUnauthorized)
			return
		}
		if cookie.Value == "" {
			log.Err(ErrEmptySessionCookie).Send()
			utils.WriteJSON(w, models.MessageResponse{Message: "Not authorized, please log in"}, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, cookie.Value)
		if err != nil {
			log.Err(err).Msg("session token rejected")
			utils.WriteJSON(w, models.MessageResponse{Message: service.ErrTokenIsExpiredOrInvalid.Error()}, http.StatusUnauthorized)
			return
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
