// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package http

import (
	"net/http"
	"time"

	"fintrack/internal/logger"
	"fintrack/internal/service"
	"fintrack/models"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// setSessionCookie places the signed session token into the HTTP-only cookie
// the browser sends back on subsequent requests. The cookie lives exactly as
// long as the token itself.
func setSessionCookie(w http.ResponseWriter, token models.Token) {
	maxAge := 0
	if token.Token != nil {
		if exp, err := token.Token.Claims.GetExpirationTime(); err == nil && exp != nil {
			maxAge = int(time.Until(exp.Time).Seconds())
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie overwrites the session cookie with an expired empty one.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
