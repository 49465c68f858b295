package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
	})

	// session-scoped routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/send-otp", h.sendVerificationCode)
		r.Post("/api/auth/verify-email", h.verifyEmail)
		r.Get("/api/auth/is-auth", h.isAuth)

		r.Get("/api/user/profile", h.profile)
		r.Put("/api/user/profile", h.updateProfile)

		r.Post("/api/financial/entries", h.createEntry)
		r.Get("/api/financial/entries", h.listEntries)
		r.Put("/api/financial/entries/{entryID}", h.updateEntry)
		r.Delete("/api/financial/entries/{entryID}", h.deleteEntry)
		r.Get("/api/financial/analytics", h.analytics)
		r.Get("/api/financial/export", h.exportCSV)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
