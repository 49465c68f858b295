package http

import "errors"

// Sentinel errors used by the authentication middleware when inspecting the
// session cookie. Callers can match against them with [errors.Is].
var (
	// ErrNoSessionCookie is returned when the incoming request carries no
	// session cookie at all.
	ErrNoSessionCookie = errors.New("no session cookie")

	// ErrEmptySessionCookie is returned when the session cookie is present
	// but holds an empty value.
	ErrEmptySessionCookie = errors.New("empty session cookie")
)
