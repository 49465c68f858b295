// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Email is the unique address the user registers and logs in with.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This value MUST never hold a plaintext password and is never
	// serialized to JSON.
	PasswordHash string `json:"-"`

	// Photo is an optional URL or data reference to the user's avatar.
	Photo string `json:"photo,omitempty"`

	// IsVerified reports whether the user has confirmed their email address.
	IsVerified bool `json:"isAccountVerified"`

	// VerifyOTP is the pending email verification code. Empty when no
	// verification is in flight. Never exposed via JSON.
	VerifyOTP string `json:"-"`

	// OTPExpiresAt is the moment the pending verification code stops being
	// accepted. Nil when no code is pending.
	OTPExpiresAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last profile mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
