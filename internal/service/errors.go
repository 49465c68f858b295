// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid email or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrAlreadyVerified = errors.New("account is already verified")
	ErrInvalidOtp      = errors.New("invalid verification code")
	ErrOtpExpired      = errors.New("verification code is expired")
)
