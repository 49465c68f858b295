// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package config

import "time"

const (
	defaultHTTPAddress   = ":4000"
	defaultTokenIssuer   = "fintrack"
	defaultTokenDuration = 7 * 24 * time.Hour
	defaultOTPTTL        = 10 * time.Minute
)

// applyDefaults fills fields that remained zero after all sources were
// merged. Only values with a safe, documented default are touched; secrets
// and connection strings must always come from an explicit source.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = defaultTokenDuration
	}
	if cfg.Auth.OTPTTL == 0 {
		cfg.Auth.OTPTTL = defaultOTPTTL
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the application depends on at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	return nil
}
