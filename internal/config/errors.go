package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when no database DSN was supplied
	// by any configuration source.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: database DSN is required")

	// ErrInvalidAuthConfigs is returned when the session token signing key
	// is missing. The server cannot issue or verify sessions without it.
	ErrInvalidAuthConfigs = errors.New("invalid auth configs: token sign key is required")
)
