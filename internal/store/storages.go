// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package store

import "fintrack/internal/logger"

// Storages bundles all repositories behind their interfaces so that the
// service layer receives a single constructor-injected dependency.
type Storages struct {
	UserRepository  UserRepository
	EntryRepository EntryRepository
}

// NewStorages wires all repositories to the shared database handle.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, logger),
		EntryRepository: NewEntryRepository(db, logger),
	}
}
