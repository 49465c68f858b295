// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"fintrack/internal/logger"
	"fintrack/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, profile edits, and the email
// verification lifecycle against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads one users row into a [models.User], converting the nullable
// OTP columns.
func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var user models.User
	var otp sql.NullString
	var otpExpiresAt sql.NullTime

	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Photo,
		&user.IsVerified,
		&otp,
		&otpExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.VerifyOTP = otp.String
	if otpExpiresAt.Valid {
		expires := otpExpiresAt.Time
		user.OTPExpiresAt = &expires
	}

	return user, nil
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Name, user.Email, user.PasswordHash, user.Photo)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves the user record whose email matches (case
// insensitively) the given address.
//
// Error handling:
//   - sql.ErrNoRows → [ErrNoUserWasFound].
//   - Any other error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByEmail, email)

	foundUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error finding user by email")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// FindUserByID retrieves a user record by its primary key.
//
// Error handling mirrors [userRepository.FindUserByEmail].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	foundUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").Int64("user_id", userID).Msg("error finding user by id")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// UpdateProfile replaces the mutable profile fields (name, photo) of the
// user and returns the updated record.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, name, photo string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateProfile, userID, name, photo)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("error updating profile")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// SetVerificationCode stores a fresh one-time code with its expiry for the
// user, replacing any previous pending code.
func (r *userRepository) SetVerificationCode(ctx context.Context, userID int64, otp string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setVerificationCode, userID, otp, expiresAt)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetVerificationCode").Int64("user_id", userID).Msg("error storing verification code")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ConsumeVerificationCode atomically marks the user verified and clears the
// code fields. The UPDATE matches on both user_id and the code value, so a
// code can be consumed at most once: a second attempt with the same code
// matches no row and yields [ErrOTPNotConsumed].
func (r *userRepository) ConsumeVerificationCode(ctx context.Context, userID int64, otp string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, consumeVerificationCode, userID, otp)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ConsumeVerificationCode").Int64("user_id", userID).Msg("error consuming verification code")

		if r.db.errorClassificator.Classify(err) == Retryable {
			log.Warn().Int64("user_id", userID).Msg("transient DB error while consuming verification code")
		}

		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrOTPNotConsumed
	}

	return nil
}
