// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The fintrack Authors

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/config"
	"fintrack/internal/logger"
	"fintrack/internal/notify"
	"fintrack/internal/store"
	"fintrack/internal/utils"
	"fintrack/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, the session JWT
// lifecycle, and the email verification flow. Passwords are stored as bcrypt
// digests; verification codes are six decimal digits drawn from crypto/rand.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mail is the queue the service publishes outbound email to. Delivery
	// happens in a separate worker process.
	mail notify.Publisher

	// tokenSignKey is the HMAC secret used to sign and verify session JWTs.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// otpTTL controls how long an issued verification code is accepted.
	otpTTL time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and mail queue, populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, mail notify.Publisher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		mail:           mail,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		otpTTL:         cfg.OTPTTL,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// It validates that name, email and password are non-empty, hashes the
// password with bcrypt, and delegates persistence to the UserRepository.
// A welcome email is queued after the account is created; a queue failure is
// logged but does not fail the registration.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if name, email or password is empty.
//   - A wrapped storage error if the repository call fails (e.g. email already
//     taken — see store.ErrEmailAlreadyExists).
func (a *authService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if name == "" || email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	go a.sendWelcomeMail(context.WithoutCancel(ctx), registeredUser)

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by email and compares the supplied password against
// the stored bcrypt digest. An unknown email and a wrong password both yield
// ErrInvalidCredentials so the response does not reveal which one failed.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Str("email", email).Msg("login attempt for unknown email")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Error().Int64("id", foundUser.UserID).Str("email", email).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed session JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw session JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Profile returns the stored account of the given user.
func (a *authService) Profile(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// UpdateProfile changes the display name and photo of the given user.
//
// Returns ErrInvalidDataProvided when the new name is empty; the photo may be
// cleared by passing an empty string.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, name, photo string) (models.User, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		log.Error().Int64("id", userID).Msg("empty name in profile update")
		return models.User{}, ErrInvalidDataProvided
	}

	updatedUser, err := a.userRepository.UpdateProfile(ctx, userID, name, photo)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updatedUser, nil
}

// SendVerificationCode issues a fresh email verification code for the user.
//
// A new six-digit code replaces any previous pending one and stays valid for
// otpTTL. Unlike the welcome mail, the code email is published synchronously:
// a code nobody receives is useless, so a queue failure fails the whole
// operation.
//
// Returns ErrAlreadyVerified when the account needs no verification.
func (a *authService) SendVerificationCode(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if foundUser.IsVerified {
		return ErrAlreadyVerified
	}

	otp, err := generateOTP()
	if err != nil {
		log.Err(err).Msg("verification code generation failed")
		return fmt.Errorf("verification code generation failed: %w", err)
	}

	expiresAt := time.Now().Add(a.otpTTL)
	if err := a.userRepository.SetVerificationCode(ctx, userID, otp, expiresAt); err != nil {
		log.Err(err).Int64("id", userID).Msg("storing verification code failed")
		return fmt.Errorf("storing verification code failed: %w", err)
	}

	msg := notify.NewMailMessage(
		foundUser.Email,
		"Account verification code",
		fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in %d minutes.\n", foundUser.Name, otp, int(a.otpTTL.Minutes())),
	)
	if err := a.mail.PublishMail(ctx, msg); err != nil {
		log.Err(err).Int64("id", userID).Msg("queueing verification mail failed")
		return fmt.Errorf("queueing verification mail failed: %w", err)
	}

	return nil
}

// VerifyEmail redeems a verification code for the user.
//
// The final consume is a conditional update keyed on the code value, so a
// code can be redeemed at most once even under concurrent requests.
//
// Returns:
//   - ErrInvalidDataProvided if otp is empty.
//   - ErrAlreadyVerified if the account needs no verification.
//   - ErrInvalidOtp if no code is pending, the code does not match, or a
//     concurrent request consumed it first.
//   - ErrOtpExpired if the pending code is past its expiry.
func (a *authService) VerifyEmail(ctx context.Context, userID int64, otp string) error {
	log := logger.FromContext(ctx)

	if otp == "" {
		log.Error().Int64("id", userID).Msg("empty verification code provided")
		return ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if foundUser.IsVerified {
		return ErrAlreadyVerified
	}
	if foundUser.VerifyOTP == "" || foundUser.VerifyOTP != otp {
		log.Error().Int64("id", userID).Msg("verification code mismatch")
		return ErrInvalidOtp
	}
	if foundUser.OTPExpiresAt == nil || time.Now().After(*foundUser.OTPExpiresAt) {
		log.Error().Int64("id", userID).Msg("verification code expired")
		return ErrOtpExpired
	}

	if err := a.userRepository.ConsumeVerificationCode(ctx, userID, otp); err != nil {
		if errors.Is(err, store.ErrOTPNotConsumed) {
			log.Error().Int64("id", userID).Msg("verification code already consumed")
			return ErrInvalidOtp
		}
		log.Err(err).Int64("id", userID).Msg("consuming verification code failed")
		return fmt.Errorf("consuming verification code failed: %w", err)
	}

	return nil
}

// sendWelcomeMail queues the post-registration greeting. It runs outside the
// request lifecycle and only logs failures.
func (a *authService) sendWelcomeMail(ctx context.Context, user models.User) {
	msg := notify.NewMailMessage(
		user.Email,
		"Welcome to fintrack",
		fmt.Sprintf("Hello %s,\n\nYour account has been created with the email %s.\n", user.Name, user.Email),
	)
	if err := a.mail.PublishMail(ctx, msg); err != nil {
		a.logger.Err(err).Int64("id", user.UserID).Msg("queueing welcome mail failed")
	}
}

// generateOTP draws a uniformly random six-digit decimal code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
