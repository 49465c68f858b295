package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"fintrack/internal/logger"
	"fintrack/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(user models.User, now time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"user_id", "name", "email", "password_hash", "photo", "is_verified", "verify_otp", "otp_expires_at", "created_at", "updated_at"}).
		AddRow(user.UserID, user.Name, user.Email, user.PasswordHash, user.Photo, user.IsVerified, nil, nil, now, now)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		UserID:       1,
		Name:         "John",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$hash",
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.PasswordHash, user.Photo).
		WillReturnRows(userRows(user, time.Now()))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "dup@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{UserID: 7, Name: "Ann", Email: "ann@example.com", PasswordHash: "h"}

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(user.Email).
		WillReturnRows(userRows(user, time.Now()))

	found, err := repo.FindUserByEmail(context.Background(), user.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", found.UserID)
	}
}

func TestSetVerificationCode_UserMissing(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(99), "123456", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetVerificationCode(context.Background(), 99, "123456", time.Now().Add(10*time.Minute))
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestConsumeVerificationCode_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1), "123456").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ConsumeVerificationCode(context.Background(), 1, "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConsumeVerificationCode_SecondUseFails(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	// the first consume cleared verify_otp, so the second UPDATE matches
	// zero rows
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1), "123456").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ConsumeVerificationCode(context.Background(), 1, "123456")
	if !errors.Is(err, ErrOTPNotConsumed) {
		t.Fatalf("expected ErrOTPNotConsumed, got %v", err)
	}
}
