package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/models"
	"github.com/roamstay/travel-booking-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &database.PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}
	jwtService := jwt.NewService("test-secret", "test-refresh-secret", time.Hour, 7*24*time.Hour)

	svc := NewAuthService(
		database.NewUserRepository(db),
		database.NewUserSessionRepository(db),
		jwtService,
		bcrypt.MinCost,
		testLogger(),
	)

	return svc, mock
}

func TestSignup_Success(t *testing.T) {
	svc, mock := setupAuthService(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.Signup(&models.SignupRequest{
		Name:     "Jamie Rivera",
		Email:    "jamie@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "jamie@example.com", resp.User.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_ValidationErrors(t *testing.T) {
	svc, _ := setupAuthService(t)

	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{"short name", models.SignupRequest{Name: "Jo", Email: "jo@example.com", Password: "hunter22"}},
		{"bad email", models.SignupRequest{Name: "Jamie", Email: "not-an-email", Password: "hunter22"}},
		{"short password", models.SignupRequest{Name: "Jamie", Email: "jamie@example.com", Password: "1234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(&tt.req)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, mock := setupAuthService(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := svc.Signup(&models.SignupRequest{
		Name:     "Jamie Rivera",
		Email:    "jamie@example.com",
		Password: "hunter22",
	})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_Success(t *testing.T) {
	svc, mock := setupAuthService(t)
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(userID, "Jamie Rivera", "jamie@example.com", string(hash), now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("jamie@example.com").
		WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO user_sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.Login(&models.LoginRequest{
		Email:    "jamie@example.com",
		Password: "hunter22",
	}, "203.0.113.7", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mock := setupAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Jamie Rivera", "jamie@example.com", string(hash), now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(rows)

	_, err = svc.Login(&models.LoginRequest{
		Email:    "jamie@example.com",
		Password: "wrong-password",
	}, "203.0.113.7", "test-agent")
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, mock := setupAuthService(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Login(&models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	}, "203.0.113.7", "test-agent")

	// Same error shape as a wrong password: no account enumeration.
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_SessionInsertFailureDoesNotBlock(t *testing.T) {
	svc, mock := setupAuthService(t)
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(userID, "Jamie Rivera", "jamie@example.com", string(hash), now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO user_sessions").
		WillReturnError(errors.New("session insert failed"))

	resp, err := svc.Login(&models.LoginRequest{
		Email:    "jamie@example.com",
		Password: "hunter22",
	}, "203.0.113.7", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Refresh("not-a-jwt")
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestRefresh_Success(t *testing.T) {
	svc, mock := setupAuthService(t)
	userID := uuid.New()

	jwtService := jwt.NewService("test-secret", "test-refresh-secret", time.Hour, 7*24*time.Hour)
	refreshToken, err := jwtService.GenerateRefreshToken(userID, "jamie@example.com")
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(userID, "Jamie Rivera", "jamie@example.com", "$2a$04$hash", now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(userID).
		WillReturnRows(rows)

	resp, err := svc.Refresh(refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfile_NotFound(t *testing.T) {
	svc, mock := setupAuthService(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Profile(uuid.New())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
