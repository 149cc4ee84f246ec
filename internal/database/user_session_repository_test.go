package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRecordLogin(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewUserSessionRepository(&PostgresDB{DB: db})
	userID := uuid.New()

	mock.ExpectExec("INSERT INTO user_sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	session, err := repo.RecordLogin(userID, "Desktop", "macOS", "Firefox", "203.0.113.9", "Mozilla/5.0")
	require.NoError(t, err)

	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "Desktop", session.DeviceType)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.False(t, session.LastLoginAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionGetByUser(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewUserSessionRepository(&PostgresDB{DB: db})
	userID := uuid.New()
	now := time.Now()

	columns := []string{
		"id", "user_id", "device_type", "os", "browser",
		"ip_address", "user_agent", "last_login_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM user_sessions").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New(), userID, "Mobile", "Android", "Chrome", "198.51.100.4", "Mozilla/5.0", now).
			AddRow(uuid.New(), userID, "Desktop", "macOS", "Firefox", "203.0.113.9", "Mozilla/5.0", now.Add(-24*time.Hour)))

	sessions, err := repo.GetByUser(userID)
	require.NoError(t, err)

	require.Len(t, sessions, 2)
	assert.Equal(t, "Mobile", sessions[0].DeviceType)
	assert.Equal(t, "Desktop", sessions[1].DeviceType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionGetByUser_Empty(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewUserSessionRepository(&PostgresDB{DB: db})
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM user_sessions").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sessions, err := repo.GetByUser(userID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}
