package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

// UserSessionRepository records login sessions with device information
type UserSessionRepository struct {
	db DB
}

// NewUserSessionRepository creates a new user session repository
func NewUserSessionRepository(db DB) *UserSessionRepository {
	return &UserSessionRepository{
		db: db,
	}
}

// RecordLogin inserts a session row for a successful login
func (r *UserSessionRepository) RecordLogin(userID uuid.UUID, deviceType, os, browser, ipAddress, userAgent string) (*models.UserSession, error) {
	session := &models.UserSession{
		ID:          uuid.New(),
		UserID:      userID,
		DeviceType:  deviceType,
		OS:          os,
		Browser:     browser,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		LastLoginAt: time.Now(),
	}

	query := `
		INSERT INTO user_sessions (id, user_id, device_type, os, browser, ip_address, user_agent, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		query,
		session.ID,
		session.UserID,
		session.DeviceType,
		session.OS,
		session.Browser,
		session.IPAddress,
		session.UserAgent,
		session.LastLoginAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record login session: %w", err)
	}

	return session, nil
}

// GetByUser returns the sessions for a user, newest first
func (r *UserSessionRepository) GetByUser(userID uuid.UUID) ([]models.UserSession, error) {
	sessions := []models.UserSession{}

	query := `
		SELECT id, user_id, device_type, os, browser, ip_address, user_agent, last_login_at
		FROM user_sessions
		WHERE user_id = $1
		ORDER BY last_login_at DESC
	`

	if err := r.db.Select(&sessions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	return sessions, nil
}
