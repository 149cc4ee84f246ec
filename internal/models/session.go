package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSession records the device a user logged in from. One row is
// written per successful login; purely informational.
type UserSession struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	DeviceType  string    `json:"device_type" db:"device_type"`
	OS          string    `json:"os" db:"os"`
	Browser     string    `json:"browser" db:"browser"`
	IPAddress   string    `json:"ip_address" db:"ip_address"`
	UserAgent   string    `json:"user_agent" db:"user_agent"`
	LastLoginAt time.Time `json:"last_login_at" db:"last_login_at"`
}
