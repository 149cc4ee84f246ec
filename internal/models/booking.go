package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a trip reservation owned by a user. Status only ever moves
// confirmed -> cancelled.
type Booking struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	UserID        uuid.UUID     `json:"-" db:"user_id"`
	Destination   string        `json:"destination" db:"destination"`
	PackageName   string        `json:"package_name" db:"package_name"`
	DepartureDate time.Time     `json:"departure_date" db:"departure_date"`
	Travelers     int           `json:"travelers" db:"travelers"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	Status        BookingStatus `json:"status" db:"status"`
	BookingDate   time.Time     `json:"booking_date" db:"booking_date"`

	// Upcoming is derived from DepartureDate when the booking is read;
	// it is never stored.
	Upcoming bool `json:"upcoming" db:"-"`
}

// IsUpcoming reports whether the trip departs after the given instant.
// Upcoming vs completed is a read-time projection, not stored state.
func (b *Booking) IsUpcoming(now time.Time) bool {
	return b.DepartureDate.After(now)
}

// CreateBookingRequest is the payload for POST /api/bookings
type CreateBookingRequest struct {
	Destination   string  `json:"destination" binding:"required"`
	PackageName   string  `json:"package_name" binding:"required"`
	DepartureDate string  `json:"departure_date" binding:"required"`
	Travelers     int     `json:"travelers" binding:"required"`
	TotalAmount   float64 `json:"total_amount"`
}

// UpdateBookingRequest carries the partial update for PUT
// /api/bookings/:bookingId. Only fields present in the payload are
// applied; fields that are not booking attributes are dropped by the
// JSON decoder.
type UpdateBookingRequest struct {
	Destination   *string  `json:"destination"`
	PackageName   *string  `json:"package_name"`
	DepartureDate *string  `json:"departure_date"`
	Travelers     *int     `json:"travelers"`
	TotalAmount   *float64 `json:"total_amount"`
}

// IsEmpty reports whether the update carries no recognized fields
func (r *UpdateBookingRequest) IsEmpty() bool {
	return r.Destination == nil && r.PackageName == nil && r.DepartureDate == nil &&
		r.Travelers == nil && r.TotalAmount == nil
}
