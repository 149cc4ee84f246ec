package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

// BookingRepository handles booking database operations
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{
		db: db,
	}
}

const insertBookingQuery = `
	INSERT INTO bookings (id, user_id, destination, package_name, departure_date, travelers, total_amount, status, booking_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Insert persists a new booking
func (r *BookingRepository) Insert(booking *models.Booking) error {
	_, err := r.db.Exec(
		insertBookingQuery,
		booking.ID,
		booking.UserID,
		booking.Destination,
		booking.PackageName,
		booking.DepartureDate,
		booking.Travelers,
		booking.TotalAmount,
		booking.Status,
		booking.BookingDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

// InsertTx persists a new booking within an existing transaction
func (r *BookingRepository) InsertTx(tx *sqlx.Tx, booking *models.Booking) error {
	_, err := tx.Exec(
		insertBookingQuery,
		booking.ID,
		booking.UserID,
		booking.Destination,
		booking.PackageName,
		booking.DepartureDate,
		booking.Travelers,
		booking.TotalAmount,
		booking.Status,
		booking.BookingDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

// ListByUser returns the user's bookings in insertion order
func (r *BookingRepository) ListByUser(userID uuid.UUID) ([]models.Booking, error) {
	bookings := []models.Booking{}

	query := `
		SELECT id, user_id, destination, package_name, departure_date, travelers, total_amount, status, booking_date
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date ASC
	`

	if err := r.db.Select(&bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

// GetByID retrieves one of the user's bookings. Returns nil without
// error when the booking does not exist or belongs to another user.
func (r *BookingRepository) GetByID(userID, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking

	query := `
		SELECT id, user_id, destination, package_name, departure_date, travelers, total_amount, status, booking_date
		FROM bookings
		WHERE id = $1 AND user_id = $2
	`

	err := r.db.Get(&booking, query, bookingID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// Update applies the non-nil fields of the partial update and returns
// the updated booking, or nil when the booking does not exist for the
// user.
func (r *BookingRepository) Update(userID, bookingID uuid.UUID, destination, packageName *string, departureDate *time.Time, travelers *int, totalAmount *float64) (*models.Booking, error) {
	setClauses := []string{}
	args := []interface{}{}
	argPos := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if destination != nil {
		addClause("destination", *destination)
	}
	if packageName != nil {
		addClause("package_name", *packageName)
	}
	if departureDate != nil {
		addClause("departure_date", *departureDate)
	}
	if travelers != nil {
		addClause("travelers", *travelers)
	}
	if totalAmount != nil {
		addClause("total_amount", *totalAmount)
	}

	if len(setClauses) == 0 {
		return r.GetByID(userID, bookingID)
	}

	query := fmt.Sprintf(`
		UPDATE bookings
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, destination, package_name, departure_date, travelers, total_amount, status, booking_date
	`, strings.Join(setClauses, ", "), argPos, argPos+1)
	args = append(args, bookingID, userID)

	var booking models.Booking
	err := r.db.Get(&booking, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return &booking, nil
}

// Cancel sets the booking status to cancelled. The update is applied
// unconditionally, so cancelling an already-cancelled booking is a
// no-op rather than an error. Returns false when the booking does not
// exist for the user.
func (r *BookingRepository) Cancel(userID, bookingID uuid.UUID) (bool, error) {
	query := `UPDATE bookings SET status = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, models.BookingCancelled, bookingID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}
