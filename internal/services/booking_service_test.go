package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

func setupBookingService(t *testing.T) (*BookingService, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &database.PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}
	return NewBookingService(database.NewBookingRepository(db)), mock
}

func TestParseDepartureDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"rfc3339", "2026-10-01T00:00:00Z", false},
		{"date only", "2026-10-01", false},
		{"garbage", "next tuesday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDepartureDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingCreate_Success(t *testing.T) {
	svc, mock := setupBookingService(t)
	userID := uuid.New()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking, err := svc.Create(userID, &models.CreateBookingRequest{
		Destination:   "Bali",
		PackageName:   "Bali Escape",
		DepartureDate: "2026-10-01",
		Travelers:     2,
		TotalAmount:   2400.00,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, userID, booking.UserID)
	assert.False(t, booking.BookingDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreate_InvalidInput(t *testing.T) {
	svc, _ := setupBookingService(t)
	userID := uuid.New()

	tests := []struct {
		name string
		req  models.CreateBookingRequest
	}{
		{"bad date", models.CreateBookingRequest{DepartureDate: "soon", Travelers: 2}},
		{"zero travelers", models.CreateBookingRequest{DepartureDate: "2026-10-01", Travelers: 0}},
		{"negative amount", models.CreateBookingRequest{DepartureDate: "2026-10-01", Travelers: 2, TotalAmount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(userID, &tt.req)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestBookingList_FlagsUpcomingTrips(t *testing.T) {
	svc, mock := setupBookingService(t)
	userID := uuid.New()
	now := time.Now()

	columns := []string{
		"id", "user_id", "destination", "package_name", "departure_date",
		"travelers", "total_amount", "status", "booking_date",
	}
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New(), userID, "Bali", "Bali Escape", now.Add(72*time.Hour), 2, 2400.00, models.BookingConfirmed, now).
			AddRow(uuid.New(), userID, "Kyoto", "Kyoto Week", now.Add(-72*time.Hour), 1, 1800.00, models.BookingConfirmed, now.Add(-30*24*time.Hour)))

	bookings, err := svc.List(userID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.True(t, bookings[0].Upcoming)
	assert.False(t, bookings[1].Upcoming)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdate_NoFieldsReturnsCurrent(t *testing.T) {
	svc, mock := setupBookingService(t)
	userID := uuid.New()
	bookingID := uuid.New()
	now := time.Now()

	columns := []string{
		"id", "user_id", "destination", "package_name", "departure_date",
		"travelers", "total_amount", "status", "booking_date",
	}
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(bookingID, userID, "Bali", "Bali Escape", now.Add(72*time.Hour), 2, 2400.00, models.BookingConfirmed, now))

	booking, err := svc.Update(userID, bookingID, &models.UpdateBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, bookingID, booking.ID)
	assert.Equal(t, "Bali", booking.Destination)
	// No UPDATE was issued for an empty payload.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGet_NotFound(t *testing.T) {
	svc, mock := setupBookingService(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(uuid.New(), uuid.New())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdate_InvalidTravelers(t *testing.T) {
	svc, _ := setupBookingService(t)

	travelers := -1
	_, err := svc.Update(uuid.New(), uuid.New(), &models.UpdateBookingRequest{Travelers: &travelers})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestBookingCancel_Success(t *testing.T) {
	svc, mock := setupBookingService(t)
	userID := uuid.New()
	bookingID := uuid.New()

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "destination", "package_name", "departure_date",
		"travelers", "total_amount", "status", "booking_date",
	}).AddRow(bookingID, userID, "Bali", "Bali Escape", time.Now(), 2, 2400.00, models.BookingCancelled, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(rows)

	booking, err := svc.Cancel(userID, bookingID)
	require.NoError(t, err)

	assert.Equal(t, models.BookingCancelled, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCancel_NotFound(t *testing.T) {
	svc, mock := setupBookingService(t)

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.Cancel(uuid.New(), uuid.New())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
