package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

// departureDateLayouts are the accepted departure date formats, tried
// in order.
var departureDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseDepartureDate parses an ISO departure date string
func ParseDepartureDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range departureDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// BookingService manages a user's trip bookings
type BookingService struct {
	bookingRepo *database.BookingRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo *database.BookingRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
	}
}

// Create constructs a confirmed booking and persists it
func (s *BookingService) Create(userID uuid.UUID, req *models.CreateBookingRequest) (*models.Booking, error) {
	departureDate, err := ParseDepartureDate(req.DepartureDate)
	if err != nil {
		return nil, apperrors.Validation("invalid departure date: %s", req.DepartureDate)
	}
	if req.Travelers <= 0 {
		return nil, apperrors.Validation("travelers must be a positive integer")
	}
	if req.TotalAmount < 0 {
		return nil, apperrors.Validation("total amount cannot be negative")
	}

	booking := &models.Booking{
		ID:            uuid.New(),
		UserID:        userID,
		Destination:   req.Destination,
		PackageName:   req.PackageName,
		DepartureDate: departureDate,
		Travelers:     req.Travelers,
		TotalAmount:   req.TotalAmount,
		Status:        models.BookingConfirmed,
		BookingDate:   time.Now(),
	}

	if err := s.bookingRepo.Insert(booking); err != nil {
		return nil, apperrors.Server("failed to create booking", err)
	}
	booking.Upcoming = booking.IsUpcoming(time.Now())

	return booking, nil
}

// List returns all bookings for the user in insertion order. Splitting
// into upcoming and completed is left to the caller.
func (s *BookingService) List(userID uuid.UUID) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.Server("failed to list bookings", err)
	}

	now := time.Now()
	for i := range bookings {
		bookings[i].Upcoming = bookings[i].IsUpcoming(now)
	}
	return bookings, nil
}

// Get returns one of the user's bookings
func (s *BookingService) Get(userID, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(userID, bookingID)
	if err != nil {
		return nil, apperrors.Server("failed to get booking", err)
	}
	if booking == nil {
		return nil, apperrors.NotFound("booking not found")
	}
	booking.Upcoming = booking.IsUpcoming(time.Now())
	return booking, nil
}

// Update applies a partial update. Only recognized booking fields are
// applied; anything else in the payload never reaches this layer.
func (s *BookingService) Update(userID, bookingID uuid.UUID, req *models.UpdateBookingRequest) (*models.Booking, error) {
	if req.IsEmpty() {
		return s.Get(userID, bookingID)
	}

	var departureDate *time.Time
	if req.DepartureDate != nil {
		parsed, err := ParseDepartureDate(*req.DepartureDate)
		if err != nil {
			return nil, apperrors.Validation("invalid departure date: %s", *req.DepartureDate)
		}
		departureDate = &parsed
	}
	if req.Travelers != nil && *req.Travelers <= 0 {
		return nil, apperrors.Validation("travelers must be a positive integer")
	}
	if req.TotalAmount != nil && *req.TotalAmount < 0 {
		return nil, apperrors.Validation("total amount cannot be negative")
	}

	booking, err := s.bookingRepo.Update(userID, bookingID, req.Destination, req.PackageName, departureDate, req.Travelers, req.TotalAmount)
	if err != nil {
		return nil, apperrors.Server("failed to update booking", err)
	}
	if booking == nil {
		return nil, apperrors.NotFound("booking not found")
	}
	booking.Upcoming = booking.IsUpcoming(time.Now())

	return booking, nil
}

// Cancel moves the booking to cancelled. Cancelling twice leaves the
// booking cancelled both times.
func (s *BookingService) Cancel(userID, bookingID uuid.UUID) (*models.Booking, error) {
	cancelled, err := s.bookingRepo.Cancel(userID, bookingID)
	if err != nil {
		return nil, apperrors.Server("failed to cancel booking", err)
	}
	if !cancelled {
		return nil, apperrors.NotFound("booking not found")
	}

	booking, err := s.bookingRepo.GetByID(userID, bookingID)
	if err != nil {
		return nil, apperrors.Server("failed to get booking", err)
	}
	if booking == nil {
		return nil, apperrors.NotFound("booking not found")
	}
	booking.Upcoming = booking.IsUpcoming(time.Now())

	return booking, nil
}
