package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/models"
	"github.com/roamstay/travel-booking-backend/pkg/gateway"
)

// PaymentService orchestrates the payment gateway, payment records and
// booking creation. The record lifecycle is
// intent_created -> completed (-> refunded), with failed reachable
// from intent_created; completed, failed and refunded absorb repeated
// gateway events.
type PaymentService struct {
	db          database.DB
	paymentRepo *database.PaymentRepository
	bookingRepo *database.BookingRepository
	userRepo    *database.UserRepository
	gateway     gateway.PaymentGateway
	currency    string
	logger      *logrus.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	db database.DB,
	paymentRepo *database.PaymentRepository,
	bookingRepo *database.BookingRepository,
	userRepo *database.UserRepository,
	gw gateway.PaymentGateway,
	currency string,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		db:          db,
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		gateway:     gw,
		currency:    currency,
		logger:      logger,
	}
}

// CreateIntent asks the gateway for a hosted payment intent. The
// package and traveler details ride along as metadata for
// reconciliation on the gateway side.
func (s *PaymentService) CreateIntent(ctx context.Context, req *models.CreateIntentRequest) (*gateway.Intent, error) {
	if req.Amount <= 0 {
		return nil, apperrors.Validation("amount must be a positive integer of minor currency units")
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}

	intent, err := s.gateway.CreateIntent(ctx, &gateway.IntentRequest{
		AmountMinorUnits: req.Amount,
		Currency:         currency,
		Description:      fmt.Sprintf("Travel package: %s", req.Package.Name),
		Metadata: map[string]string{
			"package_id":     req.Package.ID,
			"package_name":   req.Package.Name,
			"user_email":     req.BookingInfo.Email,
			"travelers":      strconv.Itoa(req.BookingInfo.Travelers),
			"departure_date": req.BookingInfo.DepartureDate,
		},
	})
	if err != nil {
		return nil, apperrors.Gateway("failed to create payment intent", err)
	}

	s.logger.WithFields(logrus.Fields{
		"intent_id":  intent.ID,
		"amount":     req.Amount,
		"currency":   currency,
		"package_id": req.Package.ID,
	}).Info("Payment intent created")

	return intent, nil
}

// ConfirmAndRecord persists a completed payment record after the
// client-side gateway confirmation, then appends a booking for the
// paying user. When the user exists both writes happen in one database
// transaction. When the user cannot be found by email the payment
// still stands as completed and the miss is logged, not returned: the
// money has moved either way.
func (s *PaymentService) ConfirmAndRecord(ctx context.Context, req *models.SavePaymentRequest) (*models.Payment, error) {
	if req.BookingInfo.DepartureDate == "" {
		return nil, apperrors.Validation("departure date is required")
	}
	departureDate, err := ParseDepartureDate(req.BookingInfo.DepartureDate)
	if err != nil {
		return nil, apperrors.Validation("invalid departure date: %s", req.BookingInfo.DepartureDate)
	}
	if req.BookingInfo.Travelers <= 0 {
		return nil, apperrors.Validation("travelers must be a positive integer")
	}

	totalAmount := req.Package.Price * float64(req.BookingInfo.Travelers)
	now := time.Now()

	payment := &models.Payment{
		ID:              uuid.New(),
		TransactionID:   req.TransactionID,
		PackageID:       req.Package.ID,
		UserName:        req.BookingInfo.Name,
		UserEmail:       req.BookingInfo.Email,
		Travelers:       req.BookingInfo.Travelers,
		DepartureDate:   departureDate,
		TotalAmount:     totalAmount,
		PaymentStatus:   models.PaymentCompleted,
		CardBrand:       req.CardBrand,
		CardLastFour:    req.CardLastFour,
		PaymentMethod:   s.gateway.Name(),
		GatewayIntentID: req.TransactionID,
		Refunds:         models.RefundList{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	user, err := s.userRepo.GetUserByEmail(req.BookingInfo.Email)
	if err != nil {
		return nil, apperrors.Server("failed to look up user", err)
	}

	if user == nil {
		// Known asymmetry: the charge succeeded, so the record is kept
		// even though no booking can be attached.
		if err := s.paymentRepo.Insert(payment); err != nil {
			if err == database.ErrDuplicate {
				return nil, apperrors.Conflict("payment already recorded for transaction %s", req.TransactionID)
			}
			return nil, apperrors.Server("failed to save payment", err)
		}
		s.logger.WithFields(logrus.Fields{
			"transaction_id": req.TransactionID,
			"email":          req.BookingInfo.Email,
		}).Error("Payment recorded but no user found for booking creation")
		return payment, nil
	}

	booking := &models.Booking{
		ID:            uuid.New(),
		UserID:        user.ID,
		Destination:   req.Package.Name,
		PackageName:   req.Package.Name,
		DepartureDate: departureDate,
		Travelers:     req.BookingInfo.Travelers,
		TotalAmount:   totalAmount,
		Status:        models.BookingConfirmed,
		BookingDate:   now,
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, apperrors.Server("failed to begin transaction", err)
	}

	if err := s.paymentRepo.InsertTx(tx, payment); err != nil {
		tx.Rollback()
		if err == database.ErrDuplicate {
			return nil, apperrors.Conflict("payment already recorded for transaction %s", req.TransactionID)
		}
		return nil, apperrors.Server("failed to save payment", err)
	}

	if err := s.bookingRepo.InsertTx(tx, booking); err != nil {
		tx.Rollback()
		return nil, apperrors.Server("failed to create booking for payment", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Server("failed to commit payment", err)
	}

	s.logger.WithFields(logrus.Fields{
		"transaction_id": req.TransactionID,
		"user_id":        user.ID,
		"booking_id":     booking.ID,
		"total_amount":   totalAmount,
	}).Info("Payment recorded and booking created")

	return payment, nil
}

// HandleGatewayEvent applies an asynchronous gateway notification to
// the payment record. Delivery is at-least-once, so transitions are a
// monotone merge: a succeeded event against an already-completed
// record is a no-op, and nothing moves out of failed or refunded.
func (s *PaymentService) HandleGatewayEvent(event *gateway.Event) error {
	if event == nil || event.Type == gateway.EventUnhandled {
		return nil
	}

	payment, err := s.paymentRepo.GetByTransactionID(event.IntentID)
	if err != nil {
		return apperrors.Server("failed to look up payment", err)
	}
	if payment == nil {
		// Events can arrive before the synchronous save-payment call
		// creates the record; there is nothing to update yet.
		s.logger.WithField("intent_id", event.IntentID).Info("Gateway event for unknown payment, ignoring")
		return nil
	}

	var target models.PaymentStatus
	switch event.Type {
	case gateway.EventPaymentSucceeded:
		target = models.PaymentCompleted
	case gateway.EventPaymentFailed:
		target = models.PaymentFailed
	default:
		return nil
	}

	if payment.PaymentStatus == target {
		return nil
	}

	updated, err := s.paymentRepo.MarkStatus(event.IntentID, []models.PaymentStatus{models.PaymentPending}, target)
	if err != nil {
		return apperrors.Server("failed to update payment status", err)
	}
	if !updated {
		// Already in an absorbing state; duplicate or late delivery.
		s.logger.WithFields(logrus.Fields{
			"intent_id": event.IntentID,
			"status":    payment.PaymentStatus,
			"event":     event.Type,
		}).Info("Gateway event ignored for settled payment")
		return nil
	}

	s.logger.WithFields(logrus.Fields{
		"intent_id": event.IntentID,
		"status":    target,
	}).Info("Payment status updated from gateway event")

	return nil
}

// Refund returns money against a completed payment and appends a
// refund sub-record.
func (s *PaymentService) Refund(ctx context.Context, transactionID string, req *models.RefundRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, apperrors.Validation("refund amount must be positive")
	}

	payment, err := s.paymentRepo.GetByTransactionID(transactionID)
	if err != nil {
		return nil, apperrors.Server("failed to look up payment", err)
	}
	if payment == nil {
		return nil, apperrors.NotFound("payment not found")
	}
	if payment.PaymentStatus != models.PaymentCompleted {
		return nil, apperrors.Conflict("payment is %s, only completed payments can be refunded", payment.PaymentStatus)
	}
	if req.Amount > payment.TotalAmount {
		return nil, apperrors.Validation("refund amount exceeds payment total")
	}

	// Round rather than truncate: float-represented amounts like 19.99
	// sit a hair below 1999 minor units.
	amountMinor := int64(math.Round(req.Amount * 100))
	if err := s.gateway.Refund(ctx, payment.GatewayIntentID, amountMinor); err != nil {
		return nil, apperrors.Gateway("failed to refund payment", err)
	}

	applied, err := s.paymentRepo.AppendRefund(transactionID, models.Refund{
		Amount:    req.Amount,
		Reason:    req.Reason,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, apperrors.Server("failed to record refund", err)
	}
	if !applied {
		return nil, apperrors.Conflict("payment was settled concurrently")
	}

	s.logger.WithFields(logrus.Fields{
		"transaction_id": transactionID,
		"amount":         req.Amount,
	}).Info("Payment refunded")

	return s.paymentRepo.GetByTransactionID(transactionID)
}

// History returns all payments for a user email, newest first
func (s *PaymentService) History(email string) ([]models.Payment, error) {
	payments, err := s.paymentRepo.HistoryByEmail(email)
	if err != nil {
		return nil, apperrors.Server("failed to get payment history", err)
	}
	return payments, nil
}

// GetByTransactionID returns a single payment record
func (s *PaymentService) GetByTransactionID(transactionID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByTransactionID(transactionID)
	if err != nil {
		return nil, apperrors.Server("failed to get payment", err)
	}
	if payment == nil {
		return nil, apperrors.NotFound("payment not found")
	}
	return payment, nil
}
