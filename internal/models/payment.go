package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the gateway-facing state of a payment record.
// completed, failed and refunded are absorbing with respect to webhook
// re-delivery; only pending accepts a succeeded/failed transition and
// only completed accepts refunded.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Refund is a sub-record appended to a payment when money is returned
type Refund struct {
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RefundList stores refund sub-records as a JSONB column
type RefundList []Refund

// Value implements the driver.Valuer interface
func (l RefundList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(RefundList{})
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *RefundList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	bytes, ok := src.([]byte)
	if !ok {
		return errors.New("refunds column is not a byte slice")
	}
	return json.Unmarshal(bytes, l)
}

// Payment is the persisted record of a processed charge, keyed by the
// gateway transaction identifier. Rows are never deleted.
type Payment struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	TransactionID   string        `json:"transaction_id" db:"transaction_id"`
	PackageID       string        `json:"package_id" db:"package_id"`
	UserName        string        `json:"user_name" db:"user_name"`
	UserEmail       string        `json:"user_email" db:"user_email"`
	Travelers       int           `json:"travelers" db:"travelers"`
	DepartureDate   time.Time     `json:"departure_date" db:"departure_date"`
	TotalAmount     float64       `json:"total_amount" db:"total_amount"`
	PaymentStatus   PaymentStatus `json:"payment_status" db:"payment_status"`
	CardBrand       string        `json:"card_brand" db:"card_brand"`
	CardLastFour    string        `json:"card_last_four" db:"card_last_four"`
	PaymentMethod   string        `json:"payment_method" db:"payment_method"`
	GatewayIntentID string        `json:"gateway_intent_id" db:"gateway_intent_id"`
	Refunds         RefundList    `json:"refunds" db:"refunds"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// PackageSnapshot is the client's view of the package being purchased,
// echoed through intent creation and payment confirmation.
type PackageSnapshot struct {
	ID    string  `json:"id" binding:"required"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BookingInfo carries the traveler details attached to a payment
type BookingInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email" binding:"required"`
	Travelers     int    `json:"travelers" binding:"required"`
	DepartureDate string `json:"departure_date"`
}

// CreateIntentRequest is the payload for POST /api/payments/create-payment-intent.
// Amount is an integer count of minor currency units.
type CreateIntentRequest struct {
	Amount      int64           `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	Package     PackageSnapshot `json:"package" binding:"required"`
	BookingInfo BookingInfo     `json:"booking_info" binding:"required"`
}

// SavePaymentRequest is the payload for POST /api/payments/save-payment,
// sent after the client-side card confirmation reports success.
type SavePaymentRequest struct {
	TransactionID string          `json:"transaction_id" binding:"required"`
	Package       PackageSnapshot `json:"package" binding:"required"`
	BookingInfo   BookingInfo     `json:"booking_info" binding:"required"`
	CardBrand     string          `json:"card_brand"`
	CardLastFour  string          `json:"card_last_four"`
}

// RefundRequest is the payload for POST /api/payments/:transactionId/refund
type RefundRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Reason string  `json:"reason"`
}
