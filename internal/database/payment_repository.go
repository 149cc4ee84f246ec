package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

// PaymentRepository handles payment record database operations
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

const insertPaymentQuery = `
	INSERT INTO payments (
		id, transaction_id, package_id, user_name, user_email,
		travelers, departure_date, total_amount, payment_status,
		card_brand, card_last_four, payment_method, gateway_intent_id,
		refunds, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

func paymentInsertArgs(p *models.Payment) []interface{} {
	return []interface{}{
		p.ID,
		p.TransactionID,
		p.PackageID,
		p.UserName,
		p.UserEmail,
		p.Travelers,
		p.DepartureDate,
		p.TotalAmount,
		p.PaymentStatus,
		p.CardBrand,
		p.CardLastFour,
		p.PaymentMethod,
		p.GatewayIntentID,
		p.Refunds,
		p.CreatedAt,
		p.UpdatedAt,
	}
}

// Insert persists a new payment record. Returns ErrDuplicate when the
// transaction identifier has already been recorded.
func (r *PaymentRepository) Insert(payment *models.Payment) error {
	_, err := r.db.Exec(insertPaymentQuery, paymentInsertArgs(payment)...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// InsertTx persists a new payment record within an existing transaction
func (r *PaymentRepository) InsertTx(tx *sqlx.Tx, payment *models.Payment) error {
	_, err := tx.Exec(insertPaymentQuery, paymentInsertArgs(payment)...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

const selectPaymentColumns = `
	id, transaction_id, package_id, user_name, user_email,
	travelers, departure_date, total_amount, payment_status,
	card_brand, card_last_four, payment_method, gateway_intent_id,
	refunds, created_at, updated_at
`

// GetByTransactionID retrieves a payment by its gateway transaction
// identifier. Returns nil without error when no record exists.
func (r *PaymentRepository) GetByTransactionID(transactionID string) (*models.Payment, error) {
	var payment models.Payment

	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE transaction_id = $1`

	err := r.db.Get(&payment, query, transactionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// HistoryByEmail returns all payments for a user email, newest first
func (r *PaymentRepository) HistoryByEmail(email string) ([]models.Payment, error) {
	payments := []models.Payment{}

	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE user_email = $1 ORDER BY created_at DESC`

	if err := r.db.Select(&payments, query, email); err != nil {
		return nil, fmt.Errorf("failed to get payment history: %w", err)
	}

	return payments, nil
}

// MarkStatus moves a payment into the given status only when its
// current status is one of the allowed source states. Returns false
// when nothing was updated, which callers treat as "already in an
// absorbing state" once existence has been established.
func (r *PaymentRepository) MarkStatus(transactionID string, from []models.PaymentStatus, to models.PaymentStatus) (bool, error) {
	sources := make([]string, len(from))
	for i, s := range from {
		sources[i] = string(s)
	}

	query := `
		UPDATE payments
		SET payment_status = $1, updated_at = $2
		WHERE transaction_id = $3 AND payment_status = ANY($4)
	`

	result, err := r.db.Exec(query, to, time.Now(), transactionID, pq.Array(sources))
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// AppendRefund appends a refund sub-record and moves the payment from
// completed to refunded. Returns false when the payment is not in the
// completed state.
func (r *PaymentRepository) AppendRefund(transactionID string, refund models.Refund) (bool, error) {
	refundJSON, err := models.RefundList{refund}.Value()
	if err != nil {
		return false, fmt.Errorf("failed to encode refund: %w", err)
	}

	query := `
		UPDATE payments
		SET refunds = refunds || $1::jsonb,
		    payment_status = $2,
		    updated_at = $3
		WHERE transaction_id = $4 AND payment_status = $5
	`

	result, err := r.db.Exec(query, refundJSON, models.PaymentRefunded, time.Now(), transactionID, models.PaymentCompleted)
	if err != nil {
		return false, fmt.Errorf("failed to append refund: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}
