package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

var paymentColumns = []string{
	"id", "transaction_id", "package_id", "user_name", "user_email",
	"travelers", "departure_date", "total_amount", "payment_status",
	"card_brand", "card_last_four", "payment_method", "gateway_intent_id",
	"refunds", "created_at", "updated_at",
}

func testPayment() *models.Payment {
	now := time.Now()
	return &models.Payment{
		ID:              uuid.New(),
		TransactionID:   "pi_3Abc123",
		PackageID:       "pkg-7",
		UserName:        "Jamie Rivera",
		UserEmail:       "jamie@example.com",
		Travelers:       2,
		DepartureDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:     2400.00,
		PaymentStatus:   models.PaymentCompleted,
		CardBrand:       "visa",
		CardLastFour:    "4242",
		PaymentMethod:   "stripe",
		GatewayIntentID: "pi_3Abc123",
		Refunds:         models.RefundList{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestPaymentInsert_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewPaymentRepository(&PostgresDB{DB: db})

	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(testPayment()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentInsert_DuplicateTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewPaymentRepository(&PostgresDB{DB: db})

	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Insert(testPayment())
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentGetByTransactionID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewPaymentRepository(&PostgresDB{DB: db})
	p := testPayment()

	rows := sqlmock.NewRows(paymentColumns).AddRow(
		p.ID, p.TransactionID, p.PackageID, p.UserName, p.UserEmail,
		p.Travelers, p.DepartureDate, p.TotalAmount, p.PaymentStatus,
		p.CardBrand, p.CardLastFour, p.PaymentMethod, p.GatewayIntentID,
		[]byte("[]"), p.CreatedAt, p.UpdatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM payments").
		WithArgs(p.TransactionID).
		WillReturnRows(rows)

	payment, err := repo.GetByTransactionID(p.TransactionID)
	require.NoError(t, err)

	require.NotNil(t, payment)
	assert.Equal(t, p.TransactionID, payment.TransactionID)
	assert.Equal(t, models.PaymentCompleted, payment.PaymentStatus)
	assert.Empty(t, payment.Refunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentGetByTransactionID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewPaymentRepository(&PostgresDB{DB: db})

	mock.ExpectQuery("SELECT (.+) FROM payments").
		WillReturnRows(sqlmock.NewRows(paymentColumns))

	payment, err := repo.GetByTransactionID("pi_missing")
	require.NoError(t, err)
	assert.Nil(t, payment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentMarkStatus_AlreadySettled(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewPaymentRepository(&PostgresDB{DB: db})

	// A completed payment is not in the allowed source set, so the
	// update matches nothing.
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.MarkStatus("pi_3Abc123", []models.PaymentStatus{models.PaymentPending}, models.PaymentCompleted)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentAppendRefund(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewPaymentRepository(&PostgresDB{DB: db})

	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := repo.AppendRefund("pi_3Abc123", models.Refund{
		Amount:    500.00,
		Reason:    "trip cancelled",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentAppendRefund_NotCompleted(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()

	repo := NewPaymentRepository(&PostgresDB{DB: db})

	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := repo.AppendRefund("pi_3Abc123", models.Refund{Amount: 500.00})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
