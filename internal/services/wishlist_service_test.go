package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

func setupWishlistService(t *testing.T) (*WishlistService, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &database.PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}
	return NewWishlistService(database.NewWishlistRepository(db)), mock
}

func TestWishlistServiceAdd_Success(t *testing.T) {
	svc, mock := setupWishlistService(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO wishlist_items").
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := svc.Add(userID, &models.AddWishlistItemRequest{
		DestinationID: "dest-42",
		Name:          "Kyoto",
		Image:         "https://img.example/kyoto.jpg",
		Description:   "Temples and gardens",
		Price:         1899.00,
	})
	require.NoError(t, err)

	assert.Equal(t, "dest-42", item.DestinationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistServiceAdd_AlreadySaved(t *testing.T) {
	svc, mock := setupWishlistService(t)

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Add(uuid.New(), &models.AddWishlistItemRequest{DestinationID: "dest-42"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistServiceRemove_NotFound(t *testing.T) {
	svc, mock := setupWishlistService(t)

	mock.ExpectExec("DELETE FROM wishlist_items").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Remove(uuid.New(), uuid.New())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistServiceCheckMany_CoversAllRequested(t *testing.T) {
	svc, mock := setupWishlistService(t)
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"destination_id"}).AddRow("dest-1")

	mock.ExpectQuery("SELECT destination_id").
		WillReturnRows(rows)

	status, err := svc.CheckMany(userID, []string{"dest-1", "dest-2"})
	require.NoError(t, err)

	// Every requested identifier is present, whether saved or not.
	assert.Equal(t, map[string]bool{"dest-1": true, "dest-2": false}, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistServiceCheckMany_Empty(t *testing.T) {
	svc, _ := setupWishlistService(t)

	status, err := svc.CheckMany(uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, status)
}
