package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

// WishlistRepository handles wishlist item database operations
type WishlistRepository struct {
	db DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db DB) *WishlistRepository {
	return &WishlistRepository{
		db: db,
	}
}

// Add inserts a wishlist item. Returns ErrDuplicate when the user has
// already saved the destination.
func (r *WishlistRepository) Add(userID uuid.UUID, destinationID, name, imageURL, description string, price float64) (*models.WishlistItem, error) {
	item := &models.WishlistItem{
		ID:            uuid.New(),
		UserID:        userID,
		DestinationID: destinationID,
		Name:          name,
		ImageURL:      imageURL,
		Description:   description,
		Price:         price,
		AddedAt:       time.Now(),
	}

	query := `
		INSERT INTO wishlist_items (id, user_id, destination_id, name, image_url, description, price, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		query,
		item.ID,
		item.UserID,
		item.DestinationID,
		item.Name,
		item.ImageURL,
		item.Description,
		item.Price,
		item.AddedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return item, nil
}

// ListByUser returns the user's wishlist in insertion order
func (r *WishlistRepository) ListByUser(userID uuid.UUID) ([]models.WishlistItem, error) {
	items := []models.WishlistItem{}

	query := `
		SELECT id, user_id, destination_id, name, image_url, description, price, added_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY added_at ASC
	`

	if err := r.db.Select(&items, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}

	return items, nil
}

// Remove deletes a wishlist item by its identifier. Returns false when
// the item does not exist for the user.
func (r *WishlistRepository) Remove(userID, itemID uuid.UUID) (bool, error) {
	query := `DELETE FROM wishlist_items WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, itemID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// Contains reports whether the user has saved the destination
func (r *WishlistRepository) Contains(userID uuid.UUID, destinationID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND destination_id = $2)`

	if err := r.db.Get(&exists, query, userID, destinationID); err != nil {
		return false, fmt.Errorf("failed to check wishlist item: %w", err)
	}

	return exists, nil
}

// ContainsAny returns the subset of destinationIDs present in the
// user's wishlist. One query regardless of how many identifiers the
// client asks about.
func (r *WishlistRepository) ContainsAny(userID uuid.UUID, destinationIDs []string) ([]string, error) {
	found := []string{}
	if len(destinationIDs) == 0 {
		return found, nil
	}

	query := `
		SELECT destination_id
		FROM wishlist_items
		WHERE user_id = $1 AND destination_id = ANY($2)
	`

	if err := r.db.Select(&found, query, userID, pq.Array(destinationIDs)); err != nil {
		return nil, fmt.Errorf("failed to check wishlist items: %w", err)
	}

	return found, nil
}
