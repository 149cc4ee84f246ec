package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is a saved-for-later catalog entry. At most one item per
// (user, destination) pair; the unique index on
// wishlist_items(user_id, destination_id) backs the check in the service.
type WishlistItem struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"-" db:"user_id"`
	DestinationID string    `json:"destination_id" db:"destination_id"`
	Name          string    `json:"name" db:"name"`
	ImageURL      string    `json:"image" db:"image_url"`
	Description   string    `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	AddedAt       time.Time `json:"added_at" db:"added_at"`
}

// AddWishlistItemRequest is the payload for POST /api/wishlist
type AddWishlistItemRequest struct {
	DestinationID string  `json:"destination_id" binding:"required"`
	Name          string  `json:"name"`
	Image         string  `json:"image"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
}

// WishlistStatusRequest is the payload for POST /api/wishlist/status.
// The batch form exists so the catalog page can resolve saved state for
// a whole listing in one round trip.
type WishlistStatusRequest struct {
	DestinationIDs []string `json:"destination_ids" binding:"required"`
}
