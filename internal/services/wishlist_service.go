package services

import (
	"github.com/google/uuid"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

// WishlistService manages a user's saved destinations. Uniqueness per
// (user, destination) is enforced both here and by the unique index; a
// concurrent double-add loses to the index and still surfaces as a
// conflict.
type WishlistService struct {
	wishlistRepo *database.WishlistRepository
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlistRepo *database.WishlistRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
	}
}

// Add saves a destination to the user's wishlist. A second add for the
// same destination returns a conflict and leaves exactly one item.
func (s *WishlistService) Add(userID uuid.UUID, req *models.AddWishlistItemRequest) (*models.WishlistItem, error) {
	exists, err := s.wishlistRepo.Contains(userID, req.DestinationID)
	if err != nil {
		return nil, apperrors.Server("failed to check wishlist", err)
	}
	if exists {
		return nil, apperrors.Conflict("item already in wishlist")
	}

	item, err := s.wishlistRepo.Add(userID, req.DestinationID, req.Name, req.Image, req.Description, req.Price)
	if err != nil {
		if err == database.ErrDuplicate {
			return nil, apperrors.Conflict("item already in wishlist")
		}
		return nil, apperrors.Server("failed to add wishlist item", err)
	}

	return item, nil
}

// Get returns the user's wishlist in insertion order
func (s *WishlistService) Get(userID uuid.UUID) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.Server("failed to get wishlist", err)
	}
	return items, nil
}

// Remove deletes a wishlist item by its identifier
func (s *WishlistService) Remove(userID, itemID uuid.UUID) error {
	removed, err := s.wishlistRepo.Remove(userID, itemID)
	if err != nil {
		return apperrors.Server("failed to remove wishlist item", err)
	}
	if !removed {
		return apperrors.NotFound("item not found in wishlist")
	}
	return nil
}

// CheckOne reports whether the destination is in the user's wishlist
func (s *WishlistService) CheckOne(userID uuid.UUID, destinationID string) (bool, error) {
	exists, err := s.wishlistRepo.Contains(userID, destinationID)
	if err != nil {
		return false, apperrors.Server("failed to check wishlist", err)
	}
	return exists, nil
}

// CheckMany resolves membership for a batch of destinations in a
// single query. Every requested identifier appears in the result map.
func (s *WishlistService) CheckMany(userID uuid.UUID, destinationIDs []string) (map[string]bool, error) {
	status := make(map[string]bool, len(destinationIDs))
	for _, id := range destinationIDs {
		status[id] = false
	}

	found, err := s.wishlistRepo.ContainsAny(userID, destinationIDs)
	if err != nil {
		return nil, apperrors.Server("failed to check wishlist", err)
	}
	for _, id := range found {
		status[id] = true
	}

	return status, nil
}
