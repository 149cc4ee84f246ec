package database

import (
	"fmt"

	"github.com/roamstay/travel-booking-backend/internal/models"
)

// CatalogRepository reads the destination and package catalog. The
// catalog is read-only from the application's perspective; rows are
// seeded out of band.
type CatalogRepository struct {
	db DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db DB) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

// ListDestinations returns all destinations
func (r *CatalogRepository) ListDestinations() ([]models.Destination, error) {
	destinations := []models.Destination{}

	query := `
		SELECT id, name, country, description, image_url, best_time_to_visit, activities, created_at
		FROM destinations
		ORDER BY id ASC
	`

	if err := r.db.Select(&destinations, query); err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}

	return destinations, nil
}

// ListPackages returns all travel packages
func (r *CatalogRepository) ListPackages() ([]models.Package, error) {
	packages := []models.Package{}

	query := `
		SELECT id, name, price, duration, image_url, includes, flight_details, hotel_details, dates, destination_id
		FROM packages
		ORDER BY id ASC
	`

	if err := r.db.Select(&packages, query); err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	return packages, nil
}
