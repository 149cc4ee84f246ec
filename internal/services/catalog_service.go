package services

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
	"github.com/roamstay/travel-booking-backend/internal/database"
	"github.com/roamstay/travel-booking-backend/internal/models"
)

// CatalogService serves destinations and packages through a
// process-scoped read-through cache. Catalog rows change rarely, so a
// short TTL keeps the listing endpoints off the database.
type CatalogService struct {
	repo   *database.CatalogRepository
	ttl    time.Duration
	logger *logrus.Logger

	mu                  sync.Mutex
	destinations        []models.Destination
	destinationsFetched time.Time
	packages            []models.Package
	packagesFetched     time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo *database.CatalogRepository, ttl time.Duration, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
	}
}

// Destinations returns all destinations, from cache when fresh
func (s *CatalogService) Destinations() ([]models.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destinations != nil && time.Since(s.destinationsFetched) < s.ttl {
		return s.destinations, nil
	}

	destinations, err := s.repo.ListDestinations()
	if err != nil {
		return nil, apperrors.Server("failed to get destinations", err)
	}

	s.destinations = destinations
	s.destinationsFetched = time.Now()
	s.logger.WithField("count", len(destinations)).Debug("Destination cache refreshed")

	return destinations, nil
}

// Packages returns all travel packages, from cache when fresh
func (s *CatalogService) Packages() ([]models.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.packages != nil && time.Since(s.packagesFetched) < s.ttl {
		return s.packages, nil
	}

	packages, err := s.repo.ListPackages()
	if err != nil {
		return nil, apperrors.Server("failed to get packages", err)
	}

	s.packages = packages
	s.packagesFetched = time.Now()
	s.logger.WithField("count", len(packages)).Debug("Package cache refreshed")

	return packages, nil
}
