package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roamstay/travel-booking-backend/internal/services"
)

// CatalogHandler handles destination and package listing requests
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListDestinations handles GET /api/destinations
func (h *CatalogHandler) ListDestinations(c *gin.Context) {
	destinations, err := h.catalogService.Destinations()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, destinations)
}

// ListPackages handles GET /api/packages
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.catalogService.Packages()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}
