package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roamstay/travel-booking-backend/internal/apperrors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps a service error onto an HTTP status and error
// code. Internal details never leave the process for server-side
// failures.
func respondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: apperrors.MessageOf(err),
		})
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: apperrors.MessageOf(err),
		})
	case apperrors.KindConflict:
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "conflict",
			Message: apperrors.MessageOf(err),
		})
	case apperrors.KindAuth:
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: apperrors.MessageOf(err),
		})
	case apperrors.KindGateway:
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "gateway_error",
			Message: apperrors.MessageOf(err),
		})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Something went wrong",
		})
	}
}
