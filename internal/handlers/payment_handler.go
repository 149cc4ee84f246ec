package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roamstay/travel-booking-backend/internal/middleware"
	"github.com/roamstay/travel-booking-backend/internal/models"
	"github.com/roamstay/travel-booking-backend/internal/services"
	"github.com/roamstay/travel-booking-backend/pkg/gateway"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *services.PaymentService
	gateway        gateway.PaymentGateway
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, gw gateway.PaymentGateway) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		gateway:        gw,
	}
}

// CreateIntent handles POST /api/payments/create-payment-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req models.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	intent, err := h.paymentService.CreateIntent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"intentId":     intent.ID,
	})
}

// SavePayment handles POST /api/payments/save-payment
func (h *PaymentHandler) SavePayment(c *gin.Context) {
	var req models.SavePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}
	if req.TransactionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "transactionId is required",
		})
		return
	}

	payment, err := h.paymentService.ConfirmAndRecord(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// Webhook handles POST /api/payments/webhook. The raw body is needed
// for signature verification, so this route must not run body-reading
// middleware first.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_payload",
			Message: "Failed to read webhook payload",
		})
		return
	}

	event, err := h.gateway.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_signature",
			Message: "Webhook signature verification failed",
		})
		return
	}

	if err := h.paymentService.HandleGatewayEvent(event); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// History handles GET /api/payments/history/:email
func (h *PaymentHandler) History(c *gin.Context) {
	payments, err := h.paymentService.History(c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// Get handles GET /api/payments/:transactionId
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.GetByTransactionID(c.Param("transactionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// Refund handles POST /api/payments/:transactionId/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	if _, exists := middleware.GetUserContext(c); !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User context not found",
		})
		return
	}

	var req models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	payment, err := h.paymentService.Refund(c.Request.Context(), c.Param("transactionId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}
