package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeConfig holds configuration for the Stripe gateway
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// StripeGateway implements PaymentGateway using Stripe
type StripeGateway struct {
	config StripeConfig
}

// NewStripeGateway creates a new Stripe gateway
func NewStripeGateway(config StripeConfig) (*StripeGateway, error) {
	if config.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}

	stripe.Key = config.SecretKey

	return &StripeGateway{
		config: config,
	}, nil
}

// CreateIntent creates a Stripe payment intent with automatic payment
// methods enabled. The metadata travels with the intent for
// reconciliation on the Stripe side.
func (g *StripeGateway) CreateIntent(ctx context.Context, req *IntentRequest) (*Intent, error) {
	if req == nil {
		return nil, fmt.Errorf("intent request is required")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinorUnits),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: req.Metadata,
	}
	params.Context = ctx

	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

// GetIntent retrieves an existing payment intent
func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (*IntentInfo, error) {
	if intentID == "" {
		return nil, fmt.Errorf("intent ID is required")
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	return &IntentInfo{
		ID:               pi.ID,
		Status:           string(pi.Status),
		AmountMinorUnits: pi.Amount,
		Currency:         string(pi.Currency),
		Metadata:         pi.Metadata,
	}, nil
}

// Refund returns money against a payment intent
func (g *StripeGateway) Refund(ctx context.Context, intentID string, amountMinorUnits int64) error {
	if intentID == "" {
		return fmt.Errorf("intent ID is required")
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(amountMinorUnits),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("failed to create refund: %w", err)
	}

	return nil
}

// VerifyEvent checks the Stripe-Signature header against the webhook
// secret and decodes the event.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.config.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	var pi stripe.PaymentIntent
	switch event.Type {
	case "payment_intent.succeeded":
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to decode payment intent: %w", err)
		}
		return &Event{Type: EventPaymentSucceeded, IntentID: pi.ID}, nil
	case "payment_intent.payment_failed":
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to decode payment intent: %w", err)
		}
		return &Event{Type: EventPaymentFailed, IntentID: pi.ID}, nil
	default:
		return &Event{Type: EventUnhandled}, nil
	}
}

// Name returns the gateway name
func (g *StripeGateway) Name() string {
	return "stripe"
}
