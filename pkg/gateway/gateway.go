// Package gateway wraps the hosted payment processor behind a small
// interface so the orchestrator and tests do not depend on Stripe
// directly.
package gateway

import "context"

// EventType classifies an asynchronous gateway notification
type EventType string

const (
	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
	EventUnhandled        EventType = "unhandled"
)

// IntentRequest describes the hosted payment intent to create. Amount
// is an integer count of minor currency units.
type IntentRequest struct {
	AmountMinorUnits int64
	Currency         string
	Description      string
	Metadata         map[string]string
}

// Intent is a created gateway-side payment intent
type Intent struct {
	ID           string
	ClientSecret string
}

// IntentInfo is the gateway's view of an existing intent
type IntentInfo struct {
	ID               string
	Status           string
	AmountMinorUnits int64
	Currency         string
	Metadata         map[string]string
}

// Event is a verified asynchronous notification from the gateway
type Event struct {
	Type     EventType
	IntentID string
}

// PaymentGateway defines the operations the payment orchestrator needs
// from the hosted processor.
type PaymentGateway interface {
	// CreateIntent creates a hosted payment intent and returns its
	// identifier and client-usable secret.
	CreateIntent(ctx context.Context, req *IntentRequest) (*Intent, error)

	// GetIntent retrieves an existing intent for reconciliation
	GetIntent(ctx context.Context, intentID string) (*IntentInfo, error)

	// Refund returns money against a completed intent
	Refund(ctx context.Context, intentID string, amountMinorUnits int64) error

	// VerifyEvent authenticates a raw webhook payload against the
	// shared webhook secret and decodes it.
	VerifyEvent(payload []byte, signature string) (*Event, error)

	// Name returns the gateway name
	Name() string
}
