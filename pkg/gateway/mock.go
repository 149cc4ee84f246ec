package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MockGateway implements PaymentGateway in memory. It backs the dev
// payment mode and the test suite; no network calls are made.
type MockGateway struct {
	mu      sync.RWMutex
	intents map[string]*IntentInfo
	refunds map[string][]int64

	// FailCreate forces CreateIntent to fail, simulating a gateway
	// outage or card decline path.
	FailCreate bool
}

// NewMockGateway creates a new mock gateway
func NewMockGateway() *MockGateway {
	return &MockGateway{
		intents: make(map[string]*IntentInfo),
		refunds: make(map[string][]int64),
	}
}

// CreateIntent records an intent in memory and hands back a fake
// client secret in the Stripe shape.
func (g *MockGateway) CreateIntent(ctx context.Context, req *IntentRequest) (*Intent, error) {
	if req == nil {
		return nil, fmt.Errorf("intent request is required")
	}
	if g.FailCreate {
		return nil, fmt.Errorf("mock gateway: intent creation failed")
	}

	id := "pi_mock_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	g.mu.Lock()
	g.intents[id] = &IntentInfo{
		ID:               id,
		Status:           "requires_payment_method",
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         req.Currency,
		Metadata:         req.Metadata,
	}
	g.mu.Unlock()

	return &Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.New().String()[:8],
	}, nil
}

// GetIntent retrieves a recorded intent
func (g *MockGateway) GetIntent(ctx context.Context, intentID string) (*IntentInfo, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	info, ok := g.intents[intentID]
	if !ok {
		return nil, fmt.Errorf("mock gateway: intent %s not found", intentID)
	}
	return info, nil
}

// Refund accepts any refund against a known intent and records the
// amount so tests can assert what was sent to the gateway.
func (g *MockGateway) Refund(ctx context.Context, intentID string, amountMinorUnits int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.intents[intentID]; !ok {
		return fmt.Errorf("mock gateway: intent %s not found", intentID)
	}
	g.refunds[intentID] = append(g.refunds[intentID], amountMinorUnits)
	return nil
}

// Refunds returns the minor-unit amounts refunded against an intent
func (g *MockGateway) Refunds(intentID string) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.refunds[intentID]
}

// mockEvent mirrors the wire shape Stripe uses for webhook payloads
type mockEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// VerifyEvent decodes the payload without signature verification.
// Dev-mode only; the Stripe gateway performs real verification.
func (g *MockGateway) VerifyEvent(payload []byte, signature string) (*Event, error) {
	var ev mockEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	switch ev.Type {
	case "payment_intent.succeeded":
		return &Event{Type: EventPaymentSucceeded, IntentID: ev.Data.Object.ID}, nil
	case "payment_intent.payment_failed":
		return &Event{Type: EventPaymentFailed, IntentID: ev.Data.Object.ID}, nil
	default:
		return &Event{Type: EventUnhandled}, nil
	}
}

// Name returns the gateway name
func (g *MockGateway) Name() string {
	return "mock"
}
