package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status constants
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

// Method constants
const (
	MethodCard = "card"
)

// Payment is a single point-in-time charge against a subscription.
// Immutable after creation.
type Payment struct {
	ID             string
	SubscriptionID string
	Amount         decimal.Decimal
	PaidAt         time.Time
	Method         string
	Status         string
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Payment) Validate() error {
	if p.SubscriptionID == "" {
		return errors.New("payment must belong to a subscription")
	}
	if p.Amount.IsNegative() {
		return errors.New("payment amount cannot be negative")
	}
	if p.Status != StatusSucceeded && p.Status != StatusFailed && p.Status != StatusRefunded {
		return errors.New("status must be 'succeeded', 'failed', or 'refunded'")
	}
	if p.Method == "" {
		return errors.New("payment method cannot be empty")
	}
	return nil
}
