package plan

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Billing period constants
const (
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// Max length constants for admin-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyName         = errors.New("plan name cannot be empty")
	ErrInvalidPeriod     = errors.New("billing period must be 'monthly' or 'yearly'")
	ErrNonPositivePrice  = errors.New("plan price must be positive")
	ErrInactiveReference = errors.New("plan is not active")
)

// Plan is a priced membership tier with a billing period and perk list.
// Immutable once referenced by a subscription, except Active which only
// gates visibility in plan listings.
type Plan struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	BillingPeriod string
	Perks         []string
	Active        bool
}

// Validate checks if the Plan has valid data.
// PRE: Plan struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("plan name cannot exceed 100 characters")
	}
	if p.BillingPeriod != PeriodMonthly && p.BillingPeriod != PeriodYearly {
		return ErrInvalidPeriod
	}
	if !p.Price.IsPositive() {
		return ErrNonPositivePrice
	}
	return nil
}

// IsActive returns true if the plan is visible for selection.
// INVARIANT: Plan fields are not mutated
func (p *Plan) IsActive() bool {
	return p.Active
}
