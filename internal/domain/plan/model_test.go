package plan

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validPlan() Plan {
	return Plan{
		ID:            "plan-1",
		Name:          "Standard",
		Price:         decimal.RequireFromString("49.00"),
		BillingPeriod: PeriodMonthly,
		Perks:         []string{"Gym access", "Unlimited group classes"},
		Active:        true,
	}
}

// TestValidate_Valid tests a fully populated plan.
func TestValidate_Valid(t *testing.T) {
	p := validPlan()
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidate_EmptyName tests name validation.
func TestValidate_EmptyName(t *testing.T) {
	p := validPlan()
	p.Name = "  "
	if err := p.Validate(); err != ErrEmptyName {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

// TestValidate_BadPeriod tests billing period validation.
func TestValidate_BadPeriod(t *testing.T) {
	p := validPlan()
	p.BillingPeriod = "weekly"
	if err := p.Validate(); err != ErrInvalidPeriod {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

// TestValidate_ZeroPrice tests price validation.
func TestValidate_ZeroPrice(t *testing.T) {
	p := validPlan()
	p.Price = decimal.Zero
	if err := p.Validate(); err != ErrNonPositivePrice {
		t.Errorf("expected ErrNonPositivePrice, got %v", err)
	}
}
