package subscription

import (
	"testing"
	"time"

	"gymhall/internal/domain/plan"
)

// TestPeriodEnd_Monthly tests the plain monthly advance.
func TestPeriodEnd_Monthly(t *testing.T) {
	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	end, err := PeriodEnd(start, plan.PeriodMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("expected %v, got %v", want, end)
	}
}

// TestPeriodEnd_MonthlyOverflow pins the documented overflow rule:
// AddDate normalization rolls Jan 31 + 1 month into March.
func TestPeriodEnd_MonthlyOverflow(t *testing.T) {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	end, err := PeriodEnd(start, plan.PeriodMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("expected %v, got %v", want, end)
	}
}

// TestPeriodEnd_YearlyLeapDay pins the leap-day rule: Feb 29 + 1 year
// normalizes to Mar 1 of the following year.
func TestPeriodEnd_YearlyLeapDay(t *testing.T) {
	start := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	end, err := PeriodEnd(start, plan.PeriodYearly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("expected %v, got %v", want, end)
	}
}

// TestPeriodEnd_UnknownPeriod tests rejection of bad billing periods.
func TestPeriodEnd_UnknownPeriod(t *testing.T) {
	if _, err := PeriodEnd(time.Now(), "weekly"); err != ErrUnknownPeriod {
		t.Errorf("expected ErrUnknownPeriod, got %v", err)
	}
}

func activeSub() Subscription {
	return Subscription{
		ID:                 "sub-1",
		MemberID:           "m1",
		PlanID:             "plan-standard",
		Status:             StatusActive,
		CurrentPeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentPeriodEnd:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		AutoRenew:          true,
	}
}

// TestScheduleChange_DifferentPlan tests a deferred change leaves the
// current plan and period untouched.
func TestScheduleChange_DifferentPlan(t *testing.T) {
	s := activeSub()
	if err := s.ScheduleChange("plan-premium"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.NextPlanID != "plan-premium" {
		t.Errorf("expected next plan set, got %q", s.NextPlanID)
	}
	if s.PlanID != "plan-standard" {
		t.Errorf("current plan must not change, got %q", s.PlanID)
	}
	if !s.CurrentPeriodEnd.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("period end must not change on deferred change")
	}
}

// TestScheduleChange_SamePlan tests the no-op branch.
func TestScheduleChange_SamePlan(t *testing.T) {
	s := activeSub()
	if err := s.ScheduleChange("plan-standard"); err != ErrSamePlan {
		t.Errorf("expected ErrSamePlan, got %v", err)
	}
}

// TestScheduleChange_Canceled tests that canceled subscriptions reject changes.
func TestScheduleChange_Canceled(t *testing.T) {
	s := activeSub()
	s.Status = StatusCanceled
	if err := s.ScheduleChange("plan-premium"); err != ErrNotActive {
		t.Errorf("expected ErrNotActive, got %v", err)
	}
}

// TestCancel tests the terminal transition.
func TestCancel(t *testing.T) {
	s := activeSub()
	s.NextPlanID = "plan-premium"
	if err := s.Cancel(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != StatusCanceled {
		t.Errorf("expected status canceled, got %q", s.Status)
	}
	if s.AutoRenew {
		t.Error("expected auto renew off after cancel")
	}
	if s.NextPlanID != "" {
		t.Error("expected pending plan change cleared on cancel")
	}
	// period dates stay: the paid-for period is honored
	if !s.CurrentPeriodEnd.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("cancel must not alter period dates")
	}

	if err := s.Cancel(); err != ErrNotActive {
		t.Errorf("second cancel should fail with ErrNotActive, got %v", err)
	}
}

// TestIsDue tests renewal due checks.
func TestIsDue(t *testing.T) {
	s := activeSub()
	before := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	after := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if s.IsDue(before) {
		t.Error("not due before period end")
	}
	if !s.IsDue(after) {
		t.Error("due at period end")
	}
	s.AutoRenew = false
	if s.IsDue(after) {
		t.Error("never due with auto renew off")
	}
}

// TestRenew_AppliesPendingPlan tests the rollover: period advances from
// the old end and the pending plan becomes current.
func TestRenew_AppliesPendingPlan(t *testing.T) {
	s := activeSub()
	s.NextPlanID = "plan-premium"
	premium := plan.Plan{ID: "plan-premium", Name: "Premium", BillingPeriod: plan.PeriodMonthly}
	now := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)

	if err := s.Renew(premium, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.PlanID != "plan-premium" {
		t.Errorf("expected plan applied, got %q", s.PlanID)
	}
	if s.NextPlanID != "" {
		t.Error("expected pending change cleared")
	}
	if !s.CurrentPeriodStart.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("new period must start at old end, got %v", s.CurrentPeriodStart)
	}
	if !s.CurrentPeriodEnd.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("new period end wrong: %v", s.CurrentPeriodEnd)
	}
}

// TestRenew_NotDue tests that renewal before the period end is rejected.
func TestRenew_NotDue(t *testing.T) {
	s := activeSub()
	p := plan.Plan{ID: s.PlanID, BillingPeriod: plan.PeriodMonthly}
	if err := s.Renew(p, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)); err != ErrNotDue {
		t.Errorf("expected ErrNotDue, got %v", err)
	}
}

// TestValidate tests basic field validation.
func TestValidate(t *testing.T) {
	s := activeSub()
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	bad := activeSub()
	bad.Status = "paused"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid status")
	}
	bad = activeSub()
	bad.CurrentPeriodEnd = bad.CurrentPeriodStart
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty period")
	}
}
