package subscription

import (
	"errors"
	"time"

	"gymhall/internal/domain/plan"
)

// Status constants
const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
)

// Domain errors
var (
	ErrNotActive       = errors.New("subscription is not active")
	ErrSamePlan        = errors.New("subscription is already on this plan")
	ErrNotDue          = errors.New("subscription period has not ended yet")
	ErrUnknownPeriod   = errors.New("unknown billing period")
	ErrRenewalDisabled = errors.New("subscription will not renew")
)

// Subscription is a member's recurring membership. Rows are never
// deleted; cancellation is a status transition. A member holds at most
// one active subscription at a time (enforced by a partial unique index
// in storage).
type Subscription struct {
	ID                 string
	MemberID           string
	PlanID             string
	NextPlanID         string // pending deferred change, empty when none
	Status             string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	AutoRenew          bool
	CreatedAt          time.Time
}

// PeriodEnd computes the end of a billing period starting at start.
// The rule is Go's time.AddDate normalization: monthly advances the
// month by one and yearly the year by one, with overflow days rolling
// into the following month. 2024-01-31 + monthly = 2024-03-02, and
// 2024-02-29 + yearly = 2025-03-01.
func PeriodEnd(start time.Time, billingPeriod string) (time.Time, error) {
	switch billingPeriod {
	case plan.PeriodMonthly:
		return start.AddDate(0, 1, 0), nil
	case plan.PeriodYearly:
		return start.AddDate(1, 0, 0), nil
	}
	return time.Time{}, ErrUnknownPeriod
}

// Validate checks if the Subscription has valid data.
// PRE: Subscription struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Subscription) Validate() error {
	if s.MemberID == "" {
		return errors.New("subscription must belong to a member")
	}
	if s.PlanID == "" {
		return errors.New("subscription must reference a plan")
	}
	if s.Status != StatusActive && s.Status != StatusCanceled {
		return errors.New("status must be 'active' or 'canceled'")
	}
	if !s.CurrentPeriodEnd.After(s.CurrentPeriodStart) {
		return errors.New("period end must be after period start")
	}
	return nil
}

// IsActive returns true if the subscription is currently active.
// INVARIANT: Subscription fields are not mutated
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// ScheduleChange records a deferred plan change. The current plan and
// period are untouched; the new plan applies at the next renewal.
// PRE: Subscription is active and planID differs from the current plan
// POST: NextPlanID is set
func (s *Subscription) ScheduleChange(planID string) error {
	if !s.IsActive() {
		return ErrNotActive
	}
	if planID == s.PlanID {
		return ErrSamePlan
	}
	s.NextPlanID = planID
	return nil
}

// Cancel transitions the subscription to canceled. The paid-for period
// keeps running until CurrentPeriodEnd but will not renew. Terminal:
// there is no reactivation path.
// PRE: Subscription is active
// POST: Status=canceled, AutoRenew=false, NextPlanID cleared
func (s *Subscription) Cancel() error {
	if !s.IsActive() {
		return ErrNotActive
	}
	s.Status = StatusCanceled
	s.AutoRenew = false
	s.NextPlanID = ""
	return nil
}

// IsDue returns true if the subscription should roll over at now.
// INVARIANT: Subscription fields are not mutated
func (s *Subscription) IsDue(now time.Time) bool {
	return s.IsActive() && s.AutoRenew && !s.CurrentPeriodEnd.After(now)
}

// Renew rolls the period forward from the old period end and applies
// the given plan (the pending next plan, or the current one). The new
// period starts where the old one ended so no paid days are lost.
// PRE: Subscription is due for renewal
// POST: PlanID updated, NextPlanID cleared, period advanced one cycle
func (s *Subscription) Renew(p plan.Plan, now time.Time) error {
	if !s.IsActive() {
		return ErrNotActive
	}
	if !s.AutoRenew {
		return ErrRenewalDisabled
	}
	if s.CurrentPeriodEnd.After(now) {
		return ErrNotDue
	}
	end, err := PeriodEnd(s.CurrentPeriodEnd, p.BillingPeriod)
	if err != nil {
		return err
	}
	s.CurrentPeriodStart = s.CurrentPeriodEnd
	s.CurrentPeriodEnd = end
	s.PlanID = p.ID
	s.NextPlanID = ""
	return nil
}
