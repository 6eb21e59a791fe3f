package projections

import (
	"context"
	"time"

	"gymhall/internal/adapters/storage/ptsession"
	domainPayment "gymhall/internal/domain/payment"
	domainSubscription "gymhall/internal/domain/subscription"
)

// GetMemberProfileQuery carries query parameters.
type GetMemberProfileQuery struct {
	MemberID string
	Now      time.Time
}

// MembershipView is the active subscription joined with its plan for
// display.
type MembershipView struct {
	SubscriptionID   string
	PlanID           string
	PlanName         string
	Price            string // formatted with two decimals
	BillingPeriod    string
	Status           string
	CurrentPeriodEnd time.Time
	AutoRenew        bool
	NextPlanName     string // pending deferred change, empty when none
}

// PaymentView is one payment row for the profile's billing history.
type PaymentView struct {
	ID     string
	Amount string
	PaidAt time.Time
	Method string
	Status string
}

// GetMemberProfileResult carries the query result.
type GetMemberProfileResult struct {
	MemberID      string
	Name          string
	Email         string
	Username      string
	HasMembership bool
	Membership    MembershipView
	History       []domainSubscription.Subscription
	Payments      []PaymentView
	Bookings      []ptsession.Booking
}

// GetMemberProfileDeps holds dependencies for GetMemberProfile.
type GetMemberProfileDeps struct {
	MemberStore       MemberStore
	SubscriptionStore SubscriptionStore
	PlanStore         PlanStore
	PaymentStore      PaymentStore
	PTSessionStore    PTSessionStore // optional: nil skips bookings
}

// QueryGetMemberProfile retrieves a member's profile page data: the
// active membership with plan details, subscription history, billing
// history, and upcoming personal-training bookings.
// PRE: Valid member ID
// POST: Returns profile data; a missing membership is not an error
func QueryGetMemberProfile(ctx context.Context, query GetMemberProfileQuery, deps GetMemberProfileDeps) (GetMemberProfileResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, query.MemberID)
	if err != nil {
		return GetMemberProfileResult{}, err
	}

	result := GetMemberProfileResult{
		MemberID: m.ID,
		Name:     m.FullName(),
		Email:    m.Email,
		Username: m.Username,
	}

	if active, err := deps.SubscriptionStore.GetActiveByMember(ctx, query.MemberID); err == nil {
		result.HasMembership = true
		result.Membership = membershipView(ctx, deps, active)
	}

	if history, err := deps.SubscriptionStore.ListByMember(ctx, query.MemberID); err == nil {
		result.History = history
	}

	if payments, err := deps.PaymentStore.ListByMember(ctx, query.MemberID); err == nil {
		result.Payments = paymentViews(payments)
	}

	if deps.PTSessionStore != nil {
		if bookings, err := deps.PTSessionStore.ListUpcomingByMember(ctx, query.MemberID, query.Now); err == nil {
			result.Bookings = bookings
		}
	}

	return result, nil
}

func membershipView(ctx context.Context, deps GetMemberProfileDeps, sub domainSubscription.Subscription) MembershipView {
	view := MembershipView{
		SubscriptionID:   sub.ID,
		PlanID:           sub.PlanID,
		Status:           sub.Status,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
		AutoRenew:        sub.AutoRenew,
	}
	if p, err := deps.PlanStore.GetByID(ctx, sub.PlanID); err == nil {
		view.PlanName = p.Name
		view.Price = p.Price.StringFixed(2)
		view.BillingPeriod = p.BillingPeriod
	}
	if sub.NextPlanID != "" {
		if next, err := deps.PlanStore.GetByID(ctx, sub.NextPlanID); err == nil {
			view.NextPlanName = next.Name
		}
	}
	return view
}

func paymentViews(payments []domainPayment.Payment) []PaymentView {
	views := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, PaymentView{
			ID:     p.ID,
			Amount: p.Amount.StringFixed(2),
			PaidAt: p.PaidAt,
			Method: p.Method,
			Status: p.Status,
		})
	}
	return views
}
