package projections

import (
	"context"
	"time"

	"gymhall/internal/adapters/storage/classsession"
	"gymhall/internal/adapters/storage/ptsession"
	domainMember "gymhall/internal/domain/member"
	domainPayment "gymhall/internal/domain/payment"
	domainPlan "gymhall/internal/domain/plan"
	domainSubscription "gymhall/internal/domain/subscription"
)

// ClassSessionStore interface for schedule queries.
type ClassSessionStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]classsession.Entry, error)
}

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainMember.Member, error)
}

// SubscriptionStore interface for subscription queries.
type SubscriptionStore interface {
	GetActiveByMember(ctx context.Context, memberID string) (domainSubscription.Subscription, error)
	ListByMember(ctx context.Context, memberID string) ([]domainSubscription.Subscription, error)
}

// PlanStore interface for plan lookups.
type PlanStore interface {
	GetByID(ctx context.Context, id string) (domainPlan.Plan, error)
}

// PaymentStore interface for payment history queries.
type PaymentStore interface {
	ListByMember(ctx context.Context, memberID string) ([]domainPayment.Payment, error)
}

// PTSessionStore interface for booking queries.
type PTSessionStore interface {
	ListUpcomingByMember(ctx context.Context, memberID string, now time.Time) ([]ptsession.Booking, error)
}
