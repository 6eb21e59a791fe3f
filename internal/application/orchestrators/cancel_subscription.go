package orchestrators

import (
	"context"
	"log/slog"

	subscriptionDomain "gymhall/internal/domain/subscription"
)

// SubscriptionStoreForCancel defines the store interface needed by Cancel.
type SubscriptionStoreForCancel interface {
	GetActiveByMember(ctx context.Context, memberID string) (subscriptionDomain.Subscription, error)
	Save(ctx context.Context, value subscriptionDomain.Subscription) error
}

// CancelSubscriptionInput carries input for the cancel orchestrator.
type CancelSubscriptionInput struct {
	MemberID string
}

// CancelSubscriptionResult carries the outcome of a cancel call.
type CancelSubscriptionResult struct {
	Message        string
	SubscriptionID string
}

// MsgCanceled is the user-facing cancellation confirmation.
const MsgCanceled = "Subscription canceled. Your access runs until the end of the paid period."

// CancelSubscriptionDeps holds dependencies for CancelSubscription.
type CancelSubscriptionDeps struct {
	SubscriptionStore SubscriptionStoreForCancel
}

// ExecuteCancelSubscription cancels the member's active subscription.
// No payment is created, nothing is refunded, and the period dates are
// untouched: the subscription runs out at current_period_end.
// PRE: MemberID identifies an authenticated member
// POST: Status=canceled, auto_renew=false, pending plan change cleared
func ExecuteCancelSubscription(ctx context.Context, input CancelSubscriptionInput, deps CancelSubscriptionDeps) (CancelSubscriptionResult, error) {
	active, err := deps.SubscriptionStore.GetActiveByMember(ctx, input.MemberID)
	if err != nil {
		return CancelSubscriptionResult{}, ErrNoActiveSubscription
	}

	if err := active.Cancel(); err != nil {
		return CancelSubscriptionResult{}, err
	}
	if err := deps.SubscriptionStore.Save(ctx, active); err != nil {
		return CancelSubscriptionResult{}, err
	}

	slog.Info("subscription_event", "event", "canceled", "member_id", input.MemberID, "subscription_id", active.ID)

	return CancelSubscriptionResult{
		Message:        MsgCanceled,
		SubscriptionID: active.ID,
	}, nil
}
