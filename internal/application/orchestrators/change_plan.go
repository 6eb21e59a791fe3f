package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymhall/internal/adapters/email"
	memberDomain "gymhall/internal/domain/member"
	paymentDomain "gymhall/internal/domain/payment"
	planDomain "gymhall/internal/domain/plan"
	subscriptionDomain "gymhall/internal/domain/subscription"
)

// PlanStoreForChange defines the plan store interface needed by ChangePlan.
type PlanStoreForChange interface {
	GetByID(ctx context.Context, id string) (planDomain.Plan, error)
}

// SubscriptionStoreForChange defines the subscription store interface needed by ChangePlan.
type SubscriptionStoreForChange interface {
	GetActiveByMember(ctx context.Context, memberID string) (subscriptionDomain.Subscription, error)
	Save(ctx context.Context, value subscriptionDomain.Subscription) error
	CreateWithPayment(ctx context.Context, value subscriptionDomain.Subscription, pay paymentDomain.Payment) error
}

// MemberStoreForChange defines the member store interface needed for receipts.
type MemberStoreForChange interface {
	GetByID(ctx context.Context, id string) (memberDomain.Member, error)
}

// Change outcome constants
const (
	OutcomeAlreadyOnPlan  = "already_on_plan"
	OutcomeDeferredChange = "deferred_change"
	OutcomeActivated      = "activated"
)

// User-facing messages for the three outcomes.
const (
	MsgAlreadyOnPlan  = "You are already on this plan."
	MsgDeferredChange = "Your plan will change at the next renewal."
	MsgActivated      = "Subscription activated."
)

// Domain errors surfaced by the subscription use cases.
var (
	ErrMissingPlanID        = errors.New("plan id is required")
	ErrPlanNotFound         = errors.New("plan does not exist or is not available")
	ErrNoActiveSubscription = errors.New("no active subscription")
)

// ChangePlanInput carries input for the change-plan orchestrator.
type ChangePlanInput struct {
	MemberID string
	PlanID   string
}

// ChangePlanResult carries the outcome of a change-plan call.
type ChangePlanResult struct {
	Outcome        string
	Message        string
	SubscriptionID string
}

// ChangePlanDeps holds dependencies for ChangePlan.
// Sender is optional; when set, activations send a best-effort receipt.
type ChangePlanDeps struct {
	PlanStore         PlanStoreForChange
	SubscriptionStore SubscriptionStoreForChange
	MemberStore       MemberStoreForChange
	Sender            email.Sender
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteChangePlan activates a subscription or schedules a plan change.
// With an active subscription on the same plan the call is a no-op; on a
// different plan only the next-plan pointer moves, honoring the paid-for
// period. With no active subscription a new one is created for
// [now, now+period] together with exactly one succeeded card payment,
// both inside a single transaction.
// PRE: MemberID identifies an authenticated member
// POST: At most one subscription insert/update and one payment insert
// INVARIANT: At most one active subscription per member
func ExecuteChangePlan(ctx context.Context, input ChangePlanInput, deps ChangePlanDeps) (ChangePlanResult, error) {
	if input.PlanID == "" {
		return ChangePlanResult{}, ErrMissingPlanID
	}

	p, err := deps.PlanStore.GetByID(ctx, input.PlanID)
	if err != nil || !p.IsActive() {
		return ChangePlanResult{}, ErrPlanNotFound
	}

	active, err := deps.SubscriptionStore.GetActiveByMember(ctx, input.MemberID)
	if err == nil {
		if active.PlanID == p.ID {
			return ChangePlanResult{
				Outcome:        OutcomeAlreadyOnPlan,
				Message:        MsgAlreadyOnPlan,
				SubscriptionID: active.ID,
			}, nil
		}

		if err := active.ScheduleChange(p.ID); err != nil {
			return ChangePlanResult{}, err
		}
		if err := deps.SubscriptionStore.Save(ctx, active); err != nil {
			return ChangePlanResult{}, err
		}
		slog.Info("subscription_event", "event", "change_scheduled", "member_id", input.MemberID, "subscription_id", active.ID, "next_plan_id", p.ID)
		return ChangePlanResult{
			Outcome:        OutcomeDeferredChange,
			Message:        MsgDeferredChange,
			SubscriptionID: active.ID,
		}, nil
	}

	now := deps.Now()
	end, err := subscriptionDomain.PeriodEnd(now, p.BillingPeriod)
	if err != nil {
		return ChangePlanResult{}, err
	}

	sub := subscriptionDomain.Subscription{
		ID:                 deps.GenerateID(),
		MemberID:           input.MemberID,
		PlanID:             p.ID,
		Status:             subscriptionDomain.StatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   end,
		AutoRenew:          true,
		CreatedAt:          now,
	}
	if err := sub.Validate(); err != nil {
		return ChangePlanResult{}, err
	}

	pay := paymentDomain.Payment{
		ID:             deps.GenerateID(),
		SubscriptionID: sub.ID,
		Amount:         p.Price,
		PaidAt:         now,
		Method:         paymentDomain.MethodCard,
		Status:         paymentDomain.StatusSucceeded,
	}

	if err := deps.SubscriptionStore.CreateWithPayment(ctx, sub, pay); err != nil {
		return ChangePlanResult{}, err
	}

	slog.Info("subscription_event", "event", "activated", "member_id", input.MemberID, "subscription_id", sub.ID, "plan_id", p.ID, "amount", pay.Amount.StringFixed(2))

	sendReceipt(ctx, deps, input.MemberID, p, pay)

	return ChangePlanResult{
		Outcome:        OutcomeActivated,
		Message:        MsgActivated,
		SubscriptionID: sub.ID,
	}, nil
}

// sendReceipt emails an activation receipt. Failures are logged and
// never fail the activation.
func sendReceipt(ctx context.Context, deps ChangePlanDeps, memberID string, p planDomain.Plan, pay paymentDomain.Payment) {
	if deps.Sender == nil || deps.MemberStore == nil {
		return
	}
	m, err := deps.MemberStore.GetByID(ctx, memberID)
	if err != nil {
		slog.Warn("receipt_skipped", "member_id", memberID, "error", err.Error())
		return
	}
	_, err = deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{m.Email},
		Subject: "Your Gymhall membership is active",
		Text: "Hi " + m.FirstName + ",\n\n" +
			"Your " + p.Name + " membership is now active.\n" +
			"Charged: " + pay.Amount.StringFixed(2) + " EUR (" + pay.Method + ")\n" +
			"Next renewal: " + pay.PaidAt.Format("2 January 2006") + " + 1 " + p.BillingPeriod + " period.\n\n" +
			"See you at the gym!",
	})
	if err != nil {
		slog.Warn("receipt_send_failed", "member_id", memberID, "error", err.Error())
	}
}
