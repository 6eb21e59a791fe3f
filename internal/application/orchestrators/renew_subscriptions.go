package orchestrators

import (
	"context"
	"log/slog"
	"time"

	paymentDomain "gymhall/internal/domain/payment"
	planDomain "gymhall/internal/domain/plan"
	subscriptionDomain "gymhall/internal/domain/subscription"
)

// SubscriptionStoreForRenewal defines the store interface needed by renewal.
type SubscriptionStoreForRenewal interface {
	ListDue(ctx context.Context, now time.Time) ([]subscriptionDomain.Subscription, error)
	RenewWithPayment(ctx context.Context, value subscriptionDomain.Subscription, pay paymentDomain.Payment) error
}

// PlanStoreForRenewal defines the plan store interface needed by renewal.
type PlanStoreForRenewal interface {
	GetByID(ctx context.Context, id string) (planDomain.Plan, error)
}

// RenewSubscriptionsInput carries input for the renewal sweep.
type RenewSubscriptionsInput struct {
	Now time.Time
}

// RenewSubscriptionsResult summarizes a renewal sweep.
type RenewSubscriptionsResult struct {
	Renewed int
	Skipped int
}

// RenewSubscriptionsDeps holds dependencies for RenewSubscriptions.
type RenewSubscriptionsDeps struct {
	SubscriptionStore SubscriptionStoreForRenewal
	PlanStore         PlanStoreForRenewal
	GenerateID        func() string
}

// ExecuteRenewSubscriptions rolls over every active auto-renewing
// subscription whose period has ended. A pending next plan is applied
// at this point; if that plan has since been retired the current plan
// is kept and the pointer dropped. Each rollover pairs the subscription
// update with one succeeded payment in a single transaction. Failures
// are logged and skip the row; nothing is retried.
// PRE: Now is the sweep timestamp
// POST: Every due subscription renewed or counted as skipped
func ExecuteRenewSubscriptions(ctx context.Context, input RenewSubscriptionsInput, deps RenewSubscriptionsDeps) (RenewSubscriptionsResult, error) {
	due, err := deps.SubscriptionStore.ListDue(ctx, input.Now)
	if err != nil {
		return RenewSubscriptionsResult{}, err
	}

	var result RenewSubscriptionsResult
	for _, sub := range due {
		p, err := renewalPlan(ctx, deps, sub)
		if err != nil {
			slog.Error("renewal_skipped", "subscription_id", sub.ID, "error", err.Error())
			result.Skipped++
			continue
		}

		if err := sub.Renew(p, input.Now); err != nil {
			slog.Error("renewal_skipped", "subscription_id", sub.ID, "error", err.Error())
			result.Skipped++
			continue
		}

		pay := paymentDomain.Payment{
			ID:             deps.GenerateID(),
			SubscriptionID: sub.ID,
			Amount:         p.Price,
			PaidAt:         input.Now,
			Method:         paymentDomain.MethodCard,
			Status:         paymentDomain.StatusSucceeded,
		}

		if err := deps.SubscriptionStore.RenewWithPayment(ctx, sub, pay); err != nil {
			slog.Error("renewal_skipped", "subscription_id", sub.ID, "error", err.Error())
			result.Skipped++
			continue
		}

		slog.Info("subscription_event", "event", "renewed", "subscription_id", sub.ID, "plan_id", p.ID, "period_end", sub.CurrentPeriodEnd)
		result.Renewed++
	}

	return result, nil
}

// renewalPlan resolves which plan the renewal charges: the pending next
// plan when it is still sellable, otherwise the current plan.
func renewalPlan(ctx context.Context, deps RenewSubscriptionsDeps, sub subscriptionDomain.Subscription) (planDomain.Plan, error) {
	if sub.NextPlanID != "" {
		next, err := deps.PlanStore.GetByID(ctx, sub.NextPlanID)
		if err == nil && next.IsActive() {
			return next, nil
		}
		slog.Warn("next_plan_unavailable", "subscription_id", sub.ID, "next_plan_id", sub.NextPlanID)
	}
	return deps.PlanStore.GetByID(ctx, sub.PlanID)
}

// StartRenewalWorker starts a background goroutine that periodically
// sweeps for due subscriptions until stopCh is closed.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func StartRenewalWorker(deps RenewSubscriptionsDeps, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if _, err := ExecuteRenewSubscriptions(ctx, RenewSubscriptionsInput{Now: time.Now()}, deps); err != nil {
					slog.Error("renewal_sweep_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				slog.Info("renewal_worker_stopped")
				return
			}
		}
	}()
}
