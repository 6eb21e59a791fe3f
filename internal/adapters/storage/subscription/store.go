package subscription

import (
	"context"
	"time"

	paymentDomain "gymhall/internal/domain/payment"
	domain "gymhall/internal/domain/subscription"
)

// Store persists Subscription state. Writes that pair a subscription
// with its payment are transactional so a crash can never leave a
// subscription without the charge that paid for it.
type Store interface {
	GetActiveByMember(ctx context.Context, memberID string) (domain.Subscription, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.Subscription, error)
	ListDue(ctx context.Context, now time.Time) ([]domain.Subscription, error)
	Save(ctx context.Context, value domain.Subscription) error
	CreateWithPayment(ctx context.Context, value domain.Subscription, pay paymentDomain.Payment) error
	RenewWithPayment(ctx context.Context, value domain.Subscription, pay paymentDomain.Payment) error
}
