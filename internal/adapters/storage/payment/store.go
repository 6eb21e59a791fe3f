package payment

import (
	"context"

	domain "gymhall/internal/domain/payment"
)

// Store reads Payment state. Payments are written alongside their
// subscription by the subscription store's transactional methods;
// Save exists for seeds and administrative corrections.
type Store interface {
	ListBySubscription(ctx context.Context, subscriptionID string) ([]domain.Payment, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.Payment, error)
	Save(ctx context.Context, value domain.Payment) error
}
