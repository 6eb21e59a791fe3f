package plan

import (
	"context"

	domain "gymhall/internal/domain/plan"
)

// Store persists MembershipPlan state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	ListActive(ctx context.Context) ([]domain.Plan, error)
	Save(ctx context.Context, value domain.Plan) error
}
