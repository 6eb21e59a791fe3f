package member

import (
	"context"

	domain "gymhall/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	GetByAccountID(ctx context.Context, accountID string) (domain.Member, error)
	GetByEmail(ctx context.Context, email string) (domain.Member, error)
	GetByUsername(ctx context.Context, username string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
}
