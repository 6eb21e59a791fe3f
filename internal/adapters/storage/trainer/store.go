package trainer

import (
	"context"

	domain "gymhall/internal/domain/trainer"
)

// Profile is a trainer joined with the display name from the member row.
type Profile struct {
	ID       string
	MemberID string
	Name     string
	Bio      string
}

// Store persists Trainer state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Trainer, error)
	GetByMemberID(ctx context.Context, memberID string) (domain.Trainer, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
	Save(ctx context.Context, value domain.Trainer) error
}
