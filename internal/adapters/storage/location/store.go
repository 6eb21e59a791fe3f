package location

import (
	"context"

	domain "gymhall/internal/domain/location"
)

// Store persists Location state.
type Store interface {
	List(ctx context.Context) ([]domain.Location, error)
	Save(ctx context.Context, value domain.Location) error
}
