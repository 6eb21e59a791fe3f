package classtype

import (
	"context"

	domain "gymhall/internal/domain/classtype"
)

// Store persists ClassType state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.ClassType, error)
	List(ctx context.Context) ([]domain.ClassType, error)
	Save(ctx context.Context, value domain.ClassType) error
}
