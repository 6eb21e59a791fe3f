package classsession

import (
	"context"
	"time"

	domain "gymhall/internal/domain/classsession"
)

// Entry is a class session joined with its display fields for the
// schedule pages: class type name and description, coach name, and
// location name.
type Entry struct {
	ID          string
	StartAt     time.Time
	DurationMin int
	Title       string
	Description string
	Trainer     string
	Location    string
}

// Store persists ClassSession state.
type Store interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]Entry, error)
	List(ctx context.Context) ([]domain.ClassSession, error)
	Save(ctx context.Context, value domain.ClassSession) error
}
