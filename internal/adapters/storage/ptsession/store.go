package ptsession

import (
	"context"
	"time"

	domain "gymhall/internal/domain/ptsession"
)

// Booking is a personal-training session joined with the trainer's
// display name for the profile page.
type Booking struct {
	ID          string
	TrainerName string
	StartAt     time.Time
	DurationMin int
	Status      string
}

// Store persists PTSession state.
type Store interface {
	ExistsFor(ctx context.Context, memberID, trainerID string, startAt time.Time) (bool, error)
	ListUpcomingByMember(ctx context.Context, memberID string, now time.Time) ([]Booking, error)
	Save(ctx context.Context, value domain.PTSession) error
}
