package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	ptsessionDomain "gymhall/internal/domain/ptsession"
	trainerDomain "gymhall/internal/domain/trainer"
)

// TrainerStoreForBooking defines the trainer store interface needed by booking.
type TrainerStoreForBooking interface {
	GetByID(ctx context.Context, id string) (trainerDomain.Trainer, error)
}

// PTSessionStoreForBooking defines the booking store interface.
type PTSessionStoreForBooking interface {
	ExistsFor(ctx context.Context, memberID, trainerID string, startAt time.Time) (bool, error)
	Save(ctx context.Context, value ptsessionDomain.PTSession) error
}

// Booking errors
var (
	ErrMissingTrainerID = errors.New("trainer id is required")
	ErrTrainerNotFound  = errors.New("trainer does not exist")
	ErrInvalidStartTime = errors.New("start time must be RFC3339 or HH:MM")
)

// Booking messages
const (
	MsgBookingRequested = "Session requested. Your trainer will confirm shortly."
	MsgAlreadyBooked    = "You already have a session with this trainer at that time."
)

// BookTrainerInput carries input for the booking orchestrator.
// StartTime accepts RFC3339 or a bare HH:MM, which books the next day.
type BookTrainerInput struct {
	MemberID  string
	TrainerID string
	StartTime string
}

// BookTrainerResult carries the outcome of a booking call.
type BookTrainerResult struct {
	Message   string
	SessionID string
	StartAt   time.Time
}

// BookTrainerDeps holds dependencies for BookTrainer.
type BookTrainerDeps struct {
	TrainerStore   TrainerStoreForBooking
	PTSessionStore PTSessionStoreForBooking
	GenerateID     func() string
	Now            func() time.Time
}

// ExecuteBookTrainer requests a personal-training slot with a trainer.
// Booking the same trainer and start time twice is a friendly no-op
// rather than an error.
// PRE: MemberID identifies an authenticated member
// POST: At most one booking row exists per (member, trainer, start)
func ExecuteBookTrainer(ctx context.Context, input BookTrainerInput, deps BookTrainerDeps) (BookTrainerResult, error) {
	if input.TrainerID == "" {
		return BookTrainerResult{}, ErrMissingTrainerID
	}

	tr, err := deps.TrainerStore.GetByID(ctx, input.TrainerID)
	if err != nil {
		return BookTrainerResult{}, ErrTrainerNotFound
	}

	startAt, err := parseStartTime(input.StartTime, deps.Now())
	if err != nil {
		return BookTrainerResult{}, err
	}

	exists, err := deps.PTSessionStore.ExistsFor(ctx, input.MemberID, tr.ID, startAt)
	if err != nil {
		return BookTrainerResult{}, err
	}
	if exists {
		return BookTrainerResult{Message: MsgAlreadyBooked, StartAt: startAt}, nil
	}

	session := ptsessionDomain.PTSession{
		ID:          deps.GenerateID(),
		TrainerID:   tr.ID,
		MemberID:    input.MemberID,
		StartAt:     startAt,
		DurationMin: ptsessionDomain.DefaultDurationMin,
		Status:      ptsessionDomain.StatusRequested,
	}
	if err := session.Validate(); err != nil {
		return BookTrainerResult{}, err
	}
	if err := deps.PTSessionStore.Save(ctx, session); err != nil {
		return BookTrainerResult{}, err
	}

	slog.Info("booking_event", "event", "pt_requested", "member_id", input.MemberID, "trainer_id", tr.ID, "start_at", startAt)

	return BookTrainerResult{
		Message:   MsgBookingRequested,
		SessionID: session.ID,
		StartAt:   startAt,
	}, nil
}

// parseStartTime accepts an RFC3339 timestamp or a bare "HH:MM" clock
// time, which books that time on the following day in UTC.
func parseStartTime(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrInvalidStartTime
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	clock, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, ErrInvalidStartTime
	}
	tomorrow := now.UTC().AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
