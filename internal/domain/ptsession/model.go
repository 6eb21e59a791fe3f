package ptsession

import (
	"errors"
	"time"
)

// Status constants
const (
	StatusRequested = "requested"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

// DefaultDurationMin is the standard personal-training slot length.
const DefaultDurationMin = 60

// PTSession is a personal-training booking between a member and a
// trainer at a specific time.
type PTSession struct {
	ID          string
	TrainerID   string
	MemberID    string
	StartAt     time.Time
	DurationMin int
	Status      string
}

// Validate checks if the PTSession has valid data.
// PRE: PTSession struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *PTSession) Validate() error {
	if s.TrainerID == "" {
		return errors.New("booking must reference a trainer")
	}
	if s.MemberID == "" {
		return errors.New("booking must belong to a member")
	}
	if s.StartAt.IsZero() {
		return errors.New("booking must have a start time")
	}
	if s.DurationMin <= 0 {
		return errors.New("booking duration must be positive")
	}
	if s.Status != StatusRequested && s.Status != StatusConfirmed && s.Status != StatusCanceled {
		return errors.New("status must be 'requested', 'confirmed', or 'canceled'")
	}
	return nil
}
