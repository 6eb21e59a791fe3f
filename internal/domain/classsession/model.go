package classsession

import (
	"errors"
	"time"
)

// Status constants
const (
	StatusScheduled = "scheduled"
	StatusCanceled  = "canceled"
)

// ClassSession is one concrete occurrence of a class type on the
// schedule: a type, a coach, a location, and a start time.
type ClassSession struct {
	ID               string
	ClassTypeID      string
	CoachID          string
	LocationID       string
	StartAt          time.Time
	DurationMin      int
	CapacityOverride int // 0 means use the location's capacity
	Status           string
}

// Validate checks if the ClassSession has valid data.
// PRE: ClassSession struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *ClassSession) Validate() error {
	if s.ClassTypeID == "" {
		return errors.New("class session must reference a class type")
	}
	if s.LocationID == "" {
		return errors.New("class session must reference a location")
	}
	if s.StartAt.IsZero() {
		return errors.New("class session must have a start time")
	}
	if s.DurationMin <= 0 {
		return errors.New("class session duration must be positive")
	}
	if s.Status != StatusScheduled && s.Status != StatusCanceled {
		return errors.New("status must be 'scheduled' or 'canceled'")
	}
	return nil
}

// EndAt returns the session's end time.
// INVARIANT: ClassSession fields are not mutated
func (s *ClassSession) EndAt() time.Time {
	return s.StartAt.Add(time.Duration(s.DurationMin) * time.Minute)
}
