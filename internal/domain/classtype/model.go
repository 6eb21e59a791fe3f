package classtype

import (
	"errors"
	"strings"
)

// DefaultDurationMin is used when a class type does not set its own.
const DefaultDurationMin = 60

// ClassType is a kind of group class offered on the schedule.
// Description is markdown, rendered on the schedule pages.
type ClassType struct {
	ID                 string
	Name               string
	Description        string
	DefaultDurationMin int
}

// Validate checks if the ClassType has valid data.
// PRE: ClassType struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (ct *ClassType) Validate() error {
	if strings.TrimSpace(ct.Name) == "" {
		return errors.New("class type name cannot be empty")
	}
	if ct.DefaultDurationMin <= 0 {
		return errors.New("default duration must be positive")
	}
	return nil
}
