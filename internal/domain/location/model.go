package location

import (
	"errors"
	"strings"
)

// Location is a room or hall where classes run.
type Location struct {
	ID       string
	Name     string
	Capacity int
}

// Validate checks if the Location has valid data.
func (l *Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("location name cannot be empty")
	}
	if l.Capacity <= 0 {
		return errors.New("location capacity must be positive")
	}
	return nil
}
