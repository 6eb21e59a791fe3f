package member

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrInvalidEmail  = errors.New("member email must be valid")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyName     = errors.New("first and last name cannot be empty")
)

// Member is an end user of the gym: profile data plus a link to the
// login account. Holds at most one active subscription at a time.
type Member struct {
	ID        string
	AccountID string
	Email     string
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Active    bool
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (m *Member) Validate() error {
	if !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(m.Username) == "" {
		return ErrEmptyUsername
	}
	if strings.TrimSpace(m.FirstName) == "" || strings.TrimSpace(m.LastName) == "" {
		return ErrEmptyName
	}
	if len(m.FirstName) > MaxNameLength || len(m.LastName) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	return nil
}

// FullName returns the member's display name.
// INVARIANT: Member fields are not mutated
func (m *Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}
