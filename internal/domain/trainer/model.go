package trainer

import "errors"

// Trainer is a member who coaches classes and takes personal-training
// bookings.
type Trainer struct {
	ID       string
	MemberID string
	Bio      string
}

// Validate checks if the Trainer has valid data.
func (t *Trainer) Validate() error {
	if t.MemberID == "" {
		return errors.New("trainer must be linked to a member")
	}
	return nil
}
