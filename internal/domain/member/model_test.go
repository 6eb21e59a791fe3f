package member

import "testing"

func validMember() Member {
	return Member{
		ID:        "m1",
		Email:     "ana@example.com",
		Username:  "ana",
		FirstName: "Ana",
		LastName:  "Novak",
		Phone:     "000-000-000",
		Active:    true,
	}
}

// TestValidate covers the member field rules.
func TestValidate(t *testing.T) {
	m := validMember()
	if err := m.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	m = validMember()
	m.Email = "not-an-email"
	if err := m.Validate(); err != ErrInvalidEmail {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}

	m = validMember()
	m.Username = ""
	if err := m.Validate(); err != ErrEmptyUsername {
		t.Errorf("expected ErrEmptyUsername, got %v", err)
	}

	m = validMember()
	m.LastName = " "
	if err := m.Validate(); err != ErrEmptyName {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

// TestFullName tests display name assembly.
func TestFullName(t *testing.T) {
	m := validMember()
	if got := m.FullName(); got != "Ana Novak" {
		t.Errorf("expected 'Ana Novak', got %q", got)
	}
}
