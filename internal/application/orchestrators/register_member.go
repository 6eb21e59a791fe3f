package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	accountDomain "gymhall/internal/domain/account"
	memberDomain "gymhall/internal/domain/member"
)

// AccountStoreForRegister defines the account store interface needed by Register.
type AccountStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (accountDomain.Account, error)
	Save(ctx context.Context, a accountDomain.Account) error
}

// MemberStoreForRegister defines the member store interface needed by Register.
type MemberStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (memberDomain.Member, error)
	GetByUsername(ctx context.Context, username string) (memberDomain.Member, error)
	Save(ctx context.Context, m memberDomain.Member) error
}

// Registration errors
var (
	ErrMissingFields = errors.New("email, username, first name, and last name are required")
	ErrEmailTaken    = errors.New("email is already registered")
	ErrUsernameTaken = errors.New("username is already taken")
)

// RegisterMemberInput carries input for the registration orchestrator.
type RegisterMemberInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Password  string
}

// RegisterMemberResult carries the created identities.
type RegisterMemberResult struct {
	AccountID string
	MemberID  string
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	AccountStore AccountStoreForRegister
	MemberStore  MemberStoreForRegister
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRegisterMember creates a login account and a member profile.
// PRE: Input supplies the required identity fields and a password
// POST: One account and one member row created, linked
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (RegisterMemberResult, error) {
	if input.Email == "" || input.Username == "" || input.FirstName == "" || input.LastName == "" {
		return RegisterMemberResult{}, ErrMissingFields
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return RegisterMemberResult{}, ErrEmailTaken
	}
	if _, err := deps.MemberStore.GetByEmail(ctx, input.Email); err == nil {
		return RegisterMemberResult{}, ErrEmailTaken
	}
	if _, err := deps.MemberStore.GetByUsername(ctx, input.Username); err == nil {
		return RegisterMemberResult{}, ErrUsernameTaken
	}

	acct := accountDomain.Account{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		Role:      accountDomain.RoleMember,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return RegisterMemberResult{}, err
	}
	if err := acct.Validate(); err != nil {
		return RegisterMemberResult{}, err
	}

	m := memberDomain.Member{
		ID:        deps.GenerateID(),
		AccountID: acct.ID,
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Active:    true,
	}
	if err := m.Validate(); err != nil {
		return RegisterMemberResult{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return RegisterMemberResult{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return RegisterMemberResult{}, err
	}

	slog.Info("auth_event", "event", "member_registered", "email", input.Email, "member_id", m.ID)

	return RegisterMemberResult{AccountID: acct.ID, MemberID: m.ID}, nil
}
