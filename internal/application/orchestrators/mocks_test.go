package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymhall/internal/adapters/email"
	accountDomain "gymhall/internal/domain/account"
	memberDomain "gymhall/internal/domain/member"
	paymentDomain "gymhall/internal/domain/payment"
	planDomain "gymhall/internal/domain/plan"
	ptsessionDomain "gymhall/internal/domain/ptsession"
	subscriptionDomain "gymhall/internal/domain/subscription"
	trainerDomain "gymhall/internal/domain/trainer"
)

var errNotFound = errors.New("not found")

type mockPlanStore struct {
	plans map[string]planDomain.Plan
}

func newMockPlanStore(plans ...planDomain.Plan) *mockPlanStore {
	s := &mockPlanStore{plans: make(map[string]planDomain.Plan)}
	for _, p := range plans {
		s.plans[p.ID] = p
	}
	return s
}

func (s *mockPlanStore) GetByID(_ context.Context, id string) (planDomain.Plan, error) {
	p, ok := s.plans[id]
	if !ok {
		return planDomain.Plan{}, errNotFound
	}
	return p, nil
}

type mockSubscriptionStore struct {
	subs      map[string]subscriptionDomain.Subscription
	payments  []paymentDomain.Payment
	createErr error
	renewErr  error
	saveCalls int
}

func newMockSubscriptionStore(subs ...subscriptionDomain.Subscription) *mockSubscriptionStore {
	s := &mockSubscriptionStore{subs: make(map[string]subscriptionDomain.Subscription)}
	for _, sub := range subs {
		s.subs[sub.ID] = sub
	}
	return s
}

func (s *mockSubscriptionStore) GetActiveByMember(_ context.Context, memberID string) (subscriptionDomain.Subscription, error) {
	for _, sub := range s.subs {
		if sub.MemberID == memberID && sub.Status == subscriptionDomain.StatusActive {
			return sub, nil
		}
	}
	return subscriptionDomain.Subscription{}, errNotFound
}

func (s *mockSubscriptionStore) Save(_ context.Context, value subscriptionDomain.Subscription) error {
	s.saveCalls++
	s.subs[value.ID] = value
	return nil
}

func (s *mockSubscriptionStore) CreateWithPayment(_ context.Context, value subscriptionDomain.Subscription, pay paymentDomain.Payment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.subs[value.ID] = value
	s.payments = append(s.payments, pay)
	return nil
}

func (s *mockSubscriptionStore) RenewWithPayment(_ context.Context, value subscriptionDomain.Subscription, pay paymentDomain.Payment) error {
	if s.renewErr != nil {
		return s.renewErr
	}
	s.subs[value.ID] = value
	s.payments = append(s.payments, pay)
	return nil
}

func (s *mockSubscriptionStore) ListDue(_ context.Context, now time.Time) ([]subscriptionDomain.Subscription, error) {
	var due []subscriptionDomain.Subscription
	for _, sub := range s.subs {
		if sub.IsDue(now) {
			due = append(due, sub)
		}
	}
	return due, nil
}

type mockMemberStore struct {
	members map[string]memberDomain.Member
}

func newMockMemberStore(members ...memberDomain.Member) *mockMemberStore {
	s := &mockMemberStore{members: make(map[string]memberDomain.Member)}
	for _, m := range members {
		s.members[m.ID] = m
	}
	return s
}

func (s *mockMemberStore) GetByID(_ context.Context, id string) (memberDomain.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return memberDomain.Member{}, errNotFound
	}
	return m, nil
}

func (s *mockMemberStore) GetByEmail(_ context.Context, email string) (memberDomain.Member, error) {
	for _, m := range s.members {
		if m.Email == email {
			return m, nil
		}
	}
	return memberDomain.Member{}, errNotFound
}

func (s *mockMemberStore) GetByUsername(_ context.Context, username string) (memberDomain.Member, error) {
	for _, m := range s.members {
		if m.Username == username {
			return m, nil
		}
	}
	return memberDomain.Member{}, errNotFound
}

func (s *mockMemberStore) Save(_ context.Context, m memberDomain.Member) error {
	s.members[m.ID] = m
	return nil
}

type mockAccountStore struct {
	accounts map[string]accountDomain.Account
}

func newMockAccountStore(accounts ...accountDomain.Account) *mockAccountStore {
	s := &mockAccountStore{accounts: make(map[string]accountDomain.Account)}
	for _, a := range accounts {
		s.accounts[a.ID] = a
	}
	return s
}

func (s *mockAccountStore) GetByEmail(_ context.Context, email string) (accountDomain.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return accountDomain.Account{}, errNotFound
}

func (s *mockAccountStore) Save(_ context.Context, a accountDomain.Account) error {
	s.accounts[a.ID] = a
	return nil
}

type mockTrainerStore struct {
	trainers map[string]trainerDomain.Trainer
}

func newMockTrainerStore(trainers ...trainerDomain.Trainer) *mockTrainerStore {
	s := &mockTrainerStore{trainers: make(map[string]trainerDomain.Trainer)}
	for _, t := range trainers {
		s.trainers[t.ID] = t
	}
	return s
}

func (s *mockTrainerStore) GetByID(_ context.Context, id string) (trainerDomain.Trainer, error) {
	t, ok := s.trainers[id]
	if !ok {
		return trainerDomain.Trainer{}, errNotFound
	}
	return t, nil
}

type mockPTSessionStore struct {
	sessions []ptsessionDomain.PTSession
}

func (s *mockPTSessionStore) ExistsFor(_ context.Context, memberID, trainerID string, startAt time.Time) (bool, error) {
	for _, ps := range s.sessions {
		if ps.MemberID == memberID && ps.TrainerID == trainerID && ps.StartAt.Equal(startAt) {
			return true, nil
		}
	}
	return false, nil
}

func (s *mockPTSessionStore) Save(_ context.Context, value ptsessionDomain.PTSession) error {
	s.sessions = append(s.sessions, value)
	return nil
}

type mockSender struct {
	sent    []email.SendRequest
	sendErr error
}

func (s *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if s.sendErr != nil {
		return email.SendResult{}, s.sendErr
	}
	s.sent = append(s.sent, req)
	return email.SendResult{MessageID: "mock-1"}, nil
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testMember(id, email string) memberDomain.Member {
	return memberDomain.Member{
		ID:        id,
		AccountID: "acct-" + id,
		Email:     email,
		Username:  id,
		FirstName: "Jo",
		LastName:  "Test",
		Active:    true,
	}
}
