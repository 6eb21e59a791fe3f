package subscription

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"gymhall/internal/adapters/storage"
	paymentDomain "gymhall/internal/domain/payment"
	domain "gymhall/internal/domain/subscription"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	seed := []string{
		`INSERT INTO account (id, email, role, created_at) VALUES ('a1', 'ana@example.com', 'member', '2024-01-01T00:00:00Z')`,
		`INSERT INTO member (id, account_id, email, username, first_name, last_name) VALUES ('m1', 'a1', 'ana@example.com', 'ana', 'Ana', 'Novak')`,
		`INSERT INTO plan (id, name, price, billing_period) VALUES ('p1', 'Standard', '49.00', 'monthly')`,
		`INSERT INTO plan (id, name, price, billing_period) VALUES ('p2', 'Premium', '55.00', 'monthly')`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	return NewSQLiteStore(db)
}

func testSub(id string) domain.Subscription {
	return domain.Subscription{
		ID:                 id,
		MemberID:           "m1",
		PlanID:             "p1",
		Status:             domain.StatusActive,
		CurrentPeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentPeriodEnd:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		AutoRenew:          true,
		CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testPayment(id, subID string) paymentDomain.Payment {
	return paymentDomain.Payment{
		ID:             id,
		SubscriptionID: subID,
		Amount:         decimal.RequireFromString("49.00"),
		PaidAt:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Method:         paymentDomain.MethodCard,
		Status:         paymentDomain.StatusSucceeded,
	}
}

// TestCreateWithPayment_RoundTrip verifies both rows land and the
// subscription reads back intact.
func TestCreateWithPayment_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateWithPayment(ctx, testSub("s1"), testPayment("pay1", "s1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := store.GetActiveByMember(ctx, "m1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != "s1" || got.PlanID != "p1" || !got.AutoRenew {
		t.Errorf("unexpected subscription: %+v", got)
	}
	if !got.CurrentPeriodEnd.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("period end mangled: %v", got.CurrentPeriodEnd)
	}

	var count int
	if err := store.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM payment WHERE subscription_id = 's1'").Scan(&count); err != nil {
		t.Fatalf("payment count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 payment, got %d", count)
	}
}

// TestCreateWithPayment_Atomic verifies a failing payment insert rolls
// back the subscription insert.
func TestCreateWithPayment_Atomic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateWithPayment(ctx, testSub("s1"), testPayment("pay1", "s1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Duplicate payment ID forces the second insert to fail after the
	// subscription row was written inside the tx.
	sub2 := testSub("s2")
	sub2.MemberID = "m1"
	sub2.Status = domain.StatusCanceled // avoid tripping the one-active index first
	if err := store.CreateWithPayment(ctx, sub2, testPayment("pay1", "s2")); err == nil {
		t.Fatal("expected error from duplicate payment id")
	}

	var count int
	if err := store.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM subscription WHERE id = 's2'").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Error("subscription insert should have rolled back with the payment")
	}
}

// TestGetActiveByMember_NoneActive verifies canceled rows are not returned.
func TestGetActiveByMember_NoneActive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sub := testSub("s1")
	sub.Status = domain.StatusCanceled
	sub.AutoRenew = false
	if err := store.Save(ctx, sub); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := store.GetActiveByMember(ctx, "m1"); err == nil {
		t.Error("expected not-found error for canceled-only history")
	}
}

// TestListDue filters on status, auto_renew, and period end.
func TestListDue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	due := testSub("s1")
	if err := store.CreateWithPayment(ctx, due, testPayment("pay1", "s1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	subs, err := store.ListDue(ctx, now)
	if err != nil {
		t.Fatalf("list due failed: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != "s1" {
		t.Fatalf("expected s1 due, got %+v", subs)
	}

	// Not due the day before the period ends.
	subs, err = store.ListDue(ctx, now.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("list due failed: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("expected nothing due, got %+v", subs)
	}
}

// TestRenewWithPayment verifies the rollover update and renewal payment
// commit together.
func TestRenewWithPayment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateWithPayment(ctx, testSub("s1"), testPayment("pay1", "s1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	renewed := testSub("s1")
	renewed.PlanID = "p2"
	renewed.CurrentPeriodStart = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	renewed.CurrentPeriodEnd = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	pay := testPayment("pay2", "s1")
	pay.Amount = decimal.RequireFromString("55.00")
	pay.PaidAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if err := store.RenewWithPayment(ctx, renewed, pay); err != nil {
		t.Fatalf("renew failed: %v", err)
	}

	got, err := store.GetActiveByMember(ctx, "m1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.PlanID != "p2" {
		t.Errorf("expected plan p2 after renewal, got %s", got.PlanID)
	}
	if !got.CurrentPeriodEnd.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("period not rolled: %v", got.CurrentPeriodEnd)
	}

	var count int
	if err := store.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM payment WHERE subscription_id = 's1'").Scan(&count); err != nil {
		t.Fatalf("payment count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 payments after renewal, got %d", count)
	}
}
