package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymhall/internal/adapters/storage"
	paymentDomain "gymhall/internal/domain/payment"
	domain "gymhall/internal/domain/subscription"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new subscription store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const subscriptionColumns = "id, member_id, plan_id, next_plan_id, status, current_period_start, current_period_end, auto_renew, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (domain.Subscription, error) {
	var entity domain.Subscription
	var nextPlanID sql.NullString
	var start, end, createdAt string
	var autoRenew int
	err := row.Scan(
		&entity.ID,
		&entity.MemberID,
		&entity.PlanID,
		&nextPlanID,
		&entity.Status,
		&start,
		&end,
		&autoRenew,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return domain.Subscription{}, fmt.Errorf("subscription not found: %w", err)
	}
	if err != nil {
		return domain.Subscription{}, err
	}
	if nextPlanID.Valid {
		entity.NextPlanID = nextPlanID.String
	}
	entity.CurrentPeriodStart, _ = time.Parse(time.RFC3339Nano, start)
	entity.CurrentPeriodEnd, _ = time.Parse(time.RFC3339Nano, end)
	entity.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	entity.AutoRenew = autoRenew != 0
	return entity, nil
}

// GetActiveByMember retrieves the member's current active subscription.
// The newest row wins if the partial unique index predates the data.
// PRE: memberID is non-empty
// POST: Returns the entity or an error if none is active
func (s *SQLiteStore) GetActiveByMember(ctx context.Context, memberID string) (domain.Subscription, error) {
	query := "SELECT " + subscriptionColumns + ` FROM subscription
		WHERE member_id = ? AND status = 'active'
		ORDER BY rowid DESC LIMIT 1`
	return scanSubscription(s.db.QueryRowContext(ctx, query, memberID))
}

// ListByMember returns the member's full subscription history, newest first.
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string) ([]domain.Subscription, error) {
	query := "SELECT " + subscriptionColumns + " FROM subscription WHERE member_id = ? ORDER BY rowid DESC"
	return s.list(ctx, query, memberID)
}

// ListDue returns active auto-renewing subscriptions whose period has
// ended at or before now.
func (s *SQLiteStore) ListDue(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	query := "SELECT " + subscriptionColumns + ` FROM subscription
		WHERE status = 'active' AND auto_renew = 1 AND current_period_end <= ?
		ORDER BY current_period_end`
	return s.list(ctx, query, now.UTC().Format(time.RFC3339Nano))
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func upsertSubscription(ctx context.Context, ex interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, entity domain.Subscription) error {
	query := `INSERT INTO subscription (id, member_id, plan_id, next_plan_id, status, current_period_start, current_period_end, auto_renew, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			plan_id=excluded.plan_id,
			next_plan_id=excluded.next_plan_id,
			status=excluded.status,
			current_period_start=excluded.current_period_start,
			current_period_end=excluded.current_period_end,
			auto_renew=excluded.auto_renew`

	var nextPlanID any
	if entity.NextPlanID != "" {
		nextPlanID = entity.NextPlanID
	}

	autoRenew := 0
	if entity.AutoRenew {
		autoRenew = 1
	}

	_, err := ex.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.PlanID,
		nextPlanID,
		entity.Status,
		entity.CurrentPeriodStart.UTC().Format(time.RFC3339Nano),
		entity.CurrentPeriodEnd.UTC().Format(time.RFC3339Nano),
		autoRenew,
		entity.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func insertPayment(ctx context.Context, ex interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, pay paymentDomain.Payment) error {
	query := `INSERT INTO payment (id, subscription_id, amount, paid_at, method, status)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := ex.ExecContext(ctx, query,
		pay.ID,
		pay.SubscriptionID,
		pay.Amount.StringFixed(2),
		pay.PaidAt.UTC().Format(time.RFC3339Nano),
		pay.Method,
		pay.Status,
	)
	return err
}

// Save persists a Subscription's mutable fields.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Subscription) error {
	return upsertSubscription(ctx, s.db, entity)
}

// CreateWithPayment inserts a new subscription together with its
// activation payment in a single transaction.
// PRE: entity and pay have been validated; pay references entity
// POST: Both rows committed, or neither
func (s *SQLiteStore) CreateWithPayment(ctx context.Context, entity domain.Subscription, pay paymentDomain.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertSubscription(ctx, tx, entity); err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	if err := insertPayment(ctx, tx, pay); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return tx.Commit()
}

// RenewWithPayment applies a renewal update together with the renewal
// payment in a single transaction.
// PRE: entity already exists; pay references entity
// POST: Both writes committed, or neither
func (s *SQLiteStore) RenewWithPayment(ctx context.Context, entity domain.Subscription, pay paymentDomain.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertSubscription(ctx, tx, entity); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if err := insertPayment(ctx, tx, pay); err != nil {
		return fmt.Errorf("failed to insert renewal payment: %w", err)
	}
	return tx.Commit()
}
