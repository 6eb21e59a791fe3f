package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gymhall/internal/adapters/storage"
	domain "gymhall/internal/domain/payment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const paymentColumns = "id, subscription_id, amount, paid_at, method, status"

// ListBySubscription returns payments for a subscription, newest first.
func (s *SQLiteStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]domain.Payment, error) {
	query := "SELECT " + paymentColumns + " FROM payment WHERE subscription_id = ? ORDER BY paid_at DESC"
	return s.list(ctx, query, subscriptionID)
}

// ListByMember returns all payments across the member's subscriptions,
// newest first.
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string) ([]domain.Payment, error) {
	query := `SELECT p.id, p.subscription_id, p.amount, p.paid_at, p.method, p.status
		FROM payment p
		JOIN subscription sub ON sub.id = p.subscription_id
		WHERE sub.member_id = ?
		ORDER BY p.paid_at DESC`
	return s.list(ctx, query, memberID)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var entity domain.Payment
		var amount, paidAt string
		if err := rows.Scan(&entity.ID, &entity.SubscriptionID, &amount, &paidAt, &entity.Method, &entity.Status); err != nil {
			return nil, err
		}
		entity.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid stored amount for payment %s: %w", entity.ID, err)
		}
		entity.PaidAt, _ = time.Parse(time.RFC3339Nano, paidAt)
		payments = append(payments, entity)
	}
	return payments, rows.Err()
}

// Save persists a Payment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (payments are immutable, insert only)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Payment) error {
	query := `INSERT INTO payment (id, subscription_id, amount, paid_at, method, status)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.SubscriptionID,
		entity.Amount.StringFixed(2),
		entity.PaidAt.UTC().Format(time.RFC3339Nano),
		entity.Method,
		entity.Status,
	)
	return err
}
