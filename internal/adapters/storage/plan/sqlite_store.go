package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"gymhall/internal/adapters/storage"
	domain "gymhall/internal/domain/plan"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new plan store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const planColumns = "id, name, price, billing_period, perks, active"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (domain.Plan, error) {
	var entity domain.Plan
	var price, perks string
	var active int
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&price,
		&entity.BillingPeriod,
		&perks,
		&active,
	)
	if err == sql.ErrNoRows {
		return domain.Plan{}, fmt.Errorf("plan not found: %w", err)
	}
	if err != nil {
		return domain.Plan{}, err
	}
	entity.Price, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("invalid stored price for plan %s: %w", entity.ID, err)
	}
	if err := json.Unmarshal([]byte(perks), &entity.Perks); err != nil {
		return domain.Plan{}, fmt.Errorf("invalid stored perks for plan %s: %w", entity.ID, err)
	}
	entity.Active = active != 0
	return entity, nil
}

// GetByID retrieves a Plan by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	query := "SELECT " + planColumns + " FROM plan WHERE id = ?"
	return scanPlan(s.db.QueryRowContext(ctx, query, id))
}

// List returns all plans ordered by price.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Plan, error) {
	return s.list(ctx, "SELECT "+planColumns+" FROM plan ORDER BY CAST(price AS REAL), name")
}

// ListActive returns plans visible for selection, ordered by price.
func (s *SQLiteStore) ListActive(ctx context.Context) ([]domain.Plan, error) {
	return s.list(ctx, "SELECT "+planColumns+" FROM plan WHERE active = 1 ORDER BY CAST(price AS REAL), name")
}

func (s *SQLiteStore) list(ctx context.Context, query string) ([]domain.Plan, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Save persists a Plan to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Plan) error {
	perks, err := json.Marshal(entity.Perks)
	if err != nil {
		return err
	}

	query := `INSERT INTO plan (id, name, price, billing_period, perks, active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			price=excluded.price,
			billing_period=excluded.billing_period,
			perks=excluded.perks,
			active=excluded.active`

	active := 0
	if entity.Active {
		active = 1
	}

	_, err = s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Price.StringFixed(2),
		entity.BillingPeriod,
		string(perks),
		active,
	)
	return err
}
