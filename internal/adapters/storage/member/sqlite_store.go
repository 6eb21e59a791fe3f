package member

import (
	"context"
	"database/sql"
	"fmt"

	"gymhall/internal/adapters/storage"
	domain "gymhall/internal/domain/member"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const memberColumns = "id, account_id, email, username, first_name, last_name, phone, active"

func scanMember(row *sql.Row) (domain.Member, error) {
	var entity domain.Member
	var accountID sql.NullString
	var active int
	err := row.Scan(
		&entity.ID,
		&accountID,
		&entity.Email,
		&entity.Username,
		&entity.FirstName,
		&entity.LastName,
		&entity.Phone,
		&active,
	)
	if err == sql.ErrNoRows {
		return domain.Member{}, fmt.Errorf("member not found: %w", err)
	}
	if err != nil {
		return domain.Member{}, err
	}
	if accountID.Valid {
		entity.AccountID = accountID.String
	}
	entity.Active = active != 0
	return entity, nil
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member WHERE id = ?"
	return scanMember(s.db.QueryRowContext(ctx, query, id))
}

// GetByAccountID retrieves a Member by its login account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member WHERE account_id = ?"
	return scanMember(s.db.QueryRowContext(ctx, query, accountID))
}

// GetByEmail retrieves a Member by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member WHERE email = ?"
	return scanMember(s.db.QueryRowContext(ctx, query, email))
}

// GetByUsername retrieves a Member by username.
// PRE: username is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member WHERE username = ?"
	return scanMember(s.db.QueryRowContext(ctx, query, username))
}

// Save persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	query := `INSERT INTO member (id, account_id, email, username, first_name, last_name, phone, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id=excluded.account_id,
			email=excluded.email,
			username=excluded.username,
			first_name=excluded.first_name,
			last_name=excluded.last_name,
			phone=excluded.phone,
			active=excluded.active`

	var accountID any
	if entity.AccountID != "" {
		accountID = entity.AccountID
	}

	active := 0
	if entity.Active {
		active = 1
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		accountID,
		entity.Email,
		entity.Username,
		entity.FirstName,
		entity.LastName,
		entity.Phone,
		active,
	)
	return err
}
