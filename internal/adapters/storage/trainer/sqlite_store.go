package trainer

import (
	"context"
	"database/sql"
	"fmt"

	"gymhall/internal/adapters/storage"
	domain "gymhall/internal/domain/trainer"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new trainer store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanTrainer(row *sql.Row) (domain.Trainer, error) {
	var entity domain.Trainer
	err := row.Scan(&entity.ID, &entity.MemberID, &entity.Bio)
	if err == sql.ErrNoRows {
		return domain.Trainer{}, fmt.Errorf("trainer not found: %w", err)
	}
	return entity, err
}

// GetByID retrieves a Trainer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Trainer, error) {
	query := "SELECT id, member_id, bio FROM trainer WHERE id = ?"
	return scanTrainer(s.db.QueryRowContext(ctx, query, id))
}

// GetByMemberID retrieves a Trainer by the backing member.
// PRE: memberID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByMemberID(ctx context.Context, memberID string) (domain.Trainer, error) {
	query := "SELECT id, member_id, bio FROM trainer WHERE member_id = ?"
	return scanTrainer(s.db.QueryRowContext(ctx, query, memberID))
}

// ListProfiles returns all trainers with their display names.
func (s *SQLiteStore) ListProfiles(ctx context.Context) ([]Profile, error) {
	query := `SELECT t.id, t.member_id, m.first_name || ' ' || m.last_name, t.bio
		FROM trainer t
		JOIN member m ON m.id = t.member_id
		ORDER BY m.last_name, m.first_name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Name, &p.Bio); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Save persists a Trainer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Trainer) error {
	query := `INSERT INTO trainer (id, member_id, bio)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id=excluded.member_id,
			bio=excluded.bio`
	_, err := s.db.ExecContext(ctx, query, entity.ID, entity.MemberID, entity.Bio)
	return err
}
