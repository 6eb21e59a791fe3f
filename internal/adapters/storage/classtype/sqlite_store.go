package classtype

import (
	"context"
	"database/sql"
	"fmt"

	"gymhall/internal/adapters/storage"
	domain "gymhall/internal/domain/classtype"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new class type store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a ClassType by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.ClassType, error) {
	query := "SELECT id, name, description, default_duration_min FROM class_type WHERE id = ?"
	var entity domain.ClassType
	err := s.db.QueryRowContext(ctx, query, id).Scan(&entity.ID, &entity.Name, &entity.Description, &entity.DefaultDurationMin)
	if err == sql.ErrNoRows {
		return domain.ClassType{}, fmt.Errorf("class type not found: %w", err)
	}
	return entity, err
}

// List returns all class types ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.ClassType, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, description, default_duration_min FROM class_type ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.ClassType
	for rows.Next() {
		var ct domain.ClassType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Description, &ct.DefaultDurationMin); err != nil {
			return nil, err
		}
		types = append(types, ct)
	}
	return types, rows.Err()
}

// Save persists a ClassType to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.ClassType) error {
	query := `INSERT INTO class_type (id, name, description, default_duration_min)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			default_duration_min=excluded.default_duration_min`
	_, err := s.db.ExecContext(ctx, query, entity.ID, entity.Name, entity.Description, entity.DefaultDurationMin)
	return err
}
