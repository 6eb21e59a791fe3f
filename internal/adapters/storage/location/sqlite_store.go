package location

import (
	"context"

	"gymhall/internal/adapters/storage"
	domain "gymhall/internal/domain/location"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new location store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns all locations ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, capacity FROM location ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Capacity); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// Save persists a Location to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Location) error {
	query := `INSERT INTO location (id, name, capacity)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			capacity=excluded.capacity`
	_, err := s.db.ExecContext(ctx, query, entity.ID, entity.Name, entity.Capacity)
	return err
}
