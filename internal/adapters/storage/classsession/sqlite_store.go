package classsession

import (
	"context"
	"database/sql"
	"time"

	"gymhall/internal/adapters/storage"
	domain "gymhall/internal/domain/classsession"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new class session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListBetween returns scheduled sessions with start_at in [from, to),
// joined with class type, coach, and location names, ordered by start.
func (s *SQLiteStore) ListBetween(ctx context.Context, from, to time.Time) ([]Entry, error) {
	query := `SELECT cs.id, cs.start_at, cs.duration_min,
			ct.name, ct.description,
			m.first_name || ' ' || m.last_name,
			l.name
		FROM class_session cs
		JOIN class_type ct ON ct.id = cs.class_type_id
		JOIN trainer t ON t.id = cs.coach_id
		JOIN member m ON m.id = t.member_id
		JOIN location l ON l.id = cs.location_id
		WHERE cs.status = 'scheduled' AND cs.start_at >= ? AND cs.start_at < ?
		ORDER BY cs.start_at`

	rows, err := s.db.QueryContext(ctx, query,
		from.UTC().Format(time.RFC3339Nano),
		to.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startAt string
		if err := rows.Scan(&e.ID, &startAt, &e.DurationMin, &e.Title, &e.Description, &e.Trainer, &e.Location); err != nil {
			return nil, err
		}
		e.StartAt, _ = time.Parse(time.RFC3339Nano, startAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// List returns all class sessions ordered by start time.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.ClassSession, error) {
	query := "SELECT id, class_type_id, coach_id, location_id, start_at, duration_min, capacity_override, status FROM class_session ORDER BY start_at"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.ClassSession
	for rows.Next() {
		var entity domain.ClassSession
		var startAt string
		var capacity sql.NullInt64
		if err := rows.Scan(&entity.ID, &entity.ClassTypeID, &entity.CoachID, &entity.LocationID, &startAt, &entity.DurationMin, &capacity, &entity.Status); err != nil {
			return nil, err
		}
		entity.StartAt, _ = time.Parse(time.RFC3339Nano, startAt)
		if capacity.Valid {
			entity.CapacityOverride = int(capacity.Int64)
		}
		sessions = append(sessions, entity)
	}
	return sessions, rows.Err()
}

// Save persists a ClassSession to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.ClassSession) error {
	query := `INSERT INTO class_session (id, class_type_id, coach_id, location_id, start_at, duration_min, capacity_override, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			class_type_id=excluded.class_type_id,
			coach_id=excluded.coach_id,
			location_id=excluded.location_id,
			start_at=excluded.start_at,
			duration_min=excluded.duration_min,
			capacity_override=excluded.capacity_override,
			status=excluded.status`

	var capacity any
	if entity.CapacityOverride > 0 {
		capacity = entity.CapacityOverride
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ClassTypeID,
		entity.CoachID,
		entity.LocationID,
		entity.StartAt.UTC().Format(time.RFC3339Nano),
		entity.DurationMin,
		capacity,
		entity.Status,
	)
	return err
}
