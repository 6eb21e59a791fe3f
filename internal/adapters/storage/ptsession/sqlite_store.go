package ptsession

import (
	"context"
	"time"

	"gymhall/internal/adapters/storage"
	domain "gymhall/internal/domain/ptsession"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new personal-training session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ExistsFor reports whether the member already holds a booking with
// this trainer at this exact start time.
// PRE: memberID and trainerID are non-empty
// POST: Returns true if a matching booking exists
func (s *SQLiteStore) ExistsFor(ctx context.Context, memberID, trainerID string, startAt time.Time) (bool, error) {
	query := "SELECT COUNT(1) FROM pt_session WHERE member_id = ? AND trainer_id = ? AND start_at = ?"
	var count int
	err := s.db.QueryRowContext(ctx, query, memberID, trainerID, startAt.UTC().Format(time.RFC3339Nano)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUpcomingByMember returns the member's future bookings with
// trainer names, soonest first.
func (s *SQLiteStore) ListUpcomingByMember(ctx context.Context, memberID string, now time.Time) ([]Booking, error) {
	query := `SELECT ps.id, m.first_name || ' ' || m.last_name, ps.start_at, ps.duration_min, ps.status
		FROM pt_session ps
		JOIN trainer t ON t.id = ps.trainer_id
		JOIN member m ON m.id = t.member_id
		WHERE ps.member_id = ? AND ps.start_at >= ? AND ps.status != 'canceled'
		ORDER BY ps.start_at`

	rows, err := s.db.QueryContext(ctx, query, memberID, now.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		var startAt string
		if err := rows.Scan(&b.ID, &b.TrainerName, &startAt, &b.DurationMin, &b.Status); err != nil {
			return nil, err
		}
		b.StartAt, _ = time.Parse(time.RFC3339Nano, startAt)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Save persists a PTSession to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.PTSession) error {
	query := `INSERT INTO pt_session (id, trainer_id, member_id, start_at, duration_min, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_at=excluded.start_at,
			duration_min=excluded.duration_min,
			status=excluded.status`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.TrainerID,
		entity.MemberID,
		entity.StartAt.UTC().Format(time.RFC3339Nano),
		entity.DurationMin,
		entity.Status,
	)
	return err
}
