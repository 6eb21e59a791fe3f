package storage

import (
	"database/sql"
	"fmt"
)

// schemaVersion is bumped whenever migrations are appended.
const schemaVersion = 1

// LatestSchemaVersion returns the schema version this binary migrates to.
func LatestSchemaVersion() int {
	return schemaVersion
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables and indexes are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS member (
		id TEXT PRIMARY KEY,
		account_id TEXT,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS plan (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		billing_period TEXT NOT NULL,
		perks TEXT NOT NULL DEFAULT '[]',
		active INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS subscription (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		plan_id TEXT NOT NULL,
		next_plan_id TEXT,
		status TEXT NOT NULL,
		current_period_start TEXT NOT NULL,
		current_period_end TEXT NOT NULL,
		auto_renew INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		FOREIGN KEY (member_id) REFERENCES member(id),
		FOREIGN KEY (plan_id) REFERENCES plan(id),
		FOREIGN KEY (next_plan_id) REFERENCES plan(id)
	);

	CREATE TABLE IF NOT EXISTS payment (
		id TEXT PRIMARY KEY,
		subscription_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		paid_at TEXT NOT NULL,
		method TEXT NOT NULL,
		status TEXT NOT NULL,
		FOREIGN KEY (subscription_id) REFERENCES subscription(id)
	);

	CREATE TABLE IF NOT EXISTS trainer (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL UNIQUE,
		bio TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS class_type (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		default_duration_min INTEGER NOT NULL DEFAULT 60
	);

	CREATE TABLE IF NOT EXISTS location (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		capacity INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS class_session (
		id TEXT PRIMARY KEY,
		class_type_id TEXT NOT NULL,
		coach_id TEXT NOT NULL,
		location_id TEXT NOT NULL,
		start_at TEXT NOT NULL,
		duration_min INTEGER NOT NULL,
		capacity_override INTEGER,
		status TEXT NOT NULL DEFAULT 'scheduled',
		FOREIGN KEY (class_type_id) REFERENCES class_type(id),
		FOREIGN KEY (coach_id) REFERENCES trainer(id),
		FOREIGN KEY (location_id) REFERENCES location(id)
	);

	CREATE TABLE IF NOT EXISTS pt_session (
		id TEXT PRIMARY KEY,
		trainer_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		start_at TEXT NOT NULL,
		duration_min INTEGER NOT NULL,
		status TEXT NOT NULL,
		FOREIGN KEY (trainer_id) REFERENCES trainer(id),
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE INDEX IF NOT EXISTS idx_subscription_member ON subscription(member_id);
	CREATE INDEX IF NOT EXISTS idx_payment_subscription ON payment(subscription_id);
	CREATE INDEX IF NOT EXISTS idx_class_session_start ON class_session(start_at);
	CREATE INDEX IF NOT EXISTS idx_pt_session_member ON pt_session(member_id);

	-- A member holds at most one active subscription. Concurrent
	-- activations race on the read-then-insert, so the invariant is
	-- enforced here rather than in request handling.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_subscription_one_active
		ON subscription(member_id) WHERE status = 'active';

	-- One booking per member/trainer/time slot.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_pt_session_slot
		ON pt_session(member_id, trainer_id, start_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// MigrateDB brings the database up to the latest schema version.
// Migrations run inside the user_version gate so reruns are no-ops.
// PRE: db is a valid database connection
// POST: schema exists and user_version == LatestSchemaVersion()
func MigrateDB(db *sql.DB) error {
	if err := InitDB(db); err != nil {
		return err
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	// Future ALTER TABLE migrations slot in here, keyed off version.

	if version < schemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}
	return nil
}
