// Package sqlite implements the repository interfaces on an embedded SQLite
// database, using the pure-Go modernc.org/sqlite driver so the binary builds
// without CGo. The database is a single file (or ":memory:" in tests).
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface. The server owns the lifecycle: New at startup, Close on
// shutdown.
type DB struct {
	conn *sql.DB
}

// New opens (and if necessary creates) the database at dbPath and runs
// migrations. Use ":memory:" for a throwaway database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Fail fast on a bad path or permissions instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress, which a web
	// server needs. Foreign keys are off by default in SQLite; the schema
	// relies on them (invoices → customers, portfolioitems → users).
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. All statements are idempotent
// (CREATE ... IF NOT EXISTS), so this is safe to run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL DEFAULT '',
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS customers (
			id        TEXT PRIMARY KEY,
			name      TEXT NOT NULL,
			email     TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("creating customers table: %w", err)
	}

	// amount is integer cents; date is "YYYY-MM-DD" text with day precision.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS invoices (
			id          TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL REFERENCES customers(id),
			amount      INTEGER NOT NULL,
			status      TEXT NOT NULL CHECK (status IN ('pending', 'paid')),
			date        TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices(date);
		CREATE INDEX IF NOT EXISTS idx_invoices_customer_id ON invoices(customer_id);
	`)
	if err != nil {
		return fmt.Errorf("creating invoices table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS portfolioitems (
			id        TEXT PRIMARY KEY,
			title     TEXT NOT NULL,
			image_url TEXT NOT NULL,
			body      TEXT NOT NULL,
			link      TEXT NOT NULL,
			status    TEXT NOT NULL CHECK (status IN ('active', 'inactive')),
			date      TEXT NOT NULL,
			user_id   TEXT NOT NULL REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_portfolioitems_date ON portfolioitems(date);
	`)
	if err != nil {
		return fmt.Errorf("creating portfolioitems table: %w", err)
	}

	return nil
}
