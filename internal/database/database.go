// Package database persists the lead funnel in a single sqlite file:
// collected postings on one side, their scored analyses on the other.
// The scalar lead columns exist for listing and filtering; the full
// analysis payload is stored as a JSON blob and decoded on demand.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openPragmas run on every connection before migration. WAL lets the
// pipeline write while the dashboard reads the same file; the busy
// timeout covers their brief overlap; foreign keys back the
// posting -> lead reference.
var openPragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}

// DB is the lead store.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens the lead store at dbPath, creating the file and its
// parent directory on first use and migrating the schema forward.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, pragma := range openPragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the backing file path.
func (db *DB) Path() string {
	return db.path
}
