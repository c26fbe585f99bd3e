package database

import (
	"database/sql"
	"fmt"
	"log"
)

// schemaVersion reads the PRAGMA user_version stamp.
func schemaVersion(conn *sql.DB) (int, error) {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

func setSchemaVersion(conn *sql.DB, version int) error {
	if _, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("setting schema version %d: %w", version, err)
	}
	return nil
}

// hasLeadTables reports whether an unstamped database already carries
// the lead schema. Early builds created postings and leads without
// setting user_version; those stores get stamped as version 1 rather
// than re-running the initial DDL.
func hasLeadTables(conn *sql.DB) (bool, error) {
	var count int
	err := conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('postings', 'leads')",
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for lead tables: %w", err)
	}
	return count > 0, nil
}

// migrate brings the lead store up to the latest schema version,
// applying each pending migration in its own transaction.
func migrate(conn *sql.DB) error {
	current, err := schemaVersion(conn)
	if err != nil {
		return err
	}

	if current == 0 {
		unstamped, err := hasLeadTables(conn)
		if err != nil {
			return err
		}
		if unstamped {
			log.Printf("Stamping pre-versioning lead store as schema 1")
			if err := setSchemaVersion(conn, 1); err != nil {
				return err
			}
			current = 1
		}
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		log.Printf("Applying schema migration %d (%s)", m.Version, m.Description)

		tx, err := conn.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}

		// user_version cannot move inside the transaction under
		// modernc/sqlite; the DDL is idempotent if we crash between.
		if err := setSchemaVersion(conn, m.Version); err != nil {
			return err
		}
	}

	return nil
}
