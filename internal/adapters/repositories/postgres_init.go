package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Provision the shared postgres matrix cache used when multiple planner
// instances point at one database (see cmd/dbtool).
func InitPostgresMatrixCache(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres matrix cache: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
        pair_key TEXT PRIMARY KEY,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL
    );
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init postgres matrix cache: create table: %w", err)
	}

	return nil
}

// Drop every cached cell. Traffic-dependent durations go stale; operators
// run this before replanning a long-lived dataset.
func TruncateMatrixCache(db *sql.DB) error {
	if db == nil {
		return errors.New("truncate matrix cache: DB is nil")
	}

	if _, err := db.Exec(`DELETE FROM matrix_cache;`); err != nil {
		return fmt.Errorf("truncate matrix cache: %w", err)
	}

	return nil
}
