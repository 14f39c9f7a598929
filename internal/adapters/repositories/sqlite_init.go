package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBranchesQuery := `
	CREATE TABLE IF NOT EXISTS branches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		address TEXT,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		visited INTEGER NOT NULL DEFAULT 0,
		is_hq INTEGER NOT NULL DEFAULT 0
	);
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS matrix_cache (
        pair_key TEXT PRIMARY KEY,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL
    );
	`

	statements := []string{
		createBranchesQuery,
		createMatrixCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type BranchSeed struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	IsHQ    bool    `json:"is_hq"`
}

// Populate the database with branch data from a JSON file. The seed must
// contain exactly one headquarters entry, the depot every route starts and
// ends at.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed branches: read %q: %w", jsonPath, err)
	}

	var data []BranchSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed branches: parse json: %w", err)
	}

	hqCount := 0
	rows := make([]BranchSeed, 0, len(data))
	for i, item := range data {
		if item.ID <= 0 {
			return fmt.Errorf("seed branches: invalid id at index %d: %d", i+1, item.ID)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed branches: item at index %d: name cannot be empty", i+1)
		}
		if item.IsHQ {
			hqCount++
		}
		item.Name = name
		rows = append(rows, item)
	}

	if hqCount != 1 {
		return fmt.Errorf("seed branches: exactly one headquarters entry required, found %d", hqCount)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed branches: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO branches (
		id,
		name,
		address,
		lat,
		lng,
		visited,
		is_hq
	)
	VALUES (?, ?, ?, ?, ?, 0, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed branches: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range rows {
		if _, err := stmt.Exec(b.ID, b.Name, b.Address, b.Lat, b.Lng, b.IsHQ); err != nil {
			return fmt.Errorf("seed branches: insert id=%d: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed branches: commit tx: %w", err)
	}

	return nil
}
