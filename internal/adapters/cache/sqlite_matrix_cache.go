package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"branch-visit-planner/internal/ports"
)

// SQLite-backed cache for matrix cells, used by single-instance local runs
// where the branch store and the cache share one database file.
type SqliteMatrixCache struct {
	DB *sql.DB
}

func NewSqliteMatrixCache(db *sql.DB) *SqliteMatrixCache {
	return &SqliteMatrixCache{DB: db}
}

// Fetch cached cells for the given pair keys.
func (s *SqliteMatrixCache) GetMany(ctx context.Context, keys []string) (map[string]ports.MatrixCell, error) {
	if s.DB == nil {
		return nil, errors.New("matrix cache: db is nil")
	}

	if len(keys) == 0 {
		return map[string]ports.MatrixCell{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	ph := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]ports.MatrixCell{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, k := range uniq {
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT pair_key, distance_meters, duration_seconds
    FROM matrix_cache
    WHERE pair_key IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get matrix cache: query matrix_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.MatrixCell, len(uniq))
	for rows.Next() {
		var key string
		var meters, seconds int
		if err := rows.Scan(&key, &meters, &seconds); err != nil {
			return nil, fmt.Errorf("get matrix cache: scan rows: %w", err)
		}
		out[key] = ports.MatrixCell{Meters: meters, Seconds: seconds}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get matrix cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cells, overwriting existing entries.
func (s *SqliteMatrixCache) PutMany(ctx context.Context, cells map[string]ports.MatrixCell) error {
	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}

	if len(cells) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO matrix_cache (pair_key, distance_meters, duration_seconds)
    VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, c := range cells {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert matrix cache: empty pair key")
		}

		if _, err := stmt.ExecContext(ctx, key, c.Meters, c.Seconds); err != nil {
			return fmt.Errorf("insert matrix cache key=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert matrix cache commit: %w", err)
	}

	return nil
}
