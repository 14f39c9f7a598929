package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"branch-visit-planner/internal/domain"
)

// SQLite-backed implementation of the BranchRepository port.
type SqliteBranchRepository struct{ DB *sql.DB }

func NewSqliteBranchRepository(db *sql.DB) *SqliteBranchRepository {
	return &SqliteBranchRepository{DB: db}
}

// Return the depot plus the branches available for planning. The depot row
// is always included so a planning run can start even when every branch has
// been visited.
func (s *SqliteBranchRepository) ListStops(ctx context.Context, includeVisited bool) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite branch repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		address,
		lat,
		lng,
		is_hq
	FROM branches
	WHERE visited = 0 OR is_hq = 1
	ORDER BY id;
	`
	if includeVisited {
		query = `
	SELECT
		id,
		name,
		address,
		lat,
		lng,
		is_hq
	FROM branches
	ORDER BY id;
	`
	}

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query branches table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var stop domain.Stop
		var address sql.NullString
		if err := rows.Scan(&stop.ID, &stop.Name, &address, &stop.Coords.Lat, &stop.Coords.Lng, &stop.IsDepot); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		stop.Address = address.String
		stop.Index = len(stops)
		stops = append(stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}

// Flag the given branch IDs as visited.
func (s *SqliteBranchRepository) MarkVisited(ctx context.Context, ids []int64) error {
	if s.DB == nil {
		return errors.New("sqlite branch repository: DB is nil")
	}

	if len(ids) == 0 {
		return nil
	}

	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
	UPDATE branches
	SET visited = 1
	WHERE id IN (%s) AND is_hq = 0;
	`, strings.Join(ph, ","))

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark visited: update branches: %w", err)
	}

	return nil
}

// Clear the visited flag on every non-depot branch.
func (s *SqliteBranchRepository) ResetVisits(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sqlite branch repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `UPDATE branches SET visited = 0 WHERE is_hq = 0;`); err != nil {
		return fmt.Errorf("reset visits: update branches: %w", err)
	}

	return nil
}
