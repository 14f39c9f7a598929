package ports

import (
	"context"

	"branch-visit-planner/internal/domain"
)

// Port: a boundary for retrieving and updating branch stops in a data store.
type BranchRepository interface {
	// ListStops returns the depot plus every branch available for planning.
	// With includeVisited false, branches already visited are filtered out;
	// the depot is always included.
	ListStops(ctx context.Context, includeVisited bool) ([]domain.Stop, error)

	// MarkVisited flags the given branch IDs as visited.
	MarkVisited(ctx context.Context, ids []int64) error

	// ResetVisits clears the visited flag on every non-depot branch.
	ResetVisits(ctx context.Context) error
}
