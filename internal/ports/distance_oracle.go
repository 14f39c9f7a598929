package ports

import (
	"context"

	"branch-visit-planner/internal/domain"
)

// Contract for building the pairwise travel matrix over a stop set.
type DistanceOracle interface {
	// GetMatrix returns a square matrix whose dimension equals
	// len(coords). Cells the upstream service cannot resolve are filled
	// with a finite penalty value, never left empty.
	GetMatrix(ctx context.Context, coords []domain.Coordinates) (domain.DistanceMatrix, error)
}
