package distance

import (
	"context"
	"fmt"

	"branch-visit-planner/internal/domain"
)

// MockOracle serves a fixed matrix; tests wire it where the Google oracle
// would go.
type MockOracle struct {
	Matrix domain.DistanceMatrix
}

func (m *MockOracle) GetMatrix(ctx context.Context, coords []domain.Coordinates) (domain.DistanceMatrix, error) {
	if len(coords) != m.Matrix.Dim() {
		return domain.DistanceMatrix{}, fmt.Errorf(
			"mock oracle: %d coordinates for a %dx%d matrix",
			len(coords), m.Matrix.Dim(), m.Matrix.Dim(),
		)
	}
	return m.Matrix, nil
}
