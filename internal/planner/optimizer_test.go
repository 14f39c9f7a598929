package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"branch-visit-planner/internal/domain"
)

// Stops on a line at positions 0 (depot), 10, 20, 30; leg cost is the
// positional gap. Every tour that sweeps the line once costs 60.
func lineMatrix() domain.DistanceMatrix {
	pos := []int{0, 10, 20, 30}
	m := domain.NewDistanceMatrix(len(pos))
	for i := range pos {
		for j := range pos {
			d := pos[i] - pos[j]
			if d < 0 {
				d = -d
			}
			m.Meters[i][j] = d
			m.Seconds[i][j] = d
		}
	}
	return m
}

func TestTwoOptOptimizerFindsSweepTour(t *testing.T) {
	m := lineMatrix()

	tour := TwoOptOptimizer{}.Optimize(m, []int{1, 2, 3}, 0, 1000)

	require.NotNil(t, tour)
	require.Equal(t, 0, tour[0])
	require.Equal(t, 0, tour[len(tour)-1])
	require.ElementsMatch(t, []int{1, 2, 3}, tour.Stops(0))
	require.Equal(t, 60, tour.TotalMeters(m))
}

func TestTwoOptOptimizerRespectsBudget(t *testing.T) {
	m := lineMatrix()

	require.Nil(t, TwoOptOptimizer{}.Optimize(m, []int{1, 2, 3}, 0, 50))
}

func TestTwoOptOptimizerRejectsBadInput(t *testing.T) {
	m := lineMatrix()

	require.Nil(t, TwoOptOptimizer{}.Optimize(m, nil, 0, 1000))
	require.Nil(t, TwoOptOptimizer{}.Optimize(m, []int{9}, 0, 1000))
	require.Nil(t, TwoOptOptimizer{}.Optimize(m, []int{0}, 0, 1000))
	require.Nil(t, TwoOptOptimizer{}.Optimize(m, []int{1, 1}, 0, 1000))
}

func TestPassthroughOptimizerProposesNothing(t *testing.T) {
	m := lineMatrix()

	require.Nil(t, PassthroughOptimizer{}.Optimize(m, []int{1, 2, 3}, 0, 1000))
}

func TestAcceptOptimized(t *testing.T) {
	m := lineMatrix()
	baseline := domain.Route{0, 2, 1, 3, 0} // 20+10+20+30 = 80
	better := domain.Route{0, 1, 2, 3, 0}   // 60

	require.True(t, acceptOptimized(m, baseline, better, 0, 100))

	// Over budget.
	require.False(t, acceptOptimized(m, baseline, better, 0, 59))
	// Not strictly shorter.
	require.False(t, acceptOptimized(m, baseline, domain.Route{0, 3, 1, 2, 0}, 0, 100))
	// Different stop set.
	require.False(t, acceptOptimized(m, baseline, domain.Route{0, 1, 2, 0}, 0, 100))
	// Not depot-closed.
	require.False(t, acceptOptimized(m, baseline, domain.Route{1, 2, 3, 0}, 0, 100))
	// Nil proposal.
	require.False(t, acceptOptimized(m, baseline, nil, 0, 100))
}
