package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"branch-visit-planner/internal/domain"
)

// symmetricMatrix builds a DistanceMatrix from the upper triangle of meter
// distances; durations are derived as meters/10 to keep both populated.
func symmetricMatrix(meters [][]int) domain.DistanceMatrix {
	n := len(meters)
	m := domain.NewDistanceMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Meters[i][j] = meters[i][j]
			m.Seconds[i][j] = meters[i][j] / 10
		}
	}
	return m
}

// Matrix for the depot/A/B/C scenario: indices 0=depot, 1=A, 2=B, 3=C.
func depotABCMatrix() domain.DistanceMatrix {
	return symmetricMatrix([][]int{
		{0, 50000, 60000, 150000},
		{50000, 0, 20000, 140000},
		{60000, 20000, 0, 130000},
		{150000, 140000, 130000, 0},
	})
}

func indexSet(indices ...int) map[int]struct{} {
	s := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

func TestBuildDayRouteGreedyScenario(t *testing.T) {
	m := depotABCMatrix()
	unscheduled := indexSet(1, 2, 3)

	route := BuildDayRoute(m, unscheduled, 0, 180000)

	// A first (nearest), then B (A->B->depot closes at 130000), C never fits.
	require.Equal(t, domain.Route{0, 1, 2, 0}, route)
	require.Equal(t, 130000, route.TotalMeters(m))
	require.Equal(t, map[int]struct{}{3: {}}, unscheduled)
}

func TestBuildDayRouteTieBreaksByLowestIndex(t *testing.T) {
	m := symmetricMatrix([][]int{
		{0, 1000, 1000},
		{1000, 0, 1000},
		{1000, 1000, 0},
	})
	unscheduled := indexSet(1, 2)

	route := BuildDayRoute(m, unscheduled, 0, 10000)

	require.Equal(t, domain.Route{0, 1, 2, 0}, route)
}

func TestBuildDayRouteNoFeasibleStop(t *testing.T) {
	m := depotABCMatrix()
	unscheduled := indexSet(3)

	// C's round trip alone is 300000 > 180000.
	route := BuildDayRoute(m, unscheduled, 0, 180000)

	require.Nil(t, route)
	require.Contains(t, unscheduled, 3)
}

func TestBuildDayRouteEmptyInput(t *testing.T) {
	m := depotABCMatrix()

	require.Nil(t, BuildDayRoute(m, indexSet(), 0, 180000))
}

func TestBuildDayRouteDepotOutsideMatrix(t *testing.T) {
	m := depotABCMatrix()

	require.Nil(t, BuildDayRoute(m, indexSet(1), 7, 180000))
	require.Nil(t, BuildDayRoute(m, indexSet(1), -1, 180000))
}

func TestBuildDayRouteNeverExceedsBudget(t *testing.T) {
	m := depotABCMatrix()

	for _, budget := range []int{100000, 130000, 180000, 1000000} {
		unscheduled := indexSet(1, 2, 3)
		route := BuildDayRoute(m, unscheduled, 0, budget)
		if route == nil {
			continue
		}
		require.LessOrEqual(t, route.TotalMeters(m), budget)
		require.Equal(t, 0, route[0])
		require.Equal(t, 0, route[len(route)-1])
	}
}
