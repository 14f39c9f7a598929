package planner

import (
	"math"

	"branch-visit-planner/internal/domain"
)

// ExtendRoute grows a closed route toward a minimum daily distance.
//
// The builder can finish a day well under budget; this pass keeps appending
// the nearest unscheduled stop before the closing depot leg for as long as
// the re-closed route stays within maxMeters, stopping once the total
// reaches minMeters or no further stop fits. Candidates whose insertion
// would shrink the total are skipped so the output distance never drops
// below the input distance. Appended stops are removed from unscheduled.
//
// The input route is returned unchanged when it already meets minMeters or
// when no candidate can be added.
func ExtendRoute(m domain.DistanceMatrix, route domain.Route, unscheduled map[int]struct{}, depot, minMeters, maxMeters int) domain.Route {
	if len(route) < 2 || len(unscheduled) == 0 {
		return route
	}

	total := route.TotalMeters(m)

	for total < minMeters {
		last := route[len(route)-2]
		closing := m.Meters[last][depot]

		next := -1
		bestLeg := math.MaxInt
		bestTotal := 0

		for c := range unscheduled {
			candidate := total - closing + m.Meters[last][c] + m.Meters[c][depot]
			if candidate > maxMeters || candidate < total {
				continue
			}
			leg := m.Meters[last][c]
			if leg < bestLeg || (leg == bestLeg && c < next) {
				bestLeg = leg
				next = c
				bestTotal = candidate
			}
		}

		if next == -1 {
			break
		}

		route = append(route[:len(route)-1], next, depot)
		total = bestTotal
		delete(unscheduled, next)
	}

	return route
}
