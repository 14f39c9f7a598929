package planner

import (
	"math"

	"branch-visit-planner/internal/domain"
)

// BuildDayRoute constructs a single day's trip using a greedy
// nearest-feasible-neighbor scan.
//
// Starting from the depot, each step considers every still-unscheduled stop.
// A stop is feasible when appending it and then closing back to the depot
// keeps the day's total within maxMeters. Among feasible candidates the one
// with the shortest leg from the current position wins; equal legs break by
// lowest stop index so re-running on the same input always builds the same
// route. Chosen stops are removed from unscheduled.
//
// Returns nil when unscheduled is empty, when the depot is outside the
// matrix, or when no single stop's round trip fits the budget — the caller
// treats a nil route as "no progress possible today", not as an error.
func BuildDayRoute(m domain.DistanceMatrix, unscheduled map[int]struct{}, depot, maxMeters int) domain.Route {
	if len(unscheduled) == 0 || depot < 0 || depot >= m.Dim() {
		return nil
	}

	route := domain.Route{depot}
	total := 0

	for {
		last := route[len(route)-1]
		next := -1
		bestLeg := math.MaxInt

		for c := range unscheduled {
			leg := m.Meters[last][c]
			closing := leg + m.Meters[c][depot]
			if total+closing > maxMeters {
				continue
			}
			if leg < bestLeg || (leg == bestLeg && c < next) {
				bestLeg = leg
				next = c
			}
		}

		if next == -1 {
			break
		}

		route = append(route, next)
		total += bestLeg
		delete(unscheduled, next)
	}

	if len(route) == 1 {
		return nil
	}

	return append(route, depot)
}
