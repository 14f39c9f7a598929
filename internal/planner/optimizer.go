package planner

import (
	"math"
	"slices"

	"branch-visit-planner/internal/domain"
)

// RouteOptimizer proposes a better ordering for a fixed set of stops,
// modeled as a single-vehicle TSP through the depot and the given stops
// with a hard distance cap. Implementations are advisory: a nil proposal
// means "keep what you have", and no implementation ever returns an error.
type RouteOptimizer interface {
	Optimize(m domain.DistanceMatrix, stops []int, depot, maxMeters int) domain.Route
}

// PassthroughOptimizer never proposes a reordering. It is the stub used
// when intra-day optimization is disabled and in tests that need the
// builder's ordering preserved.
type PassthroughOptimizer struct{}

func (PassthroughOptimizer) Optimize(domain.DistanceMatrix, []int, int, int) domain.Route {
	return nil
}

// TwoOptOptimizer searches for a shorter depot-closed tour with
// cheapest-arc construction followed by bounded 2-opt improvement sweeps.
// Reversals are evaluated by full recomputation so asymmetric matrices are
// handled correctly. The sweep cap keeps the search bounded regardless of
// input; hitting it simply returns the best tour found so far.
type TwoOptOptimizer struct {
	// MaxSweeps limits full 2-opt passes per call. Zero means the default.
	MaxSweeps int
}

const defaultMaxSweeps = 16

func (o TwoOptOptimizer) Optimize(m domain.DistanceMatrix, stops []int, depot, maxMeters int) domain.Route {
	n := m.Dim()
	if depot < 0 || depot >= n || len(stops) == 0 {
		return nil
	}
	for _, s := range stops {
		if s < 0 || s >= n || s == depot {
			return nil
		}
	}

	tour := cheapestArcTour(m, stops, depot)
	if tour == nil {
		return nil
	}

	sweeps := o.MaxSweeps
	if sweeps <= 0 {
		sweeps = defaultMaxSweeps
	}
	tour = twoOptImprove(m, tour, sweeps)

	if tour.TotalMeters(m) > maxMeters {
		return nil
	}
	return tour
}

// cheapestArcTour builds an initial closed tour by repeatedly following the
// cheapest outgoing arc, ties broken by lowest stop index.
func cheapestArcTour(m domain.DistanceMatrix, stops []int, depot int) domain.Route {
	remaining := make(map[int]struct{}, len(stops))
	for _, s := range stops {
		remaining[s] = struct{}{}
	}
	if len(remaining) != len(stops) {
		return nil
	}

	tour := domain.Route{depot}
	current := depot
	for len(remaining) > 0 {
		next := -1
		best := math.MaxInt
		for c := range remaining {
			if leg := m.Meters[current][c]; leg < best || (leg == best && c < next) {
				best = leg
				next = c
			}
		}
		tour = append(tour, next)
		delete(remaining, next)
		current = next
	}
	return append(tour, depot)
}

// twoOptImprove runs first-improvement 2-opt sweeps over the tour's interior
// (the depot endpoints stay fixed) until a sweep finds nothing or the sweep
// cap is reached.
func twoOptImprove(m domain.DistanceMatrix, tour domain.Route, maxSweeps int) domain.Route {
	best := tour.TotalMeters(m)
	scratch := make(domain.Route, len(tour))

	for sweep := 0; sweep < maxSweeps; sweep++ {
		improved := false

		for i := 1; i < len(tour)-2; i++ {
			for j := i + 1; j < len(tour)-1; j++ {
				copy(scratch, tour)
				reverseSegment(scratch, i, j)
				if total := scratch.TotalMeters(m); total < best {
					copy(tour, scratch)
					best = total
					improved = true
				}
			}
		}

		if !improved {
			break
		}
	}
	return tour
}

func reverseSegment(r domain.Route, i, j int) {
	for ; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

// acceptOptimized reports whether a proposed route may replace the baseline:
// it must visit exactly the same stop set, stay within the distance budget,
// and be strictly shorter than the baseline. Anything else keeps the
// baseline, so a rejected proposal is indistinguishable from a no-op.
func acceptOptimized(m domain.DistanceMatrix, baseline, proposed domain.Route, depot, maxMeters int) bool {
	if len(proposed) < 2 || proposed[0] != depot || proposed[len(proposed)-1] != depot {
		return false
	}

	base := baseline.Stops(depot)
	prop := proposed.Stops(depot)
	if len(base) != len(prop) {
		return false
	}
	slices.Sort(base)
	slices.Sort(prop)
	if !slices.Equal(base, prop) {
		return false
	}

	total := proposed.TotalMeters(m)
	return total <= maxMeters && total < baseline.TotalMeters(m)
}
