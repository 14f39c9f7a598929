// Package planner is the route-construction and multi-day scheduling engine.
//
// The engine is pure: given the same stop set and distance matrix it always
// produces the same plan, performs no I/O, and never mutates its inputs.
// Fetching the matrix and persisting visit state belong to the caller.
package planner

import (
	"fmt"
	"slices"

	"branch-visit-planner/internal/domain"
)

// Planner is the canonical, parameterized scheduling engine.
// MinMeters of zero disables the distance-floor extension pass; a nil
// Optimizer (or PassthroughOptimizer) disables intra-day reordering.
type Planner struct {
	MaxMeters int
	MinMeters int
	MaxDays   int
	Optimizer RouteOptimizer
}

// PlanMultiDay partitions the non-depot stops into consecutive day trips.
//
// Each iteration builds one day greedily, optionally extends it toward
// MinMeters, optionally lets the optimizer reorder it (days with more than
// two stops only), commits it, and removes its stops from the unscheduled
// set. The loop ends when every stop is scheduled, when a day comes back
// empty (no remaining stop fits the budget), or when the MaxDays safety cap
// is hit; the latter two produce a truncated partial plan, not an error.
func (p *Planner) PlanMultiDay(stops []domain.Stop, m domain.DistanceMatrix) (domain.VisitPlan, error) {
	depot, err := p.validate(stops, m)
	if err != nil {
		return domain.VisitPlan{}, err
	}

	unscheduled := make(map[int]struct{}, len(stops))
	for i, s := range stops {
		if !s.IsDepot {
			unscheduled[i] = struct{}{}
		}
	}

	plan := domain.VisitPlan{}
	for day := 1; len(unscheduled) > 0; day++ {
		if day > p.MaxDays {
			plan.Truncated = true
			break
		}

		route := BuildDayRoute(m, unscheduled, depot, p.MaxMeters)
		if route == nil {
			break
		}
		if p.MinMeters > 0 {
			route = ExtendRoute(m, route, unscheduled, depot, p.MinMeters, p.MaxMeters)
		}
		route = p.maybeOptimize(m, route, depot)

		plan.Days = append(plan.Days, daySchedule(day, route, stops, m, depot))
	}

	if len(unscheduled) > 0 {
		plan.Truncated = true
		plan.UnscheduledIDs = stopIDs(unscheduled, stops)
	}
	return plan, nil
}

// PlanSingleDay builds at most one day trip over the given stops.
// A nil schedule with a nil error means no stop fits the budget.
func (p *Planner) PlanSingleDay(stops []domain.Stop, m domain.DistanceMatrix) (*domain.DaySchedule, error) {
	depot, err := p.validate(stops, m)
	if err != nil {
		return nil, err
	}

	unscheduled := make(map[int]struct{}, len(stops))
	for i, s := range stops {
		if !s.IsDepot {
			unscheduled[i] = struct{}{}
		}
	}

	route := BuildDayRoute(m, unscheduled, depot, p.MaxMeters)
	if route == nil {
		return nil, nil
	}
	if p.MinMeters > 0 {
		route = ExtendRoute(m, route, unscheduled, depot, p.MinMeters, p.MaxMeters)
	}
	route = p.maybeOptimize(m, route, depot)

	day := daySchedule(1, route, stops, m, depot)
	return &day, nil
}

// maybeOptimize asks the optimizer for a reordering and adopts it only when
// it passes the acceptance rule. The optimizer is advisory; it can never be
// the sole producer of a day's route.
func (p *Planner) maybeOptimize(m domain.DistanceMatrix, route domain.Route, depot int) domain.Route {
	if p.Optimizer == nil {
		return route
	}
	stops := route.Stops(depot)
	if len(stops) <= 2 {
		return route
	}
	proposed := p.Optimizer.Optimize(m, stops, depot, p.MaxMeters)
	if acceptOptimized(m, route, proposed, depot, p.MaxMeters) {
		return proposed
	}
	return route
}

func (p *Planner) validate(stops []domain.Stop, m domain.DistanceMatrix) (int, error) {
	depot := -1
	for i, s := range stops {
		if !s.IsDepot {
			continue
		}
		if depot != -1 {
			return 0, fmt.Errorf("%w: stops %d and %d both flagged as depot", ErrDepotConfiguration, depot, i)
		}
		depot = i
	}
	if depot == -1 {
		return 0, fmt.Errorf("%w: no depot in %d stops", ErrDepotConfiguration, len(stops))
	}
	if m.Dim() != len(stops) {
		return 0, fmt.Errorf("%w: matrix=%d stops=%d", ErrMatrixSizeMismatch, m.Dim(), len(stops))
	}
	return depot, nil
}

func daySchedule(day int, route domain.Route, stops []domain.Stop, m domain.DistanceMatrix, depot int) domain.DaySchedule {
	visited := make([]int64, 0, len(route))
	for _, idx := range route.Stops(depot) {
		visited = append(visited, stops[idx].ID)
	}
	return domain.DaySchedule{
		Day:          day,
		Route:        route,
		TotalMeters:  route.TotalMeters(m),
		TotalSeconds: route.TotalSeconds(m),
		VisitedIDs:   visited,
	}
}

func stopIDs(indices map[int]struct{}, stops []domain.Stop) []int64 {
	idx := make([]int, 0, len(indices))
	for i := range indices {
		idx = append(idx, i)
	}
	slices.Sort(idx)

	ids := make([]int64, 0, len(idx))
	for _, i := range idx {
		ids = append(ids, stops[i].ID)
	}
	return ids
}
