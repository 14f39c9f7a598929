package services

import (
	"context"
	"errors"
	"fmt"

	"branch-visit-planner/internal/config"
	"branch-visit-planner/internal/domain"
	"branch-visit-planner/internal/planner"
	"branch-visit-planner/internal/platform/obs"
	"branch-visit-planner/internal/ports"
)

type PlanVisitsRequest struct {
	MaxMeters int
	MinMeters int
	Optimize  bool
	// DryRun skips marking planned branches as visited.
	DryRun bool
}

// PlanVisits orchestrates a full planning run: load the unvisited branches
// plus the depot, fetch the pairwise matrix for exactly that stop set, run
// the multi-day engine, and persist the visit flags for every scheduled
// branch. The returned stop slice carries the names/addresses the API layer
// renders; its indices match the plan's route indices.
func PlanVisits(
	ctx context.Context,
	req PlanVisitsRequest,
	repo ports.BranchRepository,
	oracle ports.DistanceOracle,
) (_ domain.VisitPlan, _ []domain.Stop, err error) {
	defer obs.Time(ctx, "services.PlanVisits")(&err)

	stops, err := repo.ListStops(ctx, false)
	if err != nil {
		return domain.VisitPlan{}, nil, fmt.Errorf("plan visits: list stops: %w", err)
	}
	if len(stops) == 0 {
		return domain.VisitPlan{}, nil, errors.New("plan visits: no branches available for planning")
	}

	coords := make([]domain.Coordinates, 0, len(stops))
	for i := range stops {
		stops[i].Index = i
		coords = append(coords, stops[i].Coords)
	}

	matrix, err := oracle.GetMatrix(ctx, coords)
	if err != nil {
		return domain.VisitPlan{}, nil, fmt.Errorf("plan visits: get distance matrix: %w", err)
	}

	maxMeters := req.MaxMeters
	if maxMeters <= 0 {
		maxMeters = config.MaxMetersPerDay
	}

	engine := &planner.Planner{
		MaxMeters: maxMeters,
		MinMeters: req.MinMeters,
		MaxDays:   config.MaxPlanningDays,
	}
	if req.Optimize {
		engine.Optimizer = planner.TwoOptOptimizer{}
	}

	plan, err := engine.PlanMultiDay(stops, matrix)
	if err != nil {
		return domain.VisitPlan{}, nil, fmt.Errorf("plan visits: %w", err)
	}

	if !req.DryRun {
		visited := make([]int64, 0, len(stops))
		for _, day := range plan.Days {
			visited = append(visited, day.VisitedIDs...)
		}
		if len(visited) > 0 {
			if err := repo.MarkVisited(ctx, visited); err != nil {
				return domain.VisitPlan{}, nil, fmt.Errorf("plan visits: mark visited: %w", err)
			}
		}
	}

	return plan, stops, nil
}
