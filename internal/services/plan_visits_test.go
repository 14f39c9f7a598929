package services

import (
	"context"
	"testing"

	"branch-visit-planner/internal/adapters/distance"
	"branch-visit-planner/internal/domain"
)

type fakeBranchRepo struct {
	stops       []domain.Stop
	markedIDs   []int64
	markCalls   int
	resetCalled bool
}

func (f *fakeBranchRepo) ListStops(ctx context.Context, includeVisited bool) ([]domain.Stop, error) {
	out := make([]domain.Stop, len(f.stops))
	copy(out, f.stops)
	return out, nil
}

func (f *fakeBranchRepo) MarkVisited(ctx context.Context, ids []int64) error {
	f.markCalls++
	f.markedIDs = append(f.markedIDs, ids...)
	return nil
}

func (f *fakeBranchRepo) ResetVisits(ctx context.Context) error {
	f.resetCalled = true
	return nil
}

func scenarioRepo() *fakeBranchRepo {
	return &fakeBranchRepo{stops: []domain.Stop{
		{ID: 10, Name: "HQ", IsDepot: true},
		{ID: 11, Name: "A"},
		{ID: 12, Name: "B"},
		{ID: 13, Name: "C"},
	}}
}

func scenarioOracle() *distance.MockOracle {
	m := domain.NewDistanceMatrix(4)
	m.Meters = [][]int{
		{0, 50000, 60000, 150000},
		{50000, 0, 20000, 140000},
		{60000, 20000, 0, 130000},
		{150000, 140000, 130000, 0},
	}
	m.Seconds = m.Meters
	return &distance.MockOracle{Matrix: m}
}

func TestPlanVisits(t *testing.T) {
	repo := scenarioRepo()
	oracle := scenarioOracle()

	plan, stops, err := PlanVisits(context.Background(), PlanVisitsRequest{MaxMeters: 180000}, repo, oracle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Days) != 1 {
		t.Fatalf("got %d days, want 1", len(plan.Days))
	}
	if got := plan.Days[0].TotalMeters; got != 130000 {
		t.Fatalf("day 1 total = %d, want 130000", got)
	}
	if !plan.Truncated {
		t.Fatal("expected truncated plan (C cannot be reached)")
	}
	if len(plan.UnscheduledIDs) != 1 || plan.UnscheduledIDs[0] != 13 {
		t.Fatalf("unscheduled = %v, want [13]", plan.UnscheduledIDs)
	}

	if len(stops) != 4 {
		t.Fatalf("got %d stops back, want 4", len(stops))
	}
	for i, s := range stops {
		if s.Index != i {
			t.Fatalf("stop %d has index %d", i, s.Index)
		}
	}

	if repo.markCalls != 1 {
		t.Fatalf("MarkVisited called %d times, want 1", repo.markCalls)
	}
	if len(repo.markedIDs) != 2 || repo.markedIDs[0] != 11 || repo.markedIDs[1] != 12 {
		t.Fatalf("marked ids = %v, want [11 12]", repo.markedIDs)
	}
}

func TestPlanVisitsDryRun(t *testing.T) {
	repo := scenarioRepo()

	_, _, err := PlanVisits(context.Background(), PlanVisitsRequest{MaxMeters: 180000, DryRun: true}, repo, scenarioOracle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.markCalls != 0 {
		t.Fatalf("MarkVisited called %d times on dry run, want 0", repo.markCalls)
	}
}

func TestPlanVisitsDefaultsBudget(t *testing.T) {
	repo := scenarioRepo()

	plan, _, err := PlanVisits(context.Background(), PlanVisitsRequest{}, repo, scenarioOracle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The 180 km default applies: same partition as the explicit request.
	if len(plan.Days) != 1 || plan.Days[0].TotalMeters != 130000 {
		t.Fatalf("unexpected plan with default budget: %+v", plan)
	}
}

func TestPlanVisitsNoDepot(t *testing.T) {
	repo := &fakeBranchRepo{stops: []domain.Stop{{ID: 1, Name: "A"}}}
	m := domain.NewDistanceMatrix(1)
	oracle := &distance.MockOracle{Matrix: m}

	_, _, err := PlanVisits(context.Background(), PlanVisitsRequest{MaxMeters: 180000}, repo, oracle)
	if err == nil {
		t.Fatal("expected depot configuration error")
	}
	if repo.markCalls != 0 {
		t.Fatal("nothing must be marked visited on a failed run")
	}
}

func TestPlanVisitsNoBranches(t *testing.T) {
	repo := &fakeBranchRepo{}
	oracle := &distance.MockOracle{Matrix: domain.NewDistanceMatrix(0)}

	_, _, err := PlanVisits(context.Background(), PlanVisitsRequest{MaxMeters: 180000}, repo, oracle)
	if err == nil {
		t.Fatal("expected error for empty branch set")
	}
}
