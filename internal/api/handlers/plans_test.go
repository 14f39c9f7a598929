package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"branch-visit-planner/internal/api/dto"
	"branch-visit-planner/internal/domain"
)

type stubRepo struct {
	stops  []domain.Stop
	marked []int64
}

func (s *stubRepo) ListStops(ctx context.Context, includeVisited bool) ([]domain.Stop, error) {
	return s.stops, nil
}

func (s *stubRepo) MarkVisited(ctx context.Context, ids []int64) error {
	s.marked = append(s.marked, ids...)
	return nil
}

func (s *stubRepo) ResetVisits(ctx context.Context) error { return nil }

type stubOracle struct {
	matrix domain.DistanceMatrix
}

func (s *stubOracle) GetMatrix(ctx context.Context, coords []domain.Coordinates) (domain.DistanceMatrix, error) {
	return s.matrix, nil
}

func planScenario() (*stubRepo, *stubOracle) {
	repo := &stubRepo{stops: []domain.Stop{
		{ID: 1, Name: "HQ", IsDepot: true},
		{ID: 2, Name: "Aluva Branch"},
		{ID: 3, Name: "Thrissur Branch"},
	}}
	m := domain.NewDistanceMatrix(3)
	m.Meters = [][]int{
		{0, 40000, 70000},
		{40000, 0, 30000},
		{70000, 30000, 0},
	}
	m.Seconds = m.Meters
	return repo, &stubOracle{matrix: m}
}

func postPlan(t *testing.T, h *PlanHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestPlanHandlerEmptyBodyUsesDefaults(t *testing.T) {
	repo, oracle := planScenario()
	h := &PlanHandler{Repo: repo, Oracle: oracle}

	rec := postPlan(t, h, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(res.Days) != 1 {
		t.Fatalf("got %d days, want 1", len(res.Days))
	}
	if res.Truncated {
		t.Fatal("plan should not be truncated")
	}
	day := res.Days[0]
	if day.TotalMeters != 140000 {
		t.Fatalf("day total = %d, want 140000", day.TotalMeters)
	}
	// Route is depot-closed: HQ, both branches, HQ.
	if len(day.Stops) != 4 || day.Stops[0].Name != "HQ" || day.Stops[3].Name != "HQ" {
		t.Fatalf("unexpected stop sequence: %+v", day.Stops)
	}
	if len(repo.marked) != 2 {
		t.Fatalf("marked = %v, want both branches", repo.marked)
	}
}

func TestPlanHandlerRejectsInvalidJSON(t *testing.T) {
	repo, oracle := planScenario()
	h := &PlanHandler{Repo: repo, Oracle: oracle}

	rec := postPlan(t, h, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlanHandlerRejectsUnknownFields(t *testing.T) {
	repo, oracle := planScenario()
	h := &PlanHandler{Repo: repo, Oracle: oracle}

	rec := postPlan(t, h, `{"max_meters": 1000, "bogus": true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlanHandlerRejectsNegativeBudget(t *testing.T) {
	repo, oracle := planScenario()
	h := &PlanHandler{Repo: repo, Oracle: oracle}

	rec := postPlan(t, h, `{"max_meters": -1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlanHandlerRejectsFloorAboveBudget(t *testing.T) {
	repo, oracle := planScenario()
	h := &PlanHandler{Repo: repo, Oracle: oracle}

	rec := postPlan(t, h, `{"max_meters": 1000, "min_meters": 2000}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlanHandlerRejectsWrongMethod(t *testing.T) {
	repo, oracle := planScenario()
	h := &PlanHandler{Repo: repo, Oracle: oracle}

	req := httptest.NewRequest(http.MethodGet, "/plan", nil)
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", allow)
	}
}

func TestPlanHandlerDepotMisconfiguration(t *testing.T) {
	repo := &stubRepo{stops: []domain.Stop{
		{ID: 1, Name: "A", IsDepot: true},
		{ID: 2, Name: "B", IsDepot: true},
	}}
	oracle := &stubOracle{matrix: domain.NewDistanceMatrix(2)}
	h := &PlanHandler{Repo: repo, Oracle: oracle}

	rec := postPlan(t, h, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
