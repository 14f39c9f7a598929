package domain

import "testing"

func testMatrix() DistanceMatrix {
	m := NewDistanceMatrix(3)
	m.Meters = [][]int{
		{0, 100, 200},
		{100, 0, 50},
		{200, 50, 0},
	}
	m.Seconds = [][]int{
		{0, 60, 120},
		{60, 0, 30},
		{120, 30, 0},
	}
	return m
}

func TestRouteTotals(t *testing.T) {
	m := testMatrix()
	r := Route{0, 1, 2, 0}

	if got := r.TotalMeters(m); got != 100+50+200 {
		t.Fatalf("TotalMeters = %d, want 350", got)
	}
	if got := r.TotalSeconds(m); got != 60+30+120 {
		t.Fatalf("TotalSeconds = %d, want 210", got)
	}
}

func TestRouteStopsExcludesDepot(t *testing.T) {
	r := Route{0, 2, 1, 0}

	stops := r.Stops(0)
	if len(stops) != 2 || stops[0] != 2 || stops[1] != 1 {
		t.Fatalf("Stops = %v, want [2 1]", stops)
	}
}

func TestEmptyRouteTotals(t *testing.T) {
	m := testMatrix()
	var r Route

	if got := r.TotalMeters(m); got != 0 {
		t.Fatalf("TotalMeters on nil route = %d, want 0", got)
	}
	if got := len(r.Stops(0)); got != 0 {
		t.Fatalf("Stops on nil route = %d entries, want 0", got)
	}
}
