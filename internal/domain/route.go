package domain

// Route is an ordered sequence of stop indices. A non-empty route always
// starts and ends at the depot index; a nil route means no trip could be
// built.
type Route []int

// Stops returns the non-depot stop indices in visiting order.
func (r Route) Stops(depot int) []int {
	out := make([]int, 0, len(r))
	for _, idx := range r {
		if idx != depot {
			out = append(out, idx)
		}
	}
	return out
}

// TotalMeters sums consecutive leg distances over the route.
func (r Route) TotalMeters(m DistanceMatrix) int {
	total := 0
	for i := 0; i+1 < len(r); i++ {
		total += m.Meters[r[i]][r[i+1]]
	}
	return total
}

// TotalSeconds sums consecutive leg durations over the route.
func (r Route) TotalSeconds(m DistanceMatrix) int {
	total := 0
	for i := 0; i+1 < len(r); i++ {
		total += m.Seconds[r[i]][r[i+1]]
	}
	return total
}

// Represents one committed day of visits. A DaySchedule is the output of the
// planning engine and describes the depot-to-depot stop order along with
// aggregate distance and duration metrics. It is immutable planning data and
// is never mutated after being handed to the caller.
type DaySchedule struct {
	Day          int
	Route        Route
	TotalMeters  int
	TotalSeconds int
	VisitedIDs   []int64
}

// Represents a full multi-day plan. Truncated is set when the scheduler hit
// its safety cap or stopped with stops it could not fit into any day; those
// stops are reported in UnscheduledIDs rather than treated as an error.
type VisitPlan struct {
	Days           []DaySchedule
	Truncated      bool
	UnscheduledIDs []int64
}
