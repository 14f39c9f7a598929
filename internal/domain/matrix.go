package domain

// Pairwise travel metrics between stop indices.
// Meters[i][j] and Seconds[i][j] describe the leg from stop i to stop j.
// The matrix is square, not necessarily symmetric, and has a zero diagonal.
// Cells the upstream service could not resolve hold a finite penalty value
// rather than a sentinel, so planning code never branches on missing data.
type DistanceMatrix struct {
	Meters  [][]int
	Seconds [][]int
}

func NewDistanceMatrix(n int) DistanceMatrix {
	meters := make([][]int, n)
	seconds := make([][]int, n)
	for i := 0; i < n; i++ {
		meters[i] = make([]int, n)
		seconds[i] = make([]int, n)
	}
	return DistanceMatrix{Meters: meters, Seconds: seconds}
}

// Dim returns the matrix dimension (number of stops it covers).
func (m DistanceMatrix) Dim() int { return len(m.Meters) }
