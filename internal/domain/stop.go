package domain

// Represents a single visitable branch in a planning run.
// Index is the stop's position in the planning slice and in the distance
// matrix; it is assigned by the caller when the run's stop set is fixed.
// Exactly one Stop per run carries IsDepot: the fixed start and end of
// every daily route.
type Stop struct {
	Index   int
	ID      int64
	Name    string
	Address string
	Coords  Coordinates
	IsDepot bool
}
