package ports

import "context"

// Travel metrics for a single origin->destination matrix cell.
type MatrixCell struct {
	Meters  int
	Seconds int
}

// Port: a cache of matrix cells keyed by "origin|destination" coordinate
// pair strings. Keys are expected to be consistent (already normalized) by
// the caller.
type MatrixCache interface {
	// GetMany returns the cached cells for the given keys; missing keys
	// are simply absent from the result.
	GetMany(ctx context.Context, keys []string) (map[string]MatrixCell, error)

	// PutMany stores the given cells, overwriting existing entries.
	PutMany(ctx context.Context, cells map[string]MatrixCell) error
}
