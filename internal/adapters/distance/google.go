package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"branch-visit-planner/internal/config"
	"branch-visit-planner/internal/domain"
	"branch-visit-planner/internal/platform/obs"
	"branch-visit-planner/internal/ports"
)

// ErrMatrixUnavailable wraps failures of the upstream Distance Matrix
// service that survive retries. The run is fatal but retryable.
var ErrMatrixUnavailable = errors.New("distance matrix service unavailable")

// GoogleDistanceOracle implements DistanceOracle using the Google Distance
// Matrix API.
//
// It coordinates:
//   - Persistent matrix-cell caching (pluggable backend)
//   - Chunked requests within the API's per-request element limit
//   - Retry/backoff on transient failures
//   - Penalty fill for cells the API cannot resolve
//
// The oracle is safe for concurrent use.
type GoogleDistanceOracle struct {
	session *http.Client
	apiKey  string
	baseURL string
	mode    string
	cache   ports.MatrixCache
}

func NewGoogleDistanceOracle(apiKey string, cache ports.MatrixCache) (*GoogleDistanceOracle, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	return &GoogleDistanceOracle{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
		mode:    "driving",
		cache:   cache,
	}, nil
}

func cellKey(origin, destination domain.Coordinates) string {
	return origin.String() + "|" + destination.String()
}

// GetMatrix builds the full n×n meter/second matrix for the given
// coordinates. Cached cells are reused; the rest are fetched block by block.
func (g *GoogleDistanceOracle) GetMatrix(ctx context.Context, coords []domain.Coordinates) (_ domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "google.GetMatrix")(&err)

	n := len(coords)
	matrix := domain.NewDistanceMatrix(n)
	if n == 0 {
		return matrix, nil
	}

	hits := make(map[string]ports.MatrixCell)
	if g.cache != nil {
		keys := make([]string, 0, n*n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					keys = append(keys, cellKey(coords[i], coords[j]))
				}
			}
		}

		hits, err = g.cache.GetMany(ctx, keys)
		if err != nil {
			return domain.DistanceMatrix{}, fmt.Errorf("google get matrix cache: %w", err)
		}
	}

	fresh := make(map[string]ports.MatrixCell)
	for iStart := 0; iStart < n; iStart += config.MatrixChunkSize {
		iEnd := min(iStart+config.MatrixChunkSize, n)
		for jStart := 0; jStart < n; jStart += config.MatrixChunkSize {
			jEnd := min(jStart+config.MatrixChunkSize, n)

			if g.fillFromCache(matrix, coords, hits, iStart, iEnd, jStart, jEnd) {
				continue
			}

			cells, err := g.fetchBlock(ctx, coords[iStart:iEnd], coords[jStart:jEnd])
			if err != nil {
				return domain.DistanceMatrix{}, fmt.Errorf("google fetch block [%d:%d)x[%d:%d): %w", iStart, iEnd, jStart, jEnd, err)
			}

			for i := iStart; i < iEnd; i++ {
				for j := jStart; j < jEnd; j++ {
					if i == j {
						continue
					}
					cell := cells[i-iStart][j-jStart]
					matrix.Meters[i][j] = cell.Meters
					matrix.Seconds[i][j] = cell.Seconds
					fresh[cellKey(coords[i], coords[j])] = cell
				}
			}
		}
	}

	if g.cache != nil && len(fresh) > 0 {
		if err := g.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("matrix cache write failed: %v", err)
		}
	}

	return matrix, nil
}

// fillFromCache copies a fully cached block into the matrix. It reports
// false (and writes nothing) when any off-diagonal cell is missing, so the
// whole block is re-fetched in one request.
func (g *GoogleDistanceOracle) fillFromCache(
	matrix domain.DistanceMatrix,
	coords []domain.Coordinates,
	hits map[string]ports.MatrixCell,
	iStart, iEnd, jStart, jEnd int,
) bool {
	for i := iStart; i < iEnd; i++ {
		for j := jStart; j < jEnd; j++ {
			if i == j {
				continue
			}
			if _, ok := hits[cellKey(coords[i], coords[j])]; !ok {
				return false
			}
		}
	}

	for i := iStart; i < iEnd; i++ {
		for j := jStart; j < jEnd; j++ {
			if i == j {
				continue
			}
			cell := hits[cellKey(coords[i], coords[j])]
			matrix.Meters[i][j] = cell.Meters
			matrix.Seconds[i][j] = cell.Seconds
		}
	}
	return true
}
