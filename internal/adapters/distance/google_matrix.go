package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"branch-visit-planner/internal/config"
	"branch-visit-planner/internal/domain"
	"branch-visit-planner/internal/ports"
)

type matrixElement struct {
	Status   string `json:"status"`
	Distance struct {
		Value int `json:"value"`
	} `json:"distance"`
	Duration struct {
		Value int `json:"value"`
	} `json:"duration"`
	DurationInTraffic *struct {
		Value int `json:"value"`
	} `json:"duration_in_traffic"`
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
}

func joinCoords(coords []domain.Coordinates) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, "|")
}

// fetchBlock retrieves one origins×destinations block from the Distance
// Matrix API. Elements the API reports as unroutable are filled with the
// penalty values instead of failing the run; transport and API-level
// failures surface as ErrMatrixUnavailable.
func (g *GoogleDistanceOracle) fetchBlock(
	ctx context.Context,
	origins []domain.Coordinates,
	destinations []domain.Coordinates,
) ([][]ports.MatrixCell, error) {
	query := map[string]string{
		"origins":        joinCoords(origins),
		"destinations":   joinCoords(destinations),
		"mode":           g.mode,
		"units":          "metric",
		"departure_time": "now",
		"traffic_model":  "best_guess",
	}

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, "/maps/api/distancematrix/json", query)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatrixUnavailable, err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("%w: decode matrix response: %w", ErrMatrixUnavailable, err)
	}

	if mr.Status != "OK" {
		return nil, fmt.Errorf("%w: api status %q", ErrMatrixUnavailable, mr.Status)
	}

	if len(mr.Rows) != len(origins) {
		return nil, fmt.Errorf(
			"%w: expected %d rows, got %d",
			ErrMatrixUnavailable, len(origins), len(mr.Rows),
		)
	}

	out := make([][]ports.MatrixCell, len(origins))
	for i, row := range mr.Rows {
		if len(row.Elements) != len(destinations) {
			return nil, fmt.Errorf(
				"%w: row %d has %d elements, want %d",
				ErrMatrixUnavailable, i, len(row.Elements), len(destinations),
			)
		}

		out[i] = make([]ports.MatrixCell, len(destinations))
		for j, el := range row.Elements {
			if el.Status != "OK" {
				out[i][j] = ports.MatrixCell{
					Meters:  config.PenaltyMeters,
					Seconds: config.PenaltySeconds,
				}
				continue
			}

			seconds := el.Duration.Value
			if el.DurationInTraffic != nil {
				seconds = el.DurationInTraffic.Value
			}
			out[i][j] = ports.MatrixCell{
				Meters:  el.Distance.Value,
				Seconds: seconds,
			}
		}
	}

	return out, nil
}
