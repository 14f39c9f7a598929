// Package config centralizes environment lookup and the planning constants
// shared by the composition roots, the oracle, and the engine defaults.
package config

import (
	"os"
	"strconv"
)

// Planning defaults. Distances are meters, durations seconds.
const (
	// MaxMetersPerDay is the hard per-day travel budget (180 km).
	MaxMetersPerDay = 180_000

	// MaxPlanningDays caps how many days the scheduler attempts before
	// reporting truncation.
	MaxPlanningDays = 10

	// PenaltyMeters and PenaltySeconds fill matrix cells the distance
	// service could not resolve, so planning never sees missing data.
	PenaltyMeters  = 50_000
	PenaltySeconds = 3_600

	// MatrixChunkSize bounds origins/destinations per Distance Matrix API
	// request (the API allows 100 elements, 10x10).
	MatrixChunkSize = 10
)

// Get returns the environment variable value or the fallback when unset or
// empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt parses an integer environment variable, returning the fallback when
// unset or malformed.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
