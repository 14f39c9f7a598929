package planner

import "errors"

var (
	// ErrDepotConfiguration reports a stop set with zero or multiple depot
	// stops. Planning cannot start until the caller fixes the data.
	ErrDepotConfiguration = errors.New("planner: stop set must contain exactly one depot")

	// ErrMatrixSizeMismatch reports a distance matrix whose dimension does
	// not match the stop count. Fatal for the current run, retryable once
	// the matrix is rebuilt.
	ErrMatrixSizeMismatch = errors.New("planner: distance matrix dimension does not match stop count")
)
