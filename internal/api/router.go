package api

import (
	"net/http"

	"branch-visit-planner/internal/api/handlers"
	"branch-visit-planner/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.BranchRepository, oracle ports.DistanceOracle) http.Handler {
	mux := http.NewServeMux()

	branchHandler := &handlers.BranchHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:   repo,
		Oracle: oracle,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/branches", branchHandler.List)
	mux.HandleFunc("/branches/reset", branchHandler.Reset)
	mux.HandleFunc("/plan", planHandler.Plan)

	return loggingMiddleware(mux)
}
