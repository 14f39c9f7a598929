package handlers

import (
	"log"
	"net/http"

	"branch-visit-planner/internal/api/dto"
	"branch-visit-planner/internal/ports"
)

// BranchHandler exposes branch listing and visit-flag management.
type BranchHandler struct {
	Repo ports.BranchRepository
}

func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	includeVisited := r.URL.Query().Get("include_visited") == "true"

	stops, err := h.Repo.ListStops(r.Context(), includeVisited)
	if err != nil {
		log.Printf("list branches failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListBranchesResponse{
		Branches: make([]dto.BranchResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Branches = append(res.Branches, dto.BranchResponse{
			ID:      s.ID,
			Name:    s.Name,
			Address: s.Address,
			Lat:     s.Coords.Lat,
			Lng:     s.Coords.Lng,
			IsHQ:    s.IsDepot,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *BranchHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.Repo.ResetVisits(r.Context()); err != nil {
		log.Printf("reset visits failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "reset"})
}
