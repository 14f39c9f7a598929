package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"branch-visit-planner/internal/api/dto"
	"branch-visit-planner/internal/config"
	"branch-visit-planner/internal/planner"
	"branch-visit-planner/internal/ports"
	"branch-visit-planner/internal/services"
)

// PlanHandler orchestrates a full visit-planning run over HTTP.
type PlanHandler struct {
	Repo   ports.BranchRepository
	Oracle ports.DistanceOracle
}

// Plan runs the multi-day scheduler over the unvisited branches and returns
// the day-by-day itinerary. Scheduled branches are marked visited unless the
// request is a dry run.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req := dto.PlanRequest{}
	if r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		defer r.Body.Close()
		dec.DisallowUnknownFields()

		if err := dec.Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
			return
		}
	}

	if req.MaxMeters < 0 || req.MinMeters < 0 {
		writeError(w, r, http.StatusBadRequest, "max_meters and min_meters must be non-negative")
		return
	}
	maxMeters := req.MaxMeters
	if maxMeters == 0 {
		maxMeters = config.MaxMetersPerDay
	}
	if req.MinMeters > maxMeters {
		writeError(w, r, http.StatusBadRequest, "min_meters must not exceed max_meters")
		return
	}

	svcReq := services.PlanVisitsRequest{
		MaxMeters: maxMeters,
		MinMeters: req.MinMeters,
		Optimize:  req.Optimize,
		DryRun:    req.DryRun,
	}

	plan, stops, err := services.PlanVisits(r.Context(), svcReq, h.Repo, h.Oracle)
	if err != nil {
		if errors.Is(err, planner.ErrDepotConfiguration) {
			writeError(w, r, http.StatusConflict, "branch data must contain exactly one headquarters")
			return
		}
		log.Printf("plan visits failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PlanResponse{
		Days:           make([]dto.DayResponse, 0, len(plan.Days)),
		Truncated:      plan.Truncated,
		UnscheduledIDs: plan.UnscheduledIDs,
	}
	for _, day := range plan.Days {
		stopsOut := make([]dto.PlanStopResponse, 0, len(day.Route))
		for _, idx := range day.Route {
			stopsOut = append(stopsOut, dto.PlanStopResponse{
				ID:      stops[idx].ID,
				Name:    stops[idx].Name,
				Address: stops[idx].Address,
			})
		}

		res.Days = append(res.Days, dto.DayResponse{
			Day:          day.Day,
			TotalMeters:  day.TotalMeters,
			TotalSeconds: day.TotalSeconds,
			Stops:        stopsOut,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
