package dto

type PlanRequest struct {
	MaxMeters int  `json:"max_meters"`
	MinMeters int  `json:"min_meters"`
	Optimize  bool `json:"optimize"`
	DryRun    bool `json:"dry_run"`
}

type PlanStopResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type DayResponse struct {
	Day          int                `json:"day"`
	TotalMeters  int                `json:"total_meters"`
	TotalSeconds int                `json:"total_seconds"`
	Stops        []PlanStopResponse `json:"stops"`
}

type PlanResponse struct {
	Days           []DayResponse `json:"days"`
	Truncated      bool          `json:"truncated"`
	UnscheduledIDs []int64       `json:"unscheduled_ids,omitempty"`
}
