package dto

type BranchResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	IsHQ    bool    `json:"is_hq"`
}

type ListBranchesResponse struct {
	Branches []BranchResponse `json:"branches"`
}
