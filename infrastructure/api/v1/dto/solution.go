package dto

import "time"

// SolutionAttributes are the fields of a stored solution.
type SolutionAttributes struct {
	Checksum   string    `json:"checksum"`
	Mode       string    `json:"mode"`
	Lowest     uint64    `json:"lowest"`
	SeedCount  int       `json:"seed_count"`
	StageCount int       `json:"stage_count"`
	DurationMS float64   `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// SolutionData is a solution in JSON:API format.
type SolutionData struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes SolutionAttributes `json:"attributes"`
}

// SolutionJSONAPIResponse is a single solution document.
type SolutionJSONAPIResponse struct {
	Data SolutionData `json:"data"`
}

// SolutionMeta describes a list response.
type SolutionMeta struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}

// SolutionJSONAPIListResponse is a list of solutions.
type SolutionJSONAPIListResponse struct {
	Data []SolutionData `json:"data"`
	Meta SolutionMeta   `json:"meta"`
}
