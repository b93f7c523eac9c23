// Package dto holds the request and response bodies of the v1 API.
package dto

// SolveRequest is the JSON body of POST /api/v1/solve.
type SolveRequest struct {
	Almanac string `json:"almanac"`
	Format  string `json:"format,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Verify  bool   `json:"verify,omitempty"`
}

// SolveResponse is the answer for one almanac and mode.
type SolveResponse struct {
	Mode     string        `json:"mode"`
	Lowest   uint64        `json:"lowest"`
	Cached   bool          `json:"cached"`
	Verified *uint64       `json:"verified,omitempty"`
	Solution *SolutionData `json:"solution,omitempty"`
}

// MapRequest is the JSON body of POST /api/v1/map.
type MapRequest struct {
	Almanac string `json:"almanac"`
	Format  string `json:"format,omitempty"`
	Value   uint64 `json:"value"`
}

// StepResponse is one stage of a traced value.
type StepResponse struct {
	Stage  string `json:"stage"`
	Input  uint64 `json:"input"`
	Output uint64 `json:"output"`
}

// MapResponse is a value traced through every stage.
type MapResponse struct {
	Value  uint64         `json:"value"`
	Result uint64         `json:"result"`
	Steps  []StepResponse `json:"steps"`
}
