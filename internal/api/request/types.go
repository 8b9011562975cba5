package request

// ConfigureRequest is the request body for configuring a session's game
type ConfigureRequest struct {
	Players     []string `json:"players"`
	TotalRounds int      `json:"total_rounds,omitempty"`
}

// SubmitRoundRequest is the request body for recording a round of scores
type SubmitRoundRequest struct {
	Scores map[string]int `json:"scores"`
}

// ImportRequest is the request body for importing a shared session snapshot
type ImportRequest struct {
	Snapshot string `json:"snapshot"`
}
