package dto

// ActivityRef identifies the activity a results payload belongs to.
type ActivityRef struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	Status    string `json:"status,omitempty"`
	Title     string `json:"title,omitempty"`
}

// SubmissionResult is one submission with its vote statistics.
type SubmissionResult struct {
	SubmissionID  string  `json:"submission_id"`
	Text          string  `json:"text"`
	ParticipantID *string `json:"participant_id,omitempty"`
	N             int     `json:"n"`
	Total         int     `json:"total"`
	Avg           float64 `json:"avg"`
	Stdev         float64 `json:"stdev"`
}

// InitiativeResult is one stocktake initiative with its responses.
type InitiativeResult struct {
	InitiativeID string           `json:"initiative_id"`
	Title        string           `json:"title"`
	Responses    []ResponseResult `json:"responses"`
}

// ResponseResult is one structured response inside an initiative.
type ResponseResult struct {
	ParticipantID *string `json:"participant_id,omitempty"`
	Status        string  `json:"status"`
	Comment       string  `json:"comment,omitempty"`
}

// LeaderboardEntry is a group's summed vote total.
type LeaderboardEntry struct {
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	Total     int    `json:"total"`
}

// ResultsPayload is the aggregation output for one activity.
// Submissions is always present (empty, never null) so read paths stay
// uniform for unknown or empty activities; Initiatives and Leaderboard
// appear only for the views that produce them.
type ResultsPayload struct {
	Activity    ActivityRef        `json:"activity"`
	Submissions []SubmissionResult `json:"submissions"`
	Initiatives []InitiativeResult `json:"initiatives,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty"`
}

// EmptyResults builds the payload used when an activity's type has no
// hooks or it has no data yet.
func EmptyResults(ref ActivityRef) *ResultsPayload {
	return &ResultsPayload{
		Activity:    ref,
		Submissions: []SubmissionResult{},
	}
}
