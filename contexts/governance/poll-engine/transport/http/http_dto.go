package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePollRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Audience       string   `json:"audience"`
	GroupMemberIDs []string `json:"group_member_ids,omitempty"`
	Options        []string `json:"options"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Anonymous      bool     `json:"anonymous"`
	CreatedBy      string   `json:"created_by,omitempty"`
}

type SubmitResponseRequest struct {
	RespondentID string `json:"respondent_id"`
	OptionID     string `json:"option_id"`
	Comment      string `json:"comment,omitempty"`
}

type OptionDTO struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
}

type PollResponse struct {
	PollID             string      `json:"poll_id"`
	Title              string      `json:"title"`
	Description        string      `json:"description,omitempty"`
	Audience           string      `json:"audience"`
	Options            []OptionDTO `json:"options"`
	StartDate          string      `json:"start_date"`
	EndDate            string      `json:"end_date"`
	Anonymous          bool        `json:"anonymous"`
	Status             string      `json:"status"`
	EligibleVoterCount int         `json:"eligible_voter_count"`
	ResponseCount      int         `json:"response_count"`
	ParticipationRate  float64     `json:"participation_rate"`
	ClosedAt           string      `json:"closed_at,omitempty"`
}

type PollListResponse struct {
	Items []PollResponse `json:"items"`
}

type OptionTallyDTO struct {
	OptionID  string  `json:"option_id"`
	Label     string  `json:"label"`
	Responses int     `json:"responses"`
	Share     float64 `json:"share"`
}

type PollResultsResponse struct {
	PollID            string           `json:"poll_id"`
	Totals            []OptionTallyDTO `json:"totals"`
	TotalResponses    int              `json:"total_responses"`
	ParticipationRate float64          `json:"participation_rate"`
	WinnerOptionIDs   []string         `json:"winner_option_ids,omitempty"`
	Tie               bool             `json:"tie"`
}
