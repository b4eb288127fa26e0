package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateSessionRequest is the transport payload for session creation.
type CreateSessionRequest struct {
	AssemblyID       string  `json:"assembly_id"`
	Motion           string  `json:"motion"`
	VotingType       string  `json:"voting_type"`
	CustomPercentage float64 `json:"custom_percentage,omitempty"`
	Anonymous        bool    `json:"anonymous"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
}

type CloseSessionRequest struct {
	CertifiedBy string `json:"certified_by"`
}

type SubmitSessionRequest struct {
	ActorID string `json:"actor_id"`
}

type CastVoteRequest struct {
	PropertyID string `json:"property_id"`
	Value      string `json:"value"`
	Method     string `json:"method,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`
}

type TotalsDTO struct {
	TotalPower        float64 `json:"total_power"`
	PercentInFavor    float64 `json:"percent_in_favor"`
	PercentAgainst    float64 `json:"percent_against"`
	PercentAbstention float64 `json:"percent_abstention"`
}

type SessionResponse struct {
	SessionID          string    `json:"session_id"`
	AssemblyID         string    `json:"assembly_id"`
	Motion             string    `json:"motion"`
	VotingType         string    `json:"voting_type"`
	RequiredPercentage float64   `json:"required_percentage"`
	Anonymous          bool      `json:"anonymous"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	Status             string    `json:"status"`
	Totals             TotalsDTO `json:"totals"`
	Result             string    `json:"result,omitempty"`
	CertifiedBy        string    `json:"certified_by,omitempty"`
	ResultAt           string    `json:"result_at,omitempty"`
}

type SessionListResponse struct {
	Items []SessionResponse `json:"items"`
}

type VoteResponse struct {
	VoteID     string  `json:"vote_id"`
	SessionID  string  `json:"session_id"`
	PropertyID string  `json:"property_id"`
	Value      string  `json:"value"`
	Power      float64 `json:"power"`
	CastAt     string  `json:"cast_at"`
	Method     string  `json:"method"`
	Signature  string  `json:"signature,omitempty"`
}

type ValueTallyDTO struct {
	Value string  `json:"value"`
	Power float64 `json:"power"`
	Count int     `json:"count"`
}

type BallotDTO struct {
	PropertyID string  `json:"property_id"`
	Value      string  `json:"value"`
	Power      float64 `json:"power"`
	CastAt     string  `json:"cast_at"`
	Method     string  `json:"method"`
	Signature  string  `json:"signature,omitempty"`
}

type BreakdownResponse struct {
	Session SessionResponse `json:"session"`
	Tallies []ValueTallyDTO `json:"tallies"`
	// Ballots is omitted for anonymous sessions.
	Ballots []BallotDTO `json:"ballots,omitempty"`
}
