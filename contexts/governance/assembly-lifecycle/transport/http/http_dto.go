package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AgendaItemInput struct {
	Topic        string `json:"topic"`
	Description  string `json:"description,omitempty"`
	PresenterID  string `json:"presenter_id"`
	RequiresVote bool   `json:"requires_vote"`
	VotingType   string `json:"voting_type,omitempty"`
}

type PlanAssemblyRequest struct {
	Type                    string            `json:"type"`
	Title                   string            `json:"title"`
	ConvocationDate         string            `json:"convocation_date"`
	AssemblyDate            string            `json:"assembly_date"`
	FirstCallTime           string            `json:"first_call_time"`
	SecondCallTime          string            `json:"second_call_time"`
	MinimumQuorumFirstCall  float64           `json:"minimum_quorum_first_call"`
	MinimumQuorumSecondCall float64           `json:"minimum_quorum_second_call"`
	Hybrid                  bool              `json:"hybrid"`
	VirtualLink             string            `json:"virtual_link,omitempty"`
	Agenda                  []AgendaItemInput `json:"agenda,omitempty"`
}

type RegisterAttendanceRequest struct {
	PropertyID    string `json:"property_id"`
	Status        string `json:"status"`
	CheckInMethod string `json:"check_in_method,omitempty"`
	ProxyHolder   string `json:"proxy_holder,omitempty"`
	ProxyDocument string `json:"proxy_document,omitempty"`
}

type QuorumEntryDTO struct {
	PropertyID          string  `json:"property_id"`
	OwnershipPercentage float64 `json:"ownership_percentage"`
	Status              string  `json:"status"`
	AttendanceTime      string  `json:"attendance_time,omitempty"`
	CheckInMethod       string  `json:"check_in_method,omitempty"`
	ProxyHolder         string  `json:"proxy_holder,omitempty"`
}

type AgendaItemDTO struct {
	ItemID       string `json:"item_id"`
	Topic        string `json:"topic"`
	Description  string `json:"description,omitempty"`
	PresenterID  string `json:"presenter_id"`
	RequiresVote bool   `json:"requires_vote"`
	VotingType   string `json:"voting_type,omitempty"`
}

type AssemblyResponse struct {
	AssemblyID              string           `json:"assembly_id"`
	Number                  string           `json:"number"`
	Type                    string           `json:"type"`
	Title                   string           `json:"title"`
	ConvocationDate         string           `json:"convocation_date"`
	AssemblyDate            string           `json:"assembly_date"`
	FirstCallTime           string           `json:"first_call_time"`
	SecondCallTime          string           `json:"second_call_time"`
	MinimumQuorumFirstCall  float64          `json:"minimum_quorum_first_call"`
	MinimumQuorumSecondCall float64          `json:"minimum_quorum_second_call"`
	Hybrid                  bool             `json:"hybrid"`
	VirtualLink             string           `json:"virtual_link,omitempty"`
	Status                  string           `json:"status"`
	Quorum                  []QuorumEntryDTO `json:"quorum,omitempty"`
	Agenda                  []AgendaItemDTO  `json:"agenda,omitempty"`
	CurrentQuorumPercentage float64          `json:"current_quorum_percentage"`
	QuorumReached           bool             `json:"quorum_reached"`
}

type AssemblyListResponse struct {
	Items []AssemblyResponse `json:"items"`
}

type QuorumSummaryResponse struct {
	AssemblyID      string  `json:"assembly_id"`
	Number          string  `json:"number"`
	Status          string  `json:"status"`
	TotalProperties int     `json:"total_properties"`
	Present         int     `json:"present"`
	Represented     int     `json:"represented"`
	Absent          int     `json:"absent"`
	CurrentQuorum   float64 `json:"current_quorum"`
	Threshold       float64 `json:"threshold"`
	ThresholdActive bool    `json:"threshold_active"`
	QuorumReached   bool    `json:"quorum_reached"`
}
