package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GenerateStandardRequest struct {
	Year       int    `json:"year"`
	Period     string `json:"period"`
	AutoCreate bool   `json:"auto_create"`
}

type AddEntryRequest struct {
	Date            string   `json:"date"`
	MeetingType     string   `json:"meeting_type,omitempty"`
	SuggestedTopics []string `json:"suggested_topics,omitempty"`
	Mandatory       bool     `json:"mandatory"`
}

type ScheduledEntryDTO struct {
	EntryID         string   `json:"entry_id"`
	Date            string   `json:"date"`
	MeetingType     string   `json:"meeting_type"`
	SuggestedTopics []string `json:"suggested_topics,omitempty"`
	Mandatory       bool     `json:"mandatory"`
	LinkedMeetingID string   `json:"linked_meeting_id,omitempty"`
	MeetingCreated  bool     `json:"meeting_created"`
}

type ScheduleResponse struct {
	ScheduleID string              `json:"schedule_id"`
	Year       int                 `json:"year"`
	Period     string              `json:"period"`
	Entries    []ScheduledEntryDTO `json:"entries"`
	AutoCreate bool                `json:"auto_create"`
	Status     string              `json:"status"`
}

type ScheduleListResponse struct {
	Items []ScheduleResponse `json:"items"`
}
