package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AgendaItemInput struct {
	Topic         string `json:"topic"`
	Category      string `json:"category,omitempty"`
	Priority      string `json:"priority,omitempty"`
	ResponsibleID string `json:"responsible_id,omitempty"`
}

type ScheduleMeetingRequest struct {
	Title               string            `json:"title"`
	Date                string            `json:"date"`
	Type                string            `json:"type,omitempty"`
	Format              string            `json:"format"`
	PhysicalSpace       string            `json:"physical_space,omitempty"`
	VirtualLink         string            `json:"virtual_link,omitempty"`
	Attendees           []string          `json:"attendees,omitempty"`
	Agenda              []AgendaItemInput `json:"agenda,omitempty"`
	ScheduledFromSeries string            `json:"scheduled_from_series,omitempty"`
}

type RecordDecisionRequest struct {
	Decision      string `json:"decision"`
	ResponsibleID string `json:"responsible_id,omitempty"`
}

type RegisterAttendeeRequest struct {
	MemberID string `json:"member_id"`
}

type AgendaItemDTO struct {
	ItemID        string `json:"item_id"`
	Topic         string `json:"topic"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	Decision      string `json:"decision,omitempty"`
	ResponsibleID string `json:"responsible_id,omitempty"`
}

type MeetingResponse struct {
	MeetingID           string          `json:"meeting_id"`
	Title               string          `json:"title"`
	Date                string          `json:"date"`
	Type                string          `json:"type,omitempty"`
	Format              string          `json:"format"`
	PhysicalSpace       string          `json:"physical_space,omitempty"`
	VirtualLink         string          `json:"virtual_link,omitempty"`
	Attendees           []string        `json:"attendees,omitempty"`
	Agenda              []AgendaItemDTO `json:"agenda,omitempty"`
	Status              string          `json:"status"`
	ScheduledFromSeries string          `json:"scheduled_from_series,omitempty"`
	CompletionRate      float64         `json:"completion_rate"`
}

type MeetingListResponse struct {
	Items []MeetingResponse `json:"items"`
}
