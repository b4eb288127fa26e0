package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateAgreementRequest struct {
	Number                 string   `json:"number,omitempty"`
	SourceType             string   `json:"source_type"`
	SourceRef              string   `json:"source_ref,omitempty"`
	Title                  string   `json:"title"`
	Description            string   `json:"description,omitempty"`
	AgreementDate          string   `json:"agreement_date"`
	DueDate                string   `json:"due_date"`
	Category               string   `json:"category"`
	Priority               string   `json:"priority"`
	ResponsibleID          string   `json:"responsible_id"`
	SecondaryResponsibleID string   `json:"secondary_responsible_id,omitempty"`
	ReminderDaysBefore     int      `json:"reminder_days_before,omitempty"`
}

type ProgressUpdateRequest struct {
	AuthorID    string   `json:"author_id"`
	Description string   `json:"description"`
	Percentage  *float64 `json:"percentage,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

type MarkCompletedRequest struct {
	AuthorID string `json:"author_id"`
	Note     string `json:"note,omitempty"`
}

type ProgressUpdateDTO struct {
	UpdateID    string   `json:"update_id"`
	Date        string   `json:"date"`
	AuthorID    string   `json:"author_id"`
	Description string   `json:"description"`
	Percentage  *float64 `json:"percentage,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

type AgreementResponse struct {
	AgreementID            string              `json:"agreement_id"`
	Number                 string              `json:"number"`
	SourceType             string              `json:"source_type"`
	SourceRef              string              `json:"source_ref,omitempty"`
	Title                  string              `json:"title"`
	Description            string              `json:"description,omitempty"`
	AgreementDate          string              `json:"agreement_date"`
	DueDate                string              `json:"due_date"`
	Category               string              `json:"category"`
	Priority               string              `json:"priority"`
	ResponsibleID          string              `json:"responsible_id"`
	SecondaryResponsibleID string              `json:"secondary_responsible_id,omitempty"`
	Status                 string              `json:"status"`
	CompletionPercentage   float64             `json:"completion_percentage"`
	ReminderDaysBefore     int                 `json:"reminder_days_before,omitempty"`
	Updates                []ProgressUpdateDTO `json:"updates,omitempty"`
}

type AgreementListResponse struct {
	Items []AgreementResponse `json:"items"`
}

type StatisticsResponse struct {
	Total             int     `json:"total"`
	Pending           int     `json:"pending"`
	InProgress        int     `json:"in_progress"`
	Completed         int     `json:"completed"`
	Overdue           int     `json:"overdue"`
	Cancelled         int     `json:"cancelled"`
	CompletionRate    float64 `json:"completion_rate"`
	AverageCompletion float64 `json:"average_completion"`
}
