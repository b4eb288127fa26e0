package entities

import (
	"fmt"
	"time"
)

type SourceType string

const (
	SourceAssembly         SourceType = "assembly"
	SourceCommitteeMeeting SourceType = "committee_meeting"
	SourceManual           SourceType = "manual"
)

type Category string

const (
	CategoryLegal       Category = "legal"
	CategoryOperational Category = "operational"
	CategoryFinancial   Category = "financial"
	CategorySocial      Category = "social"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// FollowUpPriority maps agreement priority onto follow-up work items.
func (p Priority) FollowUpPriority() Priority {
	switch p {
	case PriorityCritical, PriorityHigh:
		return PriorityHigh
	case PriorityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOverdue    Status = "overdue"
	StatusCancelled  Status = "cancelled"
)

// ProgressUpdate is one append-only progress note. Percentage is optional;
// when present it becomes the agreement completion on reconcile.
type ProgressUpdate struct {
	UpdateID    string
	Date        time.Time
	AuthorID    string
	Description string
	Percentage  *float64
	Attachments []string
}

type FollowUpStatus string

const (
	FollowUpOpen   FollowUpStatus = "open"
	FollowUpClosed FollowUpStatus = "closed"
)

// FollowUp is a work item spawned for a responsible member on creation.
type FollowUp struct {
	FollowUpID  string
	AgreementID string
	AssigneeID  string
	Priority    Priority
	Status      FollowUpStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Agreement struct {
	AgreementID            string
	Number                 string
	SourceType             SourceType
	SourceRef              string
	Title                  string
	Description            string
	AgreementDate          time.Time
	DueDate                time.Time
	Category               Category
	Priority               Priority
	ResponsibleID          string
	SecondaryResponsibleID string
	Status                 Status
	CompletionPercentage   float64
	ReminderDaysBefore     int
	Updates                []ProgressUpdate
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (a Agreement) Terminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// Responsibles lists the member ids notified for this agreement.
func (a Agreement) Responsibles() []string {
	recipients := []string{a.ResponsibleID}
	if a.SecondaryResponsibleID != "" {
		recipients = append(recipients, a.SecondaryResponsibleID)
	}
	return recipients
}

// LatestCompletion resolves the completion percentage from the most recent
// percentage-bearing update. For equal dates the last-appended entry wins.
func (a Agreement) LatestCompletion() (float64, bool) {
	var (
		best  float64
		at    time.Time
		found bool
	)
	for _, update := range a.Updates {
		if update.Percentage == nil {
			continue
		}
		if !found || !update.Date.Before(at) {
			best = *update.Percentage
			at = update.Date
			found = true
		}
	}
	return best, found
}

// Reconcile applies the save-time derivations: completion from updates, the
// overdue rule, and promotion to Completed at 100.
func (a *Agreement) Reconcile(today time.Time) {
	if pct, ok := a.LatestCompletion(); ok {
		a.CompletionPercentage = pct
	}
	if a.Terminal() {
		return
	}
	if a.CompletionPercentage >= 100 {
		a.CompletionPercentage = 100
		a.Status = StatusCompleted
		return
	}
	if dateOnly(a.DueDate).Before(dateOnly(today)) {
		a.Status = StatusOverdue
	}
}

// ReminderDate is the calendar day on which the due-soon reminder fires.
func (a Agreement) ReminderDate() (time.Time, bool) {
	if a.ReminderDaysBefore <= 0 {
		return time.Time{}, false
	}
	return dateOnly(a.DueDate).AddDate(0, 0, -a.ReminderDaysBefore), true
}

// FormatNumber renders the ACU-YYYY-NNNN identifier.
func FormatNumber(year int, sequence int) string {
	return fmt.Sprintf("ACU-%04d-%04d", year, sequence)
}

func dateOnly(value time.Time) time.Time {
	value = value.UTC()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
