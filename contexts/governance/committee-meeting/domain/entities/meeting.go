package entities

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSubmitted  Status = "submitted"
	StatusCancelled  Status = "cancelled"
)

type Format string

const (
	FormatInPerson Format = "in_person"
	FormatVirtual  Format = "virtual"
	FormatHybrid   Format = "hybrid"
)

func (f Format) Valid() bool {
	switch f {
	case FormatInPerson, FormatVirtual, FormatHybrid:
		return true
	default:
		return false
	}
}

type TopicCategory string

const (
	TopicFinancial   TopicCategory = "financial"
	TopicOperational TopicCategory = "operational"
	TopicLegal       TopicCategory = "legal"
	TopicSocial      TopicCategory = "social"
	TopicMaintenance TopicCategory = "maintenance"
	TopicSecurity    TopicCategory = "security"
	TopicOther       TopicCategory = "other"
)

// AgreementCategory maps a meeting topic category to the agreement category
// it produces. Topics without a governance category of their own fall back
// to operational.
func (c TopicCategory) AgreementCategory() string {
	switch c {
	case TopicFinancial:
		return "financial"
	case TopicLegal:
		return "legal"
	case TopicSocial:
		return "social"
	default:
		return "operational"
	}
}

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

type AgendaItem struct {
	ItemID        string
	Topic         string
	Category      TopicCategory
	Priority      Priority
	Decision      string
	ResponsibleID string
}

// Decided reports whether the item carries a recorded decision.
func (i AgendaItem) Decided() bool {
	return strings.TrimSpace(i.Decision) != ""
}

type Meeting struct {
	MeetingID           string
	Title               string
	Date                time.Time
	Type                string
	Format              Format
	PhysicalSpace       string
	VirtualLink         string
	Attendees           []string
	Agenda              []AgendaItem
	Status              Status
	ScheduledFromSeries string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (m Meeting) Terminal() bool {
	return m.Status == StatusSubmitted || m.Status == StatusCancelled
}

// CompletionRate is the share of agenda items holding a decision, in
// percent. Empty agendas rate as zero.
func (m Meeting) CompletionRate() float64 {
	if len(m.Agenda) == 0 {
		return 0
	}
	decided := 0
	for _, item := range m.Agenda {
		if item.Decided() {
			decided++
		}
	}
	return float64(decided) / float64(len(m.Agenda)) * 100
}

// UndecidedCritical lists critical agenda items still lacking a decision.
func (m Meeting) UndecidedCritical() []AgendaItem {
	var items []AgendaItem
	for _, item := range m.Agenda {
		if item.Priority == PriorityCritical && !item.Decided() {
			items = append(items, item)
		}
	}
	return items
}

// ItemIndex locates an agenda item by id, or -1.
func (m Meeting) ItemIndex(itemID string) int {
	for i, item := range m.Agenda {
		if item.ItemID == itemID {
			return i
		}
	}
	return -1
}

// ValidFormat checks the conditional location fields per format.
func (m Meeting) ValidFormat() bool {
	switch m.Format {
	case FormatInPerson:
		return strings.TrimSpace(m.PhysicalSpace) != ""
	case FormatVirtual:
		return strings.TrimSpace(m.VirtualLink) != ""
	case FormatHybrid:
		return strings.TrimSpace(m.PhysicalSpace) != "" && strings.TrimSpace(m.VirtualLink) != ""
	default:
		return false
	}
}
