package entities

import "time"

type Period string

const (
	PeriodAnnual     Period = "annual"
	PeriodSemestral  Period = "semestral"
	PeriodTrimestral Period = "trimestral"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodAnnual, PeriodSemestral, PeriodTrimestral:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
)

const (
	MeetingTypeOrdinary  = "ordinary"
	MeetingTypeFinancial = "financial_review"
	MeetingTypePlanning  = "planning_evaluation"
)

// ScheduledEntry is one planned meeting slot inside a series.
type ScheduledEntry struct {
	EntryID         string
	Date            time.Time
	MeetingType     string
	SuggestedTopics []string
	Mandatory       bool
	LinkedMeetingID string
	MeetingCreated  bool
}

type Schedule struct {
	ScheduleID string
	Year       int
	Period     Period
	Entries    []ScheduledEntry
	AutoCreate bool
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasDate reports whether the series already holds an entry on the day.
func (s Schedule) HasDate(date time.Time) bool {
	for _, entry := range s.Entries {
		if sameDay(entry.Date, date) {
			return true
		}
	}
	return false
}

// PendingEntries lists entries not yet materialized whose date is on or
// after the given day.
func (s Schedule) PendingEntries(from time.Time) []ScheduledEntry {
	var items []ScheduledEntry
	for _, entry := range s.Entries {
		if entry.MeetingCreated || entry.Date.Before(from) {
			continue
		}
		items = append(items, entry)
	}
	return items
}

// EntryIndex locates an entry by id, or -1.
func (s Schedule) EntryIndex(entryID string) int {
	for i, entry := range s.Entries {
		if entry.EntryID == entryID {
			return i
		}
	}
	return -1
}

// StandardMonths returns the meeting months for a period. Annual schedules
// meet monthly; semestral every other month; trimestral once a quarter.
func (p Period) StandardMonths() []time.Month {
	switch p {
	case PeriodSemestral:
		return []time.Month{time.February, time.April, time.June, time.August, time.October, time.December}
	case PeriodTrimestral:
		return []time.Month{time.March, time.June, time.September, time.December}
	default:
		return []time.Month{
			time.January, time.February, time.March, time.April,
			time.May, time.June, time.July, time.August,
			time.September, time.October, time.November, time.December,
		}
	}
}

// StandardType resolves the canonical meeting type for a month: quarter-end
// months carry the financial review, December carries planning and
// evaluation of the closing year.
func StandardType(month time.Month) string {
	switch month {
	case time.December:
		return MeetingTypePlanning
	case time.March, time.June, time.September:
		return MeetingTypeFinancial
	default:
		return MeetingTypeOrdinary
	}
}

// StandardTopics seeds the suggested agenda for a canonical meeting type.
func StandardTopics(meetingType string) []string {
	switch meetingType {
	case MeetingTypeFinancial:
		return []string{"quarterly financial review", "budget execution", "delinquency report"}
	case MeetingTypePlanning:
		return []string{"annual evaluation", "next year planning", "budget proposal"}
	default:
		return []string{"operational follow-up", "maintenance review"}
	}
}

func sameDay(a time.Time, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
