package entities

import (
	"strings"
	"time"
)

type Audience string

const (
	AudienceCommitteeOnly  Audience = "committee_only"
	AudienceAllOwners      Audience = "all_owners"
	AudienceResidentOwners Audience = "resident_owners"
	AudienceSpecificGroup  Audience = "specific_group"
)

func (a Audience) Valid() bool {
	switch a {
	case AudienceCommitteeOnly, AudienceAllOwners, AudienceResidentOwners, AudienceSpecificGroup:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusCancelled Status = "cancelled"
)

// Option is one selectable answer. Order is the creation order.
type Option struct {
	OptionID string
	Label    string
}

// Response is one respondent's answer. The respondent id is always stored
// for duplicate detection; anonymous polls omit it from read models.
type Response struct {
	ResponseID   string
	RespondentID string
	OptionID     string
	Comment      string
	SubmittedAt  time.Time
}

type Poll struct {
	PollID             string
	Title              string
	Description        string
	Audience           Audience
	GroupMemberIDs     []string
	Options            []Option
	StartDate          time.Time
	EndDate            time.Time
	Anonymous          bool
	Status             Status
	EligibleVoterIDs   []string
	EligibleVoterCount int
	Responses          []Response
	ParticipationRate  float64
	CreatedBy          string
	ClosedAt           *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (p Poll) Terminal() bool {
	return p.Status == StatusClosed || p.Status == StatusCancelled
}

// OptionIndex locates an option by id, or -1.
func (p Poll) OptionIndex(optionID string) int {
	for i, option := range p.Options {
		if option.OptionID == optionID {
			return i
		}
	}
	return -1
}

// Eligible reports whether the respondent belongs to the audience snapshot
// taken when the poll opened.
func (p Poll) Eligible(respondentID string) bool {
	for _, id := range p.EligibleVoterIDs {
		if id == respondentID {
			return true
		}
	}
	return false
}

// HasResponded reports whether the respondent already answered.
func (p Poll) HasResponded(respondentID string) bool {
	for _, response := range p.Responses {
		if response.RespondentID == respondentID {
			return true
		}
	}
	return false
}

// InWindow reports whether the day falls inside [start-date, end-date],
// both inclusive, at day granularity.
func (p Poll) InWindow(at time.Time) bool {
	day := dayOf(at)
	return !day.Before(dayOf(p.StartDate)) && !day.After(dayOf(p.EndDate))
}

// Ended reports whether the poll's end date lies strictly before the day.
func (p Poll) Ended(at time.Time) bool {
	return dayOf(p.EndDate).Before(dayOf(at))
}

// OptionTally is the finalized count and share for one option.
type OptionTally struct {
	OptionID  string
	Label     string
	Responses int
	Share     float64
}

// Results is the read model produced when a poll closes: per-option shares
// over submitted responses, the winning option(s), and whether the top spot
// is tied.
type Results struct {
	Totals            []OptionTally
	TotalResponses    int
	ParticipationRate float64
	WinnerOptionIDs   []string
	Tie               bool
}

// ComputeResults tallies responses in option order. Shares are percentages
// of submitted responses; participation is measured against the eligibility
// snapshot. A poll with no responses has no winner.
func ComputeResults(poll Poll) Results {
	counts := make(map[string]int, len(poll.Options))
	for _, response := range poll.Responses {
		counts[response.OptionID]++
	}

	results := Results{TotalResponses: len(poll.Responses)}
	best := 0
	for _, option := range poll.Options {
		count := counts[option.OptionID]
		share := 0.0
		if results.TotalResponses > 0 {
			share = float64(count) / float64(results.TotalResponses) * 100
		}
		results.Totals = append(results.Totals, OptionTally{
			OptionID:  option.OptionID,
			Label:     option.Label,
			Responses: count,
			Share:     share,
		})
		if count > best {
			best = count
		}
	}
	if best > 0 {
		for _, tally := range results.Totals {
			if tally.Responses == best {
				results.WinnerOptionIDs = append(results.WinnerOptionIDs, tally.OptionID)
			}
		}
	}
	results.Tie = len(results.WinnerOptionIDs) > 1
	if poll.EligibleVoterCount > 0 {
		results.ParticipationRate = float64(results.TotalResponses) / float64(poll.EligibleVoterCount) * 100
	}
	return results
}

// DistinctLabels reports whether the option labels are pairwise distinct
// ignoring case and surrounding whitespace.
func DistinctLabels(labels []string) bool {
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		key := strings.ToLower(strings.TrimSpace(label))
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
