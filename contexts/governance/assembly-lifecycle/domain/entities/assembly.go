package entities

import (
	"fmt"
	"strings"
	"time"
)

type AssemblyType string

const (
	AssemblyOrdinary      AssemblyType = "ordinary"
	AssemblyExtraordinary AssemblyType = "extraordinary"
)

func (t AssemblyType) Valid() bool {
	switch t {
	case AssemblyOrdinary, AssemblyExtraordinary:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPlanned   Status = "planned"
	StatusConvened  Status = "convened"
	StatusInSession Status = "in_session"
	StatusCompleted Status = "completed"
	StatusSubmitted Status = "submitted"
	StatusCancelled Status = "cancelled"
)

type AttendanceStatus string

const (
	AttendanceAbsent      AttendanceStatus = "absent"
	AttendancePresent     AttendanceStatus = "present"
	AttendanceRepresented AttendanceStatus = "represented"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceAbsent, AttendancePresent, AttendanceRepresented:
		return true
	default:
		return false
	}
}

// Attending reports whether the status counts toward quorum.
func (s AttendanceStatus) Attending() bool {
	return s == AttendancePresent || s == AttendanceRepresented
}

type CheckInMethod string

const (
	CheckInManual  CheckInMethod = "manual"
	CheckInDigital CheckInMethod = "digital"
	CheckInQR      CheckInMethod = "qr"
)

// QuorumEntry is one property's attendance record, keyed uniquely by
// property inside the assembly.
type QuorumEntry struct {
	PropertyID          string
	OwnershipPercentage float64
	Status              AttendanceStatus
	AttendanceTime      *time.Time
	CheckInMethod       CheckInMethod
	ProxyHolder         string
	ProxyDocument       string
}

type VotingType string

const (
	VotingSimple    VotingType = "simple"
	VotingQualified VotingType = "qualified"
	VotingUnanimous VotingType = "unanimous"
	VotingSpecial   VotingType = "special"
)

type AgendaItem struct {
	ItemID       string
	Topic        string
	Description  string
	PresenterID  string
	RequiresVote bool
	VotingType   VotingType
}

type Assembly struct {
	AssemblyID              string
	Number                  string
	Type                    AssemblyType
	Title                   string
	ConvocationDate         time.Time
	AssemblyDate            time.Time
	FirstCallTime           time.Time
	SecondCallTime          time.Time
	MinimumQuorumFirstCall  float64
	MinimumQuorumSecondCall float64
	Hybrid                  bool
	VirtualLink             string
	Status                  Status
	Quorum                  []QuorumEntry
	Agenda                  []AgendaItem
	CurrentQuorumPercentage float64
	QuorumReached           bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// FormatNumber renders the official assembly number: the first three letters
// of the type uppercased, the year, and a per-year sequence.
func FormatNumber(assemblyType AssemblyType, year int, sequence int) string {
	prefix := strings.ToUpper(string(assemblyType))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, year, sequence)
}

// Terminal reports whether the assembly admits no further transitions.
func (a Assembly) Terminal() bool {
	return a.Status == StatusSubmitted || a.Status == StatusCancelled
}

// CurrentQuorum sums the ownership of attendees counted toward quorum.
func (a Assembly) CurrentQuorum() float64 {
	var total float64
	for _, entry := range a.Quorum {
		if entry.Status.Attending() {
			total += entry.OwnershipPercentage
		}
	}
	return total
}

// ApplicableThreshold picks the quorum bar by wall clock on assembly day:
// before the first call no threshold applies, between the calls the first
// threshold rules, at or after the second call the relaxed one.
func (a Assembly) ApplicableThreshold(now time.Time) (float64, bool) {
	if now.Before(a.FirstCallTime) {
		return 0, false
	}
	if now.Before(a.SecondCallTime) {
		return a.MinimumQuorumFirstCall, true
	}
	return a.MinimumQuorumSecondCall, true
}

// QuorumReachedAt evaluates the reached flag against the threshold the clock
// selects.
func (a Assembly) QuorumReachedAt(now time.Time) bool {
	threshold, applicable := a.ApplicableThreshold(now)
	if !applicable {
		return false
	}
	return a.CurrentQuorum() >= threshold
}

// Recompute refreshes the denormalized quorum fields.
func (a *Assembly) Recompute(now time.Time) {
	a.CurrentQuorumPercentage = a.CurrentQuorum()
	a.QuorumReached = a.QuorumReachedAt(now)
}

// EntryIndex locates a property's quorum entry, or -1.
func (a Assembly) EntryIndex(propertyID string) int {
	for i, entry := range a.Quorum {
		if entry.PropertyID == propertyID {
			return i
		}
	}
	return -1
}

// AttendeeCount counts entries with attending status.
func (a Assembly) AttendeeCount() int {
	count := 0
	for _, entry := range a.Quorum {
		if entry.Status.Attending() {
			count++
		}
	}
	return count
}
