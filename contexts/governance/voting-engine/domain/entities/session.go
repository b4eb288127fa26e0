package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"time"
)

type VotingType string

const (
	VotingSimple    VotingType = "simple"
	VotingQualified VotingType = "qualified"
	VotingUnanimous VotingType = "unanimous"
	VotingSpecial   VotingType = "special"
)

func (t VotingType) Valid() bool {
	switch t {
	case VotingSimple, VotingQualified, VotingUnanimous, VotingSpecial:
		return true
	default:
		return false
	}
}

// RequiredPercentage resolves the majority threshold for the type. The
// custom value only applies to special votes and must lie in (0, 100].
func (t VotingType) RequiredPercentage(custom float64) (float64, bool) {
	switch t {
	case VotingSimple:
		return 50, true
	case VotingQualified:
		return 66.67, true
	case VotingUnanimous:
		return 100, true
	case VotingSpecial:
		if custom > 0 && custom <= 100 {
			return custom, true
		}
		return 0, false
	default:
		return 0, false
	}
}

type SessionStatus string

const (
	SessionDraft     SessionStatus = "draft"
	SessionOpen      SessionStatus = "open"
	SessionClosed    SessionStatus = "closed"
	SessionSubmitted SessionStatus = "submitted"
)

type SessionResult string

const (
	ResultApproved SessionResult = "approved"
	ResultRejected SessionResult = "rejected"
	ResultTie      SessionResult = "tie"
)

type VoteValue string

const (
	VoteInFavor    VoteValue = "in_favor"
	VoteAgainst    VoteValue = "against"
	VoteAbstention VoteValue = "abstention"
)

func (v VoteValue) Valid() bool {
	switch v {
	case VoteInFavor, VoteAgainst, VoteAbstention:
		return true
	default:
		return false
	}
}

type VoteMethod string

const (
	MethodDigital VoteMethod = "digital"
	MethodManual  VoteMethod = "manual"
	MethodProxy   VoteMethod = "proxy"
	MethodRemote  VoteMethod = "remote"
)

// Totals is the denormalized tally maintained on the session within the
// same save as each vote append.
type Totals struct {
	TotalPower        float64
	PercentInFavor    float64
	PercentAgainst    float64
	PercentAbstention float64
}

type VotingSession struct {
	SessionID          string
	AssemblyID         string
	Motion             string
	Type               VotingType
	RequiredPercentage float64
	Anonymous          bool
	StartTime          time.Time
	EndTime            time.Time
	Status             SessionStatus
	Totals             Totals
	Result             *SessionResult
	CertifiedBy        string
	ResultAt           *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Vote struct {
	VoteID     string
	SessionID  string
	PropertyID string
	Value      VoteValue
	Power      float64
	CastAt     time.Time
	Method     VoteMethod
	IPAddress  string
	Signature  string
}

// ComputeTotals tallies voting power by value. Percentages sum to 100
// whenever any power was cast, and to 0 otherwise.
func ComputeTotals(votes []Vote) Totals {
	var total, inFavor, against, abstention float64
	for _, vote := range votes {
		total += vote.Power
		switch vote.Value {
		case VoteInFavor:
			inFavor += vote.Power
		case VoteAgainst:
			against += vote.Power
		case VoteAbstention:
			abstention += vote.Power
		}
	}
	if total == 0 {
		return Totals{}
	}
	return Totals{
		TotalPower:        total,
		PercentInFavor:    inFavor / total * 100,
		PercentAgainst:    against / total * 100,
		PercentAbstention: abstention / total * 100,
	}
}

const tallyEpsilon = 1e-9

// Outcome applies the majority rule at close. Ties are explicit results,
// not errors.
func Outcome(totals Totals, votingType VotingType, required float64) SessionResult {
	if votingType == VotingUnanimous {
		if math.Abs(totals.PercentInFavor-100) < tallyEpsilon {
			return ResultApproved
		}
		return ResultRejected
	}
	if totals.PercentInFavor >= required-tallyEpsilon {
		return ResultApproved
	}
	if totals.PercentAgainst > (100-required)+tallyEpsilon {
		return ResultRejected
	}
	if math.Abs(totals.PercentInFavor-totals.PercentAgainst) < tallyEpsilon {
		return ResultTie
	}
	return ResultRejected
}

// SignVote produces the integrity signature: SHA-256 over the canonical
// JSON of (voter, value, timestamp, assembly, motion). json.Marshal of a
// map emits keys in sorted order, which fixes the canonical form.
func SignVote(propertyID string, value VoteValue, castAt time.Time, assemblyID string, motion string) string {
	payload := map[string]string{
		"assembly":  assemblyID,
		"motion":    motion,
		"timestamp": castAt.UTC().Format(time.RFC3339Nano),
		"value":     string(value),
		"voter":     propertyID,
	}
	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// VerifySignature recomputes the canonical signature for a non-anonymous
// vote and compares it to the stored one.
func (v Vote) VerifySignature(assemblyID string, motion string) bool {
	return v.Signature == SignVote(v.PropertyID, v.Value, v.CastAt, assemblyID, motion)
}
