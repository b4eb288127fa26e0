package entities

import "time"

// ValueTally aggregates cast power and ballot count for one vote value.
type ValueTally struct {
	Value VoteValue
	Power float64
	Count int
}

// Ballot is the identified view of a single vote. Anonymous sessions never
// expose ballots.
type Ballot struct {
	PropertyID string
	Value      VoteValue
	Power      float64
	CastAt     time.Time
	Method     VoteMethod
	Signature  string
}

type Breakdown struct {
	Session VotingSession
	Tallies []ValueTally
	// Ballots is nil when the session is anonymous.
	Ballots []Ballot
}
