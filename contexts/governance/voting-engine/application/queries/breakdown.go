package queries

import (
	"context"
	"sort"
	"strings"

	"comunidad/contexts/governance/voting-engine/domain/entities"
	"comunidad/contexts/governance/voting-engine/ports"
)

type BreakdownUseCase struct {
	Sessions ports.SessionRepository
	Votes    ports.VoteRepository
}

// SessionBreakdown aggregates cast power per vote value. Identified ballots
// are included only for non-anonymous sessions; anonymous sessions expose
// aggregates alone.
func (uc BreakdownUseCase) SessionBreakdown(ctx context.Context, sessionID string) (entities.Breakdown, error) {
	session, err := uc.Sessions.GetSession(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return entities.Breakdown{}, err
	}
	votes, err := uc.Votes.ListVotesBySession(ctx, session.SessionID)
	if err != nil {
		return entities.Breakdown{}, err
	}

	byValue := make(map[entities.VoteValue]entities.ValueTally)
	for _, vote := range votes {
		tally := byValue[vote.Value]
		tally.Value = vote.Value
		tally.Power += vote.Power
		tally.Count++
		byValue[vote.Value] = tally
	}
	tallies := make([]entities.ValueTally, 0, len(byValue))
	for _, tally := range byValue {
		tallies = append(tallies, tally)
	}
	sort.Slice(tallies, func(i, j int) bool { return tallies[i].Value < tallies[j].Value })

	breakdown := entities.Breakdown{Session: session, Tallies: tallies}
	if session.Anonymous {
		return breakdown, nil
	}
	ballots := make([]entities.Ballot, 0, len(votes))
	for _, vote := range votes {
		ballots = append(ballots, entities.Ballot{
			PropertyID: vote.PropertyID,
			Value:      vote.Value,
			Power:      vote.Power,
			CastAt:     vote.CastAt,
			Method:     vote.Method,
			Signature:  vote.Signature,
		})
	}
	sort.Slice(ballots, func(i, j int) bool { return ballots[i].CastAt.Before(ballots[j].CastAt) })
	breakdown.Ballots = ballots
	return breakdown, nil
}

// SessionsByAssembly lists a parent assembly's sessions ordered by start time.
func (uc BreakdownUseCase) SessionsByAssembly(ctx context.Context, assemblyID string) ([]entities.VotingSession, error) {
	sessions, err := uc.Sessions.ListSessionsByAssembly(ctx, strings.TrimSpace(assemblyID))
	if err != nil {
		return nil, err
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.Before(sessions[j].StartTime) })
	return sessions, nil
}
