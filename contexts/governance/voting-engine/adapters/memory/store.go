package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"comunidad/contexts/governance/voting-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/voting-engine/domain/errors"
	"comunidad/contexts/governance/voting-engine/ports"
)

// Store is the in-memory adapter backing every voting-engine port. It also
// carries seedable assembly, property and certifier projections so the module
// can run without the sibling modules wired in.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]entities.VotingSession
	votes      map[string]map[string]entities.Vote
	assemblies map[string]ports.AssemblyProjection
	attendance map[string]map[string]bool
	ownership  map[string]float64
	certifiers map[string]bool
}

func NewStore() *Store {
	return &Store{
		sessions:   make(map[string]entities.VotingSession),
		votes:      make(map[string]map[string]entities.Vote),
		assemblies: make(map[string]ports.AssemblyProjection),
		attendance: make(map[string]map[string]bool),
		ownership:  make(map[string]float64),
		certifiers: make(map[string]bool),
	}
}

func (s *Store) SaveSession(_ context.Context, session entities.VotingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
	return nil
}

func (s *Store) GetSession(_ context.Context, sessionID string) (entities.VotingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return entities.VotingSession{}, domainerrors.ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) ListSessionsByAssembly(_ context.Context, assemblyID string) ([]entities.VotingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.VotingSession, 0)
	for _, session := range s.sessions {
		if session.AssemblyID == assemblyID {
			items = append(items, session)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartTime.Before(items[j].StartTime) })
	return items, nil
}

// AppendVote enforces one ballot per (session, property) under the store
// lock, so concurrent casts for the same property serialize here.
func (s *Store) AppendVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bySession, ok := s.votes[vote.SessionID]
	if !ok {
		bySession = make(map[string]entities.Vote)
		s.votes[vote.SessionID] = bySession
	}
	if _, exists := bySession[vote.PropertyID]; exists {
		return domainerrors.ErrDoubleVote
	}
	bySession[vote.PropertyID] = vote
	return nil
}

func (s *Store) GetVoteByVoter(_ context.Context, sessionID string, propertyID string) (entities.Vote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[sessionID][propertyID]
	return vote, ok, nil
}

func (s *Store) ListVotesBySession(_ context.Context, sessionID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0, len(s.votes[sessionID]))
	for _, vote := range s.votes[sessionID] {
		items = append(items, vote)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CastAt.Before(items[j].CastAt) })
	return items, nil
}

func (s *Store) GetAssembly(_ context.Context, assemblyID string) (ports.AssemblyProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assembly, ok := s.assemblies[assemblyID]
	if !ok {
		return ports.AssemblyProjection{}, domainerrors.ErrAssemblyUnavailable
	}
	return assembly, nil
}

func (s *Store) AttendanceEligible(_ context.Context, assemblyID string, propertyID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attendance[assemblyID][propertyID], nil
}

func (s *Store) OwnershipPercentage(_ context.Context, propertyID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownership[propertyID], nil
}

func (s *Store) CanCertify(_ context.Context, memberID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.certifiers[memberID], nil
}

// SetAssembly seeds the assembly projection.
func (s *Store) SetAssembly(assembly ports.AssemblyProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assemblies[assembly.AssemblyID] = assembly
}

// SetAttendance seeds quorum attendance for one property.
func (s *Store) SetAttendance(assemblyID string, propertyID string, attending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byAssembly, ok := s.attendance[assemblyID]
	if !ok {
		byAssembly = make(map[string]bool)
		s.attendance[assemblyID] = byAssembly
	}
	byAssembly[propertyID] = attending
}

// SetOwnership seeds a property's voting power.
func (s *Store) SetOwnership(propertyID string, percentage float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownership[propertyID] = percentage
}

// TamperVote rewrites a stored ballot's value without re-signing it. Test
// hook for integrity verification.
func (s *Store) TamperVote(sessionID string, propertyID string, value entities.VoteValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vote, ok := s.votes[sessionID][propertyID]
	if !ok {
		return
	}
	vote.Value = value
	s.votes[sessionID][propertyID] = vote
}

// SetCertifier seeds a member allowed to certify and submit results.
func (s *Store) SetCertifier(memberID string, allowed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certifiers[memberID] = allowed
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
