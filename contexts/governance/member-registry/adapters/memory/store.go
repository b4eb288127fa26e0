package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"comunidad/contexts/governance/member-registry/domain/entities"
	domainerrors "comunidad/contexts/governance/member-registry/domain/errors"
	"comunidad/contexts/governance/member-registry/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	members    map[string]entities.Member
	properties map[string]ports.PropertyProjection
}

func NewStore(seed []entities.Member) *Store {
	members := make(map[string]entities.Member, len(seed))
	for _, member := range seed {
		members[strings.TrimSpace(member.MemberID)] = member
	}
	return &Store{
		members:    members,
		properties: make(map[string]ports.PropertyProjection),
	}
}

func (s *Store) SetProperty(projection ports.PropertyProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[strings.TrimSpace(projection.PropertyID)] = projection
}

func (s *Store) SaveMember(_ context.Context, member entities.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[strings.TrimSpace(member.MemberID)] = member
	return nil
}

func (s *Store) GetMember(_ context.Context, memberID string) (entities.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[strings.TrimSpace(memberID)]
	if !ok {
		return entities.Member{}, domainerrors.ErrMemberNotFound
	}
	return member, nil
}

func (s *Store) ListMembers(_ context.Context, activeOnly bool) ([]entities.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Member, 0, len(s.members))
	for _, member := range s.members {
		if activeOnly && !member.Active {
			continue
		}
		items = append(items, member)
	}
	sortMembers(items)
	return items, nil
}

func (s *Store) FindActiveByRole(_ context.Context, role entities.Role) ([]entities.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Member, 0)
	for _, member := range s.members {
		if member.Active && member.Role == role {
			items = append(items, member)
		}
	}
	sortMembers(items)
	return items, nil
}

func (s *Store) GetProperty(_ context.Context, propertyID string) (ports.PropertyProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projection, ok := s.properties[strings.TrimSpace(propertyID)]
	return projection, ok, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortMembers(items []entities.Member) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].PositionWeight == items[j].PositionWeight {
			return items[i].MemberID < items[j].MemberID
		}
		return items[i].PositionWeight > items[j].PositionWeight
	})
}
