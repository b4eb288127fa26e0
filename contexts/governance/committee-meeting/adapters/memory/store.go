package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"comunidad/contexts/governance/committee-meeting/domain/entities"
	domainerrors "comunidad/contexts/governance/committee-meeting/domain/errors"
	"comunidad/contexts/governance/committee-meeting/ports"
)

// Store is the in-memory adapter backing every committee-meeting port.
// Derived agreements are captured for inspection.
type Store struct {
	mu       sync.RWMutex
	meetings map[string]entities.Meeting
	derived  []ports.DerivedAgreement
	reserved map[string]time.Time
}

func NewStore() *Store {
	return &Store{
		meetings: make(map[string]entities.Meeting),
		reserved: make(map[string]time.Time),
	}
}

func (s *Store) SaveMeeting(_ context.Context, meeting entities.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings[meeting.MeetingID] = meeting
	return nil
}

func (s *Store) GetMeeting(_ context.Context, meetingID string) (entities.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meeting, ok := s.meetings[meetingID]
	if !ok {
		return entities.Meeting{}, domainerrors.ErrMeetingNotFound
	}
	return meeting, nil
}

func (s *Store) ListMeetings(_ context.Context) ([]entities.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Meeting, 0, len(s.meetings))
	for _, meeting := range s.meetings {
		items = append(items, meeting)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func (s *Store) ListPlannedBetween(_ context.Context, from time.Time, to time.Time, limit int) ([]entities.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Meeting, 0)
	for _, meeting := range s.meetings {
		if meeting.Status != entities.StatusPlanned {
			continue
		}
		if meeting.Date.Before(from) || !meeting.Date.Before(to) {
			continue
		}
		items = append(items, meeting)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) CreateFromMeeting(_ context.Context, derived ports.DerivedAgreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.derived = append(s.derived, derived)
	return nil
}

// DerivedAgreements returns the agreements captured by the creator port.
func (s *Store) DerivedAgreements() []ports.DerivedAgreement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.DerivedAgreement, len(s.derived))
	copy(items, s.derived)
	return items
}

func (s *Store) Reserve(_ context.Context, key string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if until, ok := s.reserved[key]; ok && until.After(time.Now().UTC()) {
		return true, nil
	}
	s.reserved[key] = expiresAt
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
