package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"comunidad/contexts/governance/poll-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/poll-engine/domain/errors"
	"comunidad/contexts/governance/poll-engine/ports"
	"comunidad/internal/shared/events"
)

// Store is the in-memory adapter backing tests and the default wiring. It
// implements every poll-engine port plus the clock and id generator.
type Store struct {
	mu        sync.RWMutex
	polls     map[string]entities.Poll
	committee []string
	owners    []string
	residents []string
	reserved  map[string]time.Time
	emitted   []events.Notification
}

func NewStore() *Store {
	return &Store{
		polls:    make(map[string]entities.Poll),
		reserved: make(map[string]time.Time),
	}
}

func (s *Store) SavePoll(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[poll.PollID] = poll
	return nil
}

func (s *Store) GetPoll(_ context.Context, pollID string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.polls[pollID]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return poll, nil
}

func (s *Store) ListPolls(_ context.Context) ([]entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Poll, 0, len(s.polls))
	for _, poll := range s.polls {
		items = append(items, poll)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) ListOpenEndedBefore(_ context.Context, day time.Time, limit int) ([]entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.Poll
	for _, poll := range s.polls {
		if poll.Status != entities.StatusOpen || !poll.Ended(day) {
			continue
		}
		items = append(items, poll)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].EndDate.Before(items[j].EndDate) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) CommitteeMemberIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.committee...), nil
}

func (s *Store) OwnerIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.owners...), nil
}

func (s *Store) ResidentOwnerIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.residents...), nil
}

func (s *Store) Emit(_ context.Context, notification events.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = append(s.emitted, notification)
	return nil
}

func (s *Store) Reserve(_ context.Context, key string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reserved[key]; ok {
		return true, nil
	}
	s.reserved[key] = expiresAt
	return false, nil
}

func (s *Store) Now() time.Time { return time.Now().UTC() }

func (s *Store) NewID(_ context.Context) (string, error) { return uuid.NewString(), nil }

// SetCommitteeMembers seeds the committee audience.
func (s *Store) SetCommitteeMembers(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committee = append([]string(nil), ids...)
}

// SetOwners seeds the all-owners audience.
func (s *Store) SetOwners(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners = append([]string(nil), ids...)
}

// SetResidentOwners seeds the resident-owners audience.
func (s *Store) SetResidentOwners(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.residents = append([]string(nil), ids...)
}

// Emitted returns the notifications handed to the sink.
func (s *Store) Emitted() []events.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]events.Notification(nil), s.emitted...)
}

var (
	_ ports.PollRepository    = (*Store)(nil)
	_ ports.AudienceDirectory = (*Store)(nil)
	_ ports.NotificationSink  = (*Store)(nil)
	_ ports.NotificationDedup = (*Store)(nil)
	_ ports.Clock             = (*Store)(nil)
	_ ports.IDGenerator       = (*Store)(nil)
)
