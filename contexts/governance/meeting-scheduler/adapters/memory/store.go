package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"comunidad/contexts/governance/meeting-scheduler/domain/entities"
	domainerrors "comunidad/contexts/governance/meeting-scheduler/domain/errors"
	"comunidad/contexts/governance/meeting-scheduler/ports"
)

// Store is the in-memory adapter backing every meeting-scheduler port. The
// meeting creator records the hand-offs it receives and hands back
// generated ids.
type Store struct {
	mu        sync.RWMutex
	schedules map[string]entities.Schedule
	created   []ports.ScheduledMeeting
}

func NewStore() *Store {
	return &Store{
		schedules: make(map[string]entities.Schedule),
	}
}

func (s *Store) SaveSchedule(_ context.Context, schedule entities.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (s *Store) GetSchedule(_ context.Context, scheduleID string) (entities.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schedule, ok := s.schedules[scheduleID]
	if !ok {
		return entities.Schedule{}, domainerrors.ErrScheduleNotFound
	}
	return schedule, nil
}

func (s *Store) ListSchedules(_ context.Context) ([]entities.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Schedule, 0, len(s.schedules))
	for _, schedule := range s.schedules {
		items = append(items, schedule)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Year < items[j].Year })
	return items, nil
}

func (s *Store) ListApprovedAutoCreate(_ context.Context) ([]entities.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Schedule, 0)
	for _, schedule := range s.schedules {
		if schedule.Status == entities.StatusApproved && schedule.AutoCreate {
			items = append(items, schedule)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Year < items[j].Year })
	return items, nil
}

func (s *Store) CreateScheduled(_ context.Context, scheduled ports.ScheduledMeeting) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, scheduled)
	return uuid.NewString(), nil
}

// CreatedMeetings returns the hand-offs captured by the creator port.
func (s *Store) CreatedMeetings() []ports.ScheduledMeeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.ScheduledMeeting, len(s.created))
	copy(items, s.created)
	return items
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
