package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"comunidad/contexts/governance/agreement-tracker/domain/entities"
	domainerrors "comunidad/contexts/governance/agreement-tracker/domain/errors"

	"github.com/google/uuid"
)

type dedupRecord struct {
	expiresAt time.Time
}

type Store struct {
	mu         sync.RWMutex
	agreements map[string]entities.Agreement
	followUps  map[string]entities.FollowUp
	sequences  map[int]int
	dedup      map[string]dedupRecord
}

func NewStore(seed []entities.Agreement) *Store {
	agreements := make(map[string]entities.Agreement, len(seed))
	for _, agreement := range seed {
		agreements[strings.TrimSpace(agreement.AgreementID)] = agreement
	}
	return &Store{
		agreements: agreements,
		followUps:  make(map[string]entities.FollowUp),
		sequences:  make(map[int]int),
		dedup:      make(map[string]dedupRecord),
	}
}

func (s *Store) SaveAgreement(_ context.Context, agreement entities.Agreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agreements[strings.TrimSpace(agreement.AgreementID)] = agreement
	return nil
}

func (s *Store) GetAgreement(_ context.Context, agreementID string) (entities.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agreement, ok := s.agreements[strings.TrimSpace(agreementID)]
	if !ok {
		return entities.Agreement{}, domainerrors.ErrAgreementNotFound
	}
	return agreement, nil
}

func (s *Store) ListAgreements(_ context.Context) ([]entities.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Agreement, 0, len(s.agreements))
	for _, agreement := range s.agreements {
		items = append(items, agreement)
	}
	sortAgreements(items)
	return items, nil
}

func (s *Store) ListPending(_ context.Context, responsibleID string, limit int) ([]entities.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Agreement, 0)
	for _, agreement := range s.agreements {
		if agreement.Status != entities.StatusPending && agreement.Status != entities.StatusInProgress {
			continue
		}
		if responsibleID != "" &&
			agreement.ResponsibleID != responsibleID &&
			agreement.SecondaryResponsibleID != responsibleID {
			continue
		}
		items = append(items, agreement)
	}
	sortAgreements(items)
	return truncate(items, limit), nil
}

func (s *Store) ListByStatus(_ context.Context, status entities.Status, limit int) ([]entities.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Agreement, 0)
	for _, agreement := range s.agreements {
		if agreement.Status == status {
			items = append(items, agreement)
		}
	}
	sortAgreements(items)
	return truncate(items, limit), nil
}

func (s *Store) ListOverdueCandidates(_ context.Context, before time.Time, limit int) ([]entities.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := dateOnly(before)
	items := make([]entities.Agreement, 0)
	for _, agreement := range s.agreements {
		if agreement.Status != entities.StatusPending && agreement.Status != entities.StatusInProgress {
			continue
		}
		if dateOnly(agreement.DueDate).Before(day) {
			items = append(items, agreement)
		}
	}
	sortAgreements(items)
	return truncate(items, limit), nil
}

func (s *Store) ListDueBetween(_ context.Context, from time.Time, to time.Time, limit int) ([]entities.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fromDay := dateOnly(from)
	toDay := dateOnly(to)
	items := make([]entities.Agreement, 0)
	for _, agreement := range s.agreements {
		due := dateOnly(agreement.DueDate)
		if due.Before(fromDay) || due.After(toDay) {
			continue
		}
		items = append(items, agreement)
	}
	sortAgreements(items)
	return truncate(items, limit), nil
}

func (s *Store) ListReminderCandidates(_ context.Context, day time.Time, limit int) ([]entities.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	target := dateOnly(day)
	items := make([]entities.Agreement, 0)
	for _, agreement := range s.agreements {
		if agreement.Status != entities.StatusPending && agreement.Status != entities.StatusInProgress {
			continue
		}
		reminder, ok := agreement.ReminderDate()
		if ok && reminder.Equal(target) {
			items = append(items, agreement)
		}
	}
	sortAgreements(items)
	return truncate(items, limit), nil
}

func (s *Store) ListBySource(_ context.Context, sourceType entities.SourceType, sourceRef string) ([]entities.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref := strings.TrimSpace(sourceRef)
	items := make([]entities.Agreement, 0)
	for _, agreement := range s.agreements {
		if agreement.SourceType == sourceType && agreement.SourceRef == ref {
			items = append(items, agreement)
		}
	}
	sortAgreements(items)
	return items, nil
}

func (s *Store) NextAgreementSequence(_ context.Context, year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[year]++
	return s.sequences[year], nil
}

func (s *Store) SaveFollowUp(_ context.Context, followUp entities.FollowUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followUps[strings.TrimSpace(followUp.FollowUpID)] = followUp
	return nil
}

func (s *Store) ListFollowUpsByAgreement(_ context.Context, agreementID string) ([]entities.FollowUp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.FollowUp, 0)
	for _, followUp := range s.followUps {
		if followUp.AgreementID == strings.TrimSpace(agreementID) {
			items = append(items, followUp)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].FollowUpID < items[j].FollowUpID
	})
	return items, nil
}

func (s *Store) Reserve(_ context.Context, key string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key = strings.TrimSpace(key)
	if record, ok := s.dedup[key]; ok {
		if record.expiresAt.After(time.Now().UTC()) {
			return true, nil
		}
		delete(s.dedup, key)
	}
	s.dedup[key] = dedupRecord{expiresAt: expiresAt.UTC()}
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortAgreements(items []entities.Agreement) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].DueDate.Equal(items[j].DueDate) {
			return items[i].Number < items[j].Number
		}
		return items[i].DueDate.Before(items[j].DueDate)
	})
}

func truncate(items []entities.Agreement, limit int) []entities.Agreement {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func dateOnly(value time.Time) time.Time {
	value = value.UTC()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
