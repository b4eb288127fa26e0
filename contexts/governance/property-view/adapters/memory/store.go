package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"comunidad/contexts/governance/property-view/domain/entities"
	domainerrors "comunidad/contexts/governance/property-view/domain/errors"
)

type Store struct {
	mu         sync.RWMutex
	properties map[string]entities.Property
}

func NewStore(seed []entities.Property) *Store {
	properties := make(map[string]entities.Property, len(seed))
	for _, property := range seed {
		properties[strings.TrimSpace(property.PropertyID)] = property
	}
	return &Store{properties: properties}
}

func (s *Store) SetProperty(property entities.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[strings.TrimSpace(property.PropertyID)] = property
}

func (s *Store) ListActiveProperties(_ context.Context) ([]entities.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Property, 0, len(s.properties))
	for _, property := range s.properties {
		if property.Active {
			items = append(items, property)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PropertyID < items[j].PropertyID
	})
	return items, nil
}

func (s *Store) GetProperty(_ context.Context, propertyID string) (entities.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	property, ok := s.properties[strings.TrimSpace(propertyID)]
	if !ok {
		return entities.Property{}, domainerrors.ErrPropertyNotFound
	}
	return property, nil
}

func (s *Store) OwnershipPercentage(ctx context.Context, propertyID string) (float64, error) {
	property, err := s.GetProperty(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	return property.OwnershipPercentage, nil
}

func (s *Store) IsResident(ctx context.Context, propertyID string) (bool, error) {
	property, err := s.GetProperty(ctx, propertyID)
	if err != nil {
		return false, err
	}
	return property.Resident(), nil
}
