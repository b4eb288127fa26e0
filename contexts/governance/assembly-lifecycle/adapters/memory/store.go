package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"comunidad/contexts/governance/assembly-lifecycle/domain/entities"
	domainerrors "comunidad/contexts/governance/assembly-lifecycle/domain/errors"
	"comunidad/contexts/governance/assembly-lifecycle/ports"
)

// Store is the in-memory adapter backing every assembly-lifecycle port. The
// property and session projections are seedable so the module runs without
// the sibling modules wired in; derived agreements are captured for
// inspection.
type Store struct {
	mu         sync.RWMutex
	assemblies map[string]entities.Assembly
	sequences  map[int]int
	properties []ports.PropertyRef
	sessions   map[string]map[string]ports.SessionRef
	derived    []ports.DerivedAgreement
}

func NewStore() *Store {
	return &Store{
		assemblies: make(map[string]entities.Assembly),
		sequences:  make(map[int]int),
		sessions:   make(map[string]map[string]ports.SessionRef),
	}
}

func (s *Store) SaveAssembly(_ context.Context, assembly entities.Assembly) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assemblies[assembly.AssemblyID] = assembly
	return nil
}

func (s *Store) GetAssembly(_ context.Context, assemblyID string) (entities.Assembly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assembly, ok := s.assemblies[assemblyID]
	if !ok {
		return entities.Assembly{}, domainerrors.ErrAssemblyNotFound
	}
	return assembly, nil
}

func (s *Store) ListAssemblies(_ context.Context) ([]entities.Assembly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Assembly, 0, len(s.assemblies))
	for _, assembly := range s.assemblies {
		items = append(items, assembly)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AssemblyDate.Before(items[j].AssemblyDate) })
	return items, nil
}

func (s *Store) NextAssemblySequence(_ context.Context, year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[year]++
	return s.sequences[year], nil
}

func (s *Store) ListActiveProperties(_ context.Context) ([]ports.PropertyRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.PropertyRef, len(s.properties))
	copy(items, s.properties)
	return items, nil
}

func (s *Store) FindSessionByMotion(_ context.Context, assemblyID string, motion string) (ports.SessionRef, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[assemblyID][motion]
	return session, ok, nil
}

func (s *Store) CreateFromAssembly(_ context.Context, derived ports.DerivedAgreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.derived = append(s.derived, derived)
	return nil
}

// SetProperties seeds the active-property projection.
func (s *Store) SetProperties(properties []ports.PropertyRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = make([]ports.PropertyRef, len(properties))
	copy(s.properties, properties)
}

// SetSession seeds one voting-session projection keyed by motion.
func (s *Store) SetSession(assemblyID string, session ports.SessionRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byMotion, ok := s.sessions[assemblyID]
	if !ok {
		byMotion = make(map[string]ports.SessionRef)
		s.sessions[assemblyID] = byMotion
	}
	byMotion[session.Motion] = session
}

// DerivedAgreements returns the agreements captured by the creator port.
func (s *Store) DerivedAgreements() []ports.DerivedAgreement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.DerivedAgreement, len(s.derived))
	copy(items, s.derived)
	return items
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
