package ports

import (
	"context"
	"time"

	"comunidad/contexts/governance/assembly-lifecycle/domain/entities"
	"comunidad/internal/shared/events"
)

type AssemblyRepository interface {
	SaveAssembly(ctx context.Context, assembly entities.Assembly) error
	GetAssembly(ctx context.Context, assemblyID string) (entities.Assembly, error)
	ListAssemblies(ctx context.Context) ([]entities.Assembly, error)
	// NextAssemblySequence advances and returns the per-year counter backing
	// assembly numbering.
	NextAssemblySequence(ctx context.Context, year int) (int, error)
}

// PropertyRef is the slice of the property registry this module consumes.
type PropertyRef struct {
	PropertyID          string
	OwnershipPercentage float64
}

type PropertyDirectory interface {
	ListActiveProperties(ctx context.Context) ([]PropertyRef, error)
}

// SessionRef is the voting-engine projection used by the submit gate.
type SessionRef struct {
	SessionID string
	Motion    string
	Closed    bool
	Result    string
}

const SessionResultApproved = "approved"

type SessionDirectory interface {
	// FindSessionByMotion resolves the voting session held for an agenda
	// topic within the assembly, if any.
	FindSessionByMotion(ctx context.Context, assemblyID string, motion string) (SessionRef, bool, error)
}

// DerivedAgreement is the hand-off record for agreements spawned at submit.
// The receiving module applies its own defaults for category and priority.
type DerivedAgreement struct {
	SourceRef     string
	Topic         string
	Description   string
	ResponsibleID string
	AgreementDate time.Time
	DueDate       time.Time
}

type AgreementCreator interface {
	CreateFromAssembly(ctx context.Context, derived DerivedAgreement) error
}

// NotificationSink is the fire-and-forget collaborator; failures are logged
// by callers and never abort governance state changes.
type NotificationSink interface {
	Emit(ctx context.Context, notification events.Notification) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
