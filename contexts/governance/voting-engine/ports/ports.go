package ports

import (
	"context"
	"time"

	"comunidad/contexts/governance/voting-engine/domain/entities"
	"comunidad/internal/shared/events"
)

type SessionRepository interface {
	SaveSession(ctx context.Context, session entities.VotingSession) error
	GetSession(ctx context.Context, sessionID string) (entities.VotingSession, error)
	ListSessionsByAssembly(ctx context.Context, assemblyID string) ([]entities.VotingSession, error)
}

type VoteRepository interface {
	// AppendVote persists a new ballot. It fails with ErrDoubleVote when the
	// voter already holds a ballot in the session, regardless of any earlier
	// read the caller performed.
	AppendVote(ctx context.Context, vote entities.Vote) error
	GetVoteByVoter(ctx context.Context, sessionID string, propertyID string) (entities.Vote, bool, error)
	ListVotesBySession(ctx context.Context, sessionID string) ([]entities.Vote, error)
}

// AssemblyProjection is the read model of assembly state this module consumes.
type AssemblyProjection struct {
	AssemblyID string
	Status     string
	InSession  bool
}

type AssemblyDirectory interface {
	GetAssembly(ctx context.Context, assemblyID string) (AssemblyProjection, error)
	// AttendanceEligible reports whether the property attends the assembly,
	// in person or through a proxy, per the quorum snapshot.
	AttendanceEligible(ctx context.Context, assemblyID string, propertyID string) (bool, error)
}

type PropertyDirectory interface {
	OwnershipPercentage(ctx context.Context, propertyID string) (float64, error)
}

// CertifierDirectory answers whether a member may certify and submit results.
type CertifierDirectory interface {
	CanCertify(ctx context.Context, memberID string) (bool, error)
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
