package ports

import (
	"context"
	"time"

	"comunidad/contexts/governance/poll-engine/domain/entities"
	"comunidad/internal/shared/events"
)

type PollRepository interface {
	SavePoll(ctx context.Context, poll entities.Poll) error
	GetPoll(ctx context.Context, pollID string) (entities.Poll, error)
	ListPolls(ctx context.Context) ([]entities.Poll, error)
	// ListOpenEndedBefore returns open polls whose end date lies strictly
	// before the given day, for the auto-close sweep.
	ListOpenEndedBefore(ctx context.Context, day time.Time, limit int) ([]entities.Poll, error)
}

// AudienceDirectory resolves audience membership from the member and
// property registries. The snapshot is taken when a poll opens.
type AudienceDirectory interface {
	CommitteeMemberIDs(ctx context.Context) ([]string, error)
	OwnerIDs(ctx context.Context) ([]string, error)
	ResidentOwnerIDs(ctx context.Context) ([]string, error)
}

// NotificationSink is the fire-and-forget collaborator; failures are logged
// by callers and never abort governance state changes.
type NotificationSink interface {
	Emit(ctx context.Context, notification events.Notification) error
}

// NotificationDedup reserves an emission key. It reports true when the key
// was already reserved, so emitters stay idempotent per (kind, subject, day).
type NotificationDedup interface {
	Reserve(ctx context.Context, key string, expiresAt time.Time) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
