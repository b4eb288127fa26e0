package ports

import (
	"context"
	"time"

	"comunidad/contexts/governance/agreement-tracker/domain/entities"
	"comunidad/internal/shared/events"
)

type AgreementRepository interface {
	SaveAgreement(ctx context.Context, agreement entities.Agreement) error
	GetAgreement(ctx context.Context, agreementID string) (entities.Agreement, error)
	ListAgreements(ctx context.Context) ([]entities.Agreement, error)
	ListPending(ctx context.Context, responsibleID string, limit int) ([]entities.Agreement, error)
	ListByStatus(ctx context.Context, status entities.Status, limit int) ([]entities.Agreement, error)
	// ListOverdueCandidates returns non-terminal, not-yet-overdue agreements
	// whose due date falls strictly before the given day.
	ListOverdueCandidates(ctx context.Context, before time.Time, limit int) ([]entities.Agreement, error)
	ListDueBetween(ctx context.Context, from time.Time, to time.Time, limit int) ([]entities.Agreement, error)
	// ListReminderCandidates returns non-terminal agreements whose reminder
	// date (due date minus reminder-days-before) falls on the given day,
	// however far out the due date itself is.
	ListReminderCandidates(ctx context.Context, day time.Time, limit int) ([]entities.Agreement, error)
	ListBySource(ctx context.Context, sourceType entities.SourceType, sourceRef string) ([]entities.Agreement, error)
	// NextAgreementSequence advances and returns the per-year counter backing
	// ACU numbering.
	NextAgreementSequence(ctx context.Context, year int) (int, error)
}

type FollowUpRepository interface {
	SaveFollowUp(ctx context.Context, followUp entities.FollowUp) error
	ListFollowUpsByAgreement(ctx context.Context, agreementID string) ([]entities.FollowUp, error)
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
