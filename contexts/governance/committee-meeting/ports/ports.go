package ports

import (
	"context"
	"time"

	"comunidad/contexts/governance/committee-meeting/domain/entities"
	"comunidad/internal/shared/events"
)

type MeetingRepository interface {
	SaveMeeting(ctx context.Context, meeting entities.Meeting) error
	GetMeeting(ctx context.Context, meetingID string) (entities.Meeting, error)
	ListMeetings(ctx context.Context) ([]entities.Meeting, error)
	// ListPlannedBetween returns planned meetings whose date falls in
	// [from, to), for the reminder sweep.
	ListPlannedBetween(ctx context.Context, from time.Time, to time.Time, limit int) ([]entities.Meeting, error)
}

// DerivedAgreement is the hand-off record for agreements spawned when a
// meeting completes.
type DerivedAgreement struct {
	SourceRef     string
	Topic         string
	Decision      string
	Category      string
	ResponsibleID string
	AgreementDate time.Time
	DueDate       time.Time
}

type AgreementCreator interface {
	CreateFromMeeting(ctx context.Context, derived DerivedAgreement) error
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
