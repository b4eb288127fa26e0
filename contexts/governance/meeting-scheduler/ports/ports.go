package ports

import (
	"context"
	"time"

	"comunidad/contexts/governance/meeting-scheduler/domain/entities"
)

type ScheduleRepository interface {
	SaveSchedule(ctx context.Context, schedule entities.Schedule) error
	GetSchedule(ctx context.Context, scheduleID string) (entities.Schedule, error)
	ListSchedules(ctx context.Context) ([]entities.Schedule, error)
	// ListApprovedAutoCreate returns approved schedules flagged for
	// automatic materialization.
	ListApprovedAutoCreate(ctx context.Context) ([]entities.Schedule, error)
}

// ScheduledMeeting is the hand-off record the materializer passes to the
// committee meeting module.
type ScheduledMeeting struct {
	Title           string
	Date            time.Time
	MeetingType     string
	SuggestedTopics []string
	SeriesRef       string
}

type MeetingCreator interface {
	// CreateScheduled creates the committee meeting and returns its id for
	// the back-reference on the schedule entry.
	CreateScheduled(ctx context.Context, scheduled ScheduledMeeting) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
