package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"comunidad/contexts/governance/committee-meeting/domain/entities"
	domainerrors "comunidad/contexts/governance/committee-meeting/domain/errors"
	"comunidad/contexts/governance/committee-meeting/ports"
)

// ScheduleMeetingCommand is the write-model input for meeting creation.
type ScheduleMeetingCommand struct {
	Title               string
	Date                time.Time
	Type                string
	Format              entities.Format
	PhysicalSpace       string
	VirtualLink         string
	Attendees           []string
	Agenda              []AgendaItemInput
	ScheduledFromSeries string
}

type AgendaItemInput struct {
	Topic         string
	Category      entities.TopicCategory
	Priority      entities.Priority
	ResponsibleID string
}

// RecordDecisionCommand captures the decision taken on one agenda item.
type RecordDecisionCommand struct {
	MeetingID     string
	ItemID        string
	Decision      string
	ResponsibleID string
}

// Service orchestrates the committee meeting lifecycle. Agreements derive at
// completion from every decided agenda item that names a responsible member.
type Service struct {
	Meetings   ports.MeetingRepository
	Agreements ports.AgreementCreator
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	// DerivedDueDays sets the due window for agreements spawned on complete.
	DerivedDueDays int
	Logger         *slog.Logger
}

// Schedule registers a planned meeting. Location fields are validated
// against the format.
func (s Service) Schedule(ctx context.Context, cmd ScheduleMeetingCommand) (entities.Meeting, error) {
	logger := ResolveLogger(s.Logger)
	title := strings.TrimSpace(cmd.Title)
	if title == "" || cmd.Date.IsZero() || !cmd.Format.Valid() {
		return entities.Meeting{}, domainerrors.ErrInvalidMeetingInput
	}

	now := s.now()
	meetingID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Meeting{}, err
	}
	meeting := entities.Meeting{
		MeetingID:           meetingID,
		Title:               title,
		Date:                cmd.Date.UTC(),
		Type:                strings.TrimSpace(cmd.Type),
		Format:              cmd.Format,
		PhysicalSpace:       strings.TrimSpace(cmd.PhysicalSpace),
		VirtualLink:         strings.TrimSpace(cmd.VirtualLink),
		Attendees:           dedupeAttendees(cmd.Attendees),
		Status:              entities.StatusPlanned,
		ScheduledFromSeries: strings.TrimSpace(cmd.ScheduledFromSeries),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if !meeting.ValidFormat() {
		return entities.Meeting{}, domainerrors.ErrInvalidMeetingInput
	}
	for _, input := range cmd.Agenda {
		item, err := s.buildAgendaItem(ctx, input)
		if err != nil {
			return entities.Meeting{}, err
		}
		meeting.Agenda = append(meeting.Agenda, item)
	}
	if err := s.Meetings.SaveMeeting(ctx, meeting); err != nil {
		return entities.Meeting{}, err
	}
	logger.Info("committee meeting scheduled",
		"event", "meeting_scheduled",
		"module", "governance/committee-meeting",
		"layer", "application",
		"meeting_id", meeting.MeetingID,
		"date", meeting.Date.Format("2006-01-02"),
		"format", string(meeting.Format),
		"agenda_items", len(meeting.Agenda),
	)
	return meeting, nil
}

// AddAgendaItem appends an item while the meeting is still open for changes.
func (s Service) AddAgendaItem(ctx context.Context, meetingID string, input AgendaItemInput) (entities.Meeting, error) {
	meeting, err := s.Meetings.GetMeeting(ctx, strings.TrimSpace(meetingID))
	if err != nil {
		return entities.Meeting{}, err
	}
	if meeting.Status != entities.StatusPlanned && meeting.Status != entities.StatusInProgress {
		return entities.Meeting{}, domainerrors.ErrInvalidTransition
	}
	item, err := s.buildAgendaItem(ctx, input)
	if err != nil {
		return entities.Meeting{}, err
	}
	meeting.Agenda = append(meeting.Agenda, item)
	meeting.UpdatedAt = s.now()
	if err := s.Meetings.SaveMeeting(ctx, meeting); err != nil {
		return entities.Meeting{}, err
	}
	return meeting, nil
}

// RegisterAttendee adds one member to the attendance list.
func (s Service) RegisterAttendee(ctx context.Context, meetingID string, memberID string) (entities.Meeting, error) {
	attendee := strings.TrimSpace(memberID)
	if attendee == "" {
		return entities.Meeting{}, domainerrors.ErrInvalidMeetingInput
	}
	meeting, err := s.Meetings.GetMeeting(ctx, strings.TrimSpace(meetingID))
	if err != nil {
		return entities.Meeting{}, err
	}
	if meeting.Terminal() {
		return entities.Meeting{}, domainerrors.ErrTerminalState
	}
	for _, existing := range meeting.Attendees {
		if existing == attendee {
			return meeting, nil
		}
	}
	meeting.Attendees = append(meeting.Attendees, attendee)
	meeting.UpdatedAt = s.now()
	if err := s.Meetings.SaveMeeting(ctx, meeting); err != nil {
		return entities.Meeting{}, err
	}
	return meeting, nil
}

// Start moves the meeting to in progress.
func (s Service) Start(ctx context.Context, meetingID string) (entities.Meeting, error) {
	meeting, err := s.Meetings.GetMeeting(ctx, strings.TrimSpace(meetingID))
	if err != nil {
		return entities.Meeting{}, err
	}
	if meeting.Status != entities.StatusPlanned {
		return entities.Meeting{}, domainerrors.ErrInvalidTransition
	}
	meeting.Status = entities.StatusInProgress
	meeting.UpdatedAt = s.now()
	if err := s.Meetings.SaveMeeting(ctx, meeting); err != nil {
		return entities.Meeting{}, err
	}
	return meeting, nil
}

// RecordDecision writes the decision on one agenda item.
func (s Service) RecordDecision(ctx context.Context, cmd RecordDecisionCommand) (entities.Meeting, error) {
	decision := strings.TrimSpace(cmd.Decision)
	if decision == "" {
		return entities.Meeting{}, domainerrors.ErrInvalidMeetingInput
	}
	meeting, err := s.Meetings.GetMeeting(ctx, strings.TrimSpace(cmd.MeetingID))
	if err != nil {
		return entities.Meeting{}, err
	}
	if meeting.Status != entities.StatusInProgress {
		return entities.Meeting{}, domainerrors.ErrInvalidTransition
	}
	index := meeting.ItemIndex(strings.TrimSpace(cmd.ItemID))
	if index < 0 {
		return entities.Meeting{}, domainerrors.ErrAgendaItemNotFound
	}
	meeting.Agenda[index].Decision = decision
	if responsible := strings.TrimSpace(cmd.ResponsibleID); responsible != "" {
		meeting.Agenda[index].ResponsibleID = responsible
	}
	meeting.UpdatedAt = s.now()
	if err := s.Meetings.SaveMeeting(ctx, meeting); err != nil {
		return entities.Meeting{}, err
	}
	return meeting, nil
}

// Complete closes the working part of the meeting and derives one agreement
// per decided agenda item that names a responsible member, mapping topic
// categories through the fixed table.
func (s Service) Complete(ctx context.Context, meetingID string) (entities.Meeting, error) {
	logger := ResolveLogger(s.Logger)
	meeting, err := s.Meetings.GetMeeting(ctx, strings.TrimSpace(meetingID))
	if err != nil {
		return entities.Meeting{}, err
	}
	if meeting.Status != entities.StatusInProgress {
		return entities.Meeting{}, domainerrors.ErrInvalidTransition
	}

	now := s.now()
	derivedCount := 0
	for _, item := range meeting.Agenda {
		if !item.Decided() || strings.TrimSpace(item.ResponsibleID) == "" {
			continue
		}
		derived := ports.DerivedAgreement{
			SourceRef:     meeting.MeetingID,
			Topic:         item.Topic,
			Decision:      item.Decision,
			Category:      item.Category.AgreementCategory(),
			ResponsibleID: item.ResponsibleID,
			AgreementDate: meeting.Date,
			DueDate:       meeting.Date.AddDate(0, 0, s.resolveDerivedDueDays()),
		}
		if err := s.Agreements.CreateFromMeeting(ctx, derived); err != nil {
			logger.Error("derived agreement creation failed",
				"event", "meeting_complete_agreement_failed",
				"module", "governance/committee-meeting",
				"layer", "application",
				"meeting_id", meeting.MeetingID,
				"topic", item.Topic,
				"error", err.Error(),
			)
			return entities.Meeting{}, err
		}
		derivedCount++
	}

	meeting.Status = entities.StatusCompleted
	meeting.UpdatedAt = now
	if err := s.Meetings.SaveMeeting(ctx, meeting); err != nil {
		return entities.Meeting{}, err
	}
	logger.Info("committee meeting completed",
		"event", "meeting_completed",
		"module", "governance/committee-meeting",
		"layer", "application",
		"meeting_id", meeting.MeetingID,
		"completion_rate", meeting.CompletionRate(),
		"derived_agreements", derivedCount,
	)
	return meeting, nil
}

// Submit seals the record. Critical items must be decided and at least one
// attendee recorded.
func (s Service) Submit(ctx context.Context, meetingID string) (entities.Meeting, error) {
	logger := ResolveLogger(s.Logger)
	meeting, err := s.Meetings.GetMeeting(ctx, strings.TrimSpace(meetingID))
	if err != nil {
		return entities.Meeting{}, err
	}
	if meeting.Status != entities.StatusCompleted {
		return entities.Meeting{}, domainerrors.ErrInvalidTransition
	}
	if len(meeting.UndecidedCritical()) > 0 {
		return entities.Meeting{}, domainerrors.ErrCriticalUndecided
	}
	if len(meeting.Attendees) == 0 {
		return entities.Meeting{}, domainerrors.ErrNoAttendees
	}
	meeting.Status = entities.StatusSubmitted
	meeting.UpdatedAt = s.now()
	if err := s.Meetings.SaveMeeting(ctx, meeting); err != nil {
		return entities.Meeting{}, err
	}
	logger.Info("committee meeting submitted",
		"event", "meeting_submitted",
		"module", "governance/committee-meeting",
		"layer", "application",
		"meeting_id", meeting.MeetingID,
	)
	return meeting, nil
}

// Cancel aborts a non-terminal meeting.
func (s Service) Cancel(ctx context.Context, meetingID string) (entities.Meeting, error) {
	meeting, err := s.Meetings.GetMeeting(ctx, strings.TrimSpace(meetingID))
	if err != nil {
		return entities.Meeting{}, err
	}
	if meeting.Terminal() {
		return entities.Meeting{}, domainerrors.ErrTerminalState
	}
	meeting.Status = entities.StatusCancelled
	meeting.UpdatedAt = s.now()
	if err := s.Meetings.SaveMeeting(ctx, meeting); err != nil {
		return entities.Meeting{}, err
	}
	return meeting, nil
}

// Get returns one meeting.
func (s Service) Get(ctx context.Context, meetingID string) (entities.Meeting, error) {
	return s.Meetings.GetMeeting(ctx, strings.TrimSpace(meetingID))
}

// List returns all meetings.
func (s Service) List(ctx context.Context) ([]entities.Meeting, error) {
	return s.Meetings.ListMeetings(ctx)
}

func (s Service) buildAgendaItem(ctx context.Context, input AgendaItemInput) (entities.AgendaItem, error) {
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return entities.AgendaItem{}, domainerrors.ErrInvalidMeetingInput
	}
	category := input.Category
	if category == "" {
		category = entities.TopicOther
	}
	priority := input.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	itemID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.AgendaItem{}, err
	}
	return entities.AgendaItem{
		ItemID:        itemID,
		Topic:         topic,
		Category:      category,
		Priority:      priority,
		ResponsibleID: strings.TrimSpace(input.ResponsibleID),
	}, nil
}

func (s Service) resolveDerivedDueDays() int {
	if s.DerivedDueDays <= 0 {
		return 30
	}
	return s.DerivedDueDays
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}

func dedupeAttendees(attendees []string) []string {
	seen := make(map[string]struct{}, len(attendees))
	items := make([]string, 0, len(attendees))
	for _, attendee := range attendees {
		trimmed := strings.TrimSpace(attendee)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		items = append(items, trimmed)
	}
	return items
}
