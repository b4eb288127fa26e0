package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"comunidad/contexts/governance/agreement-tracker/domain/entities"
	domainerrors "comunidad/contexts/governance/agreement-tracker/domain/errors"
	"comunidad/contexts/governance/agreement-tracker/ports"
)

// CreateAgreementCommand is the write-model input for agreement creation.
// Number is optional; missing numbers are generated as ACU-{year}-{seq}.
type CreateAgreementCommand struct {
	Number                 string
	SourceType             entities.SourceType
	SourceRef              string
	Title                  string
	Description            string
	AgreementDate          time.Time
	DueDate                time.Time
	Category               entities.Category
	Priority               entities.Priority
	ResponsibleID          string
	SecondaryResponsibleID string
	ReminderDaysBefore     int
}

type ProgressUpdateCommand struct {
	AgreementID string
	AuthorID    string
	Description string
	Percentage  *float64
	Attachments []string
}

// CompletionStatistics summarizes agreement outcomes, optionally bounded by
// an agreement-date range.
type CompletionStatistics struct {
	Total             int
	Pending           int
	InProgress        int
	Completed         int
	Overdue           int
	Cancelled         int
	CompletionRate    float64
	AverageCompletion float64
}

// Service orchestrates agreement commands. Every save path reconciles the
// record: number generation, date validation, completion derivation, the
// overdue rule, and promotion to Completed.
type Service struct {
	Agreements          ports.AgreementRepository
	FollowUps           ports.FollowUpRepository
	Clock               ports.Clock
	IDGen               ports.IDGenerator
	AutoCreateFollowUps bool
	DueSoonDays         int
	Logger              *slog.Logger
}

func (s Service) Create(ctx context.Context, cmd CreateAgreementCommand) (entities.Agreement, error) {
	logger := ResolveLogger(s.Logger)
	if strings.TrimSpace(cmd.Title) == "" || strings.TrimSpace(cmd.ResponsibleID) == "" {
		return entities.Agreement{}, domainerrors.ErrInvalidAgreementInput
	}
	if cmd.AgreementDate.IsZero() || cmd.DueDate.IsZero() {
		return entities.Agreement{}, domainerrors.ErrInvalidAgreementInput
	}
	if cmd.DueDate.Before(cmd.AgreementDate) {
		return entities.Agreement{}, domainerrors.ErrDateOrder
	}

	now := s.now()
	agreementID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Agreement{}, err
	}
	number := strings.TrimSpace(cmd.Number)
	if number == "" {
		sequence, err := s.Agreements.NextAgreementSequence(ctx, cmd.AgreementDate.UTC().Year())
		if err != nil {
			return entities.Agreement{}, err
		}
		number = entities.FormatNumber(cmd.AgreementDate.UTC().Year(), sequence)
	}

	agreement := entities.Agreement{
		AgreementID:            agreementID,
		Number:                 number,
		SourceType:             cmd.SourceType,
		SourceRef:              strings.TrimSpace(cmd.SourceRef),
		Title:                  strings.TrimSpace(cmd.Title),
		Description:            strings.TrimSpace(cmd.Description),
		AgreementDate:          cmd.AgreementDate.UTC(),
		DueDate:                cmd.DueDate.UTC(),
		Category:               cmd.Category,
		Priority:               cmd.Priority,
		ResponsibleID:          strings.TrimSpace(cmd.ResponsibleID),
		SecondaryResponsibleID: strings.TrimSpace(cmd.SecondaryResponsibleID),
		Status:                 entities.StatusPending,
		ReminderDaysBefore:     cmd.ReminderDaysBefore,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	agreement.Reconcile(now)

	if err := s.Agreements.SaveAgreement(ctx, agreement); err != nil {
		return entities.Agreement{}, err
	}
	if s.AutoCreateFollowUps {
		if err := s.spawnFollowUps(ctx, agreement, now); err != nil {
			return entities.Agreement{}, err
		}
	}

	logger.Info("agreement created",
		"event", "agreement_created",
		"module", "governance/agreement-tracker",
		"layer", "application",
		"agreement_id", agreement.AgreementID,
		"number", agreement.Number,
		"source_type", string(agreement.SourceType),
		"source_ref", agreement.SourceRef,
		"due_date", agreement.DueDate.Format("2006-01-02"),
	)
	return agreement, nil
}

// AddProgressUpdate appends one update and re-derives completion. Percentage
// changes are rejected on terminal agreements; notes stay allowed on
// completed ones for auditability.
func (s Service) AddProgressUpdate(ctx context.Context, cmd ProgressUpdateCommand) (entities.Agreement, error) {
	logger := ResolveLogger(s.Logger)
	if strings.TrimSpace(cmd.AgreementID) == "" || strings.TrimSpace(cmd.Description) == "" {
		return entities.Agreement{}, domainerrors.ErrInvalidProgressInput
	}
	if cmd.Percentage != nil && (*cmd.Percentage < 0 || *cmd.Percentage > 100) {
		return entities.Agreement{}, domainerrors.ErrInvalidProgressInput
	}

	agreement, err := s.Agreements.GetAgreement(ctx, strings.TrimSpace(cmd.AgreementID))
	if err != nil {
		return entities.Agreement{}, err
	}
	if agreement.Status == entities.StatusCancelled {
		return entities.Agreement{}, domainerrors.ErrTerminalState
	}
	if agreement.Status == entities.StatusCompleted && cmd.Percentage != nil {
		return entities.Agreement{}, domainerrors.ErrTerminalState
	}

	now := s.now()
	updateID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Agreement{}, err
	}
	agreement.Updates = append(agreement.Updates, entities.ProgressUpdate{
		UpdateID:    updateID,
		Date:        now,
		AuthorID:    strings.TrimSpace(cmd.AuthorID),
		Description: strings.TrimSpace(cmd.Description),
		Percentage:  cmd.Percentage,
		Attachments: cmd.Attachments,
	})
	if agreement.Status == entities.StatusPending && cmd.Percentage != nil && *cmd.Percentage > 0 {
		agreement.Status = entities.StatusInProgress
	}
	agreement.UpdatedAt = now
	agreement.Reconcile(now)

	if err := s.Agreements.SaveAgreement(ctx, agreement); err != nil {
		return entities.Agreement{}, err
	}
	if agreement.Status == entities.StatusCompleted {
		if err := s.closeFollowUps(ctx, agreement.AgreementID, now); err != nil {
			return entities.Agreement{}, err
		}
	}
	logger.Info("agreement progress recorded",
		"event", "agreement_progress_recorded",
		"module", "governance/agreement-tracker",
		"layer", "application",
		"agreement_id", agreement.AgreementID,
		"completion", agreement.CompletionPercentage,
		"status", string(agreement.Status),
	)
	return agreement, nil
}

// MarkCompleted sets completion to 100 and records the optional note as the
// final progress entry.
func (s Service) MarkCompleted(ctx context.Context, agreementID string, authorID string, note string) (entities.Agreement, error) {
	logger := ResolveLogger(s.Logger)
	agreement, err := s.Agreements.GetAgreement(ctx, strings.TrimSpace(agreementID))
	if err != nil {
		return entities.Agreement{}, err
	}
	if agreement.Status == entities.StatusCancelled {
		return entities.Agreement{}, domainerrors.ErrTerminalState
	}
	if agreement.Status == entities.StatusCompleted {
		return agreement, nil
	}

	now := s.now()
	description := strings.TrimSpace(note)
	if description == "" {
		description = "agreement completed"
	}
	updateID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Agreement{}, err
	}
	hundred := 100.0
	agreement.Updates = append(agreement.Updates, entities.ProgressUpdate{
		UpdateID:    updateID,
		Date:        now,
		AuthorID:    strings.TrimSpace(authorID),
		Description: description,
		Percentage:  &hundred,
	})
	agreement.UpdatedAt = now
	agreement.Reconcile(now)

	if err := s.Agreements.SaveAgreement(ctx, agreement); err != nil {
		return entities.Agreement{}, err
	}
	if err := s.closeFollowUps(ctx, agreement.AgreementID, now); err != nil {
		return entities.Agreement{}, err
	}
	logger.Info("agreement completed",
		"event", "agreement_completed",
		"module", "governance/agreement-tracker",
		"layer", "application",
		"agreement_id", agreement.AgreementID,
		"number", agreement.Number,
	)
	return agreement, nil
}

func (s Service) Pending(ctx context.Context, responsibleID string, limit int) ([]entities.Agreement, error) {
	return s.Agreements.ListPending(ctx, strings.TrimSpace(responsibleID), normalizeLimit(limit))
}

func (s Service) Overdue(ctx context.Context, limit int) ([]entities.Agreement, error) {
	return s.Agreements.ListByStatus(ctx, entities.StatusOverdue, normalizeLimit(limit))
}

func (s Service) DueSoon(ctx context.Context, days int, limit int) ([]entities.Agreement, error) {
	if days <= 0 {
		days = s.DueSoonDays
	}
	if days <= 0 {
		days = 7
	}
	now := s.now()
	return s.Agreements.ListDueBetween(ctx, now, now.AddDate(0, 0, days), normalizeLimit(limit))
}

// BySource lists the agreements spawned from one governance source record.
func (s Service) BySource(ctx context.Context, sourceType entities.SourceType, sourceRef string) ([]entities.Agreement, error) {
	return s.Agreements.ListBySource(ctx, sourceType, strings.TrimSpace(sourceRef))
}

// Statistics aggregates outcomes, optionally bounded by agreement date.
func (s Service) Statistics(ctx context.Context, from *time.Time, to *time.Time) (CompletionStatistics, error) {
	agreements, err := s.Agreements.ListAgreements(ctx)
	if err != nil {
		return CompletionStatistics{}, err
	}
	stats := CompletionStatistics{}
	completionSum := 0.0
	for _, agreement := range agreements {
		if from != nil && agreement.AgreementDate.Before(from.UTC()) {
			continue
		}
		if to != nil && agreement.AgreementDate.After(to.UTC()) {
			continue
		}
		stats.Total++
		completionSum += agreement.CompletionPercentage
		switch agreement.Status {
		case entities.StatusPending:
			stats.Pending++
		case entities.StatusInProgress:
			stats.InProgress++
		case entities.StatusCompleted:
			stats.Completed++
		case entities.StatusOverdue:
			stats.Overdue++
		case entities.StatusCancelled:
			stats.Cancelled++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
		stats.AverageCompletion = completionSum / float64(stats.Total)
	}
	return stats, nil
}

func (s Service) spawnFollowUps(ctx context.Context, agreement entities.Agreement, now time.Time) error {
	for _, assignee := range agreement.Responsibles() {
		followUpID, err := s.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		if err := s.FollowUps.SaveFollowUp(ctx, entities.FollowUp{
			FollowUpID:  followUpID,
			AgreementID: agreement.AgreementID,
			AssigneeID:  assignee,
			Priority:    agreement.Priority.FollowUpPriority(),
			Status:      entities.FollowUpOpen,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s Service) closeFollowUps(ctx context.Context, agreementID string, now time.Time) error {
	followUps, err := s.FollowUps.ListFollowUpsByAgreement(ctx, agreementID)
	if err != nil {
		return err
	}
	for _, followUp := range followUps {
		if followUp.Status != entities.FollowUpOpen {
			continue
		}
		followUp.Status = entities.FollowUpClosed
		followUp.UpdatedAt = now
		if err := s.FollowUps.SaveFollowUp(ctx, followUp); err != nil {
			return err
		}
	}
	return nil
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
