package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"comunidad/contexts/governance/agreement-tracker/domain/entities"
	domainerrors "comunidad/contexts/governance/agreement-tracker/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveAgreement(ctx context.Context, agreement entities.Agreement) error {
	row, err := agreementModelFromEntity(agreement)
	if err != nil {
		return err
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"number":                   row.Number,
			"source_type":              row.SourceType,
			"source_ref":               row.SourceRef,
			"title":                    row.Title,
			"description":              row.Description,
			"agreement_date":           row.AgreementDate,
			"due_date":                 row.DueDate,
			"category":                 row.Category,
			"priority":                 row.Priority,
			"responsible_id":           row.ResponsibleID,
			"secondary_responsible_id": row.SecondaryResponsibleID,
			"status":                   row.Status,
			"completion_percentage":    row.CompletionPercentage,
			"reminder_days_before":     row.ReminderDaysBefore,
			"updates":                  row.Updates,
			"updated_at":               row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrInvalidAgreementInput
		}
		return r.logError("agreement_repo_save_failed", create.Error,
			"agreement_id", strings.TrimSpace(agreement.AgreementID),
			"number", strings.TrimSpace(agreement.Number),
		)
	}
	return nil
}

func (r *Repository) GetAgreement(ctx context.Context, agreementID string) (entities.Agreement, error) {
	var row agreementModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(agreementID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Agreement{}, domainerrors.ErrAgreementNotFound
		}
		return entities.Agreement{}, r.logError("agreement_repo_get_failed", err,
			"agreement_id", strings.TrimSpace(agreementID),
		)
	}
	return row.toEntity()
}

func (r *Repository) ListAgreements(ctx context.Context) ([]entities.Agreement, error) {
	var rows []agreementModel
	if err := r.db.WithContext(ctx).
		Order("due_date ASC, number ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("agreement_repo_list_failed", err)
	}
	return toAgreementEntities(rows)
}

func (r *Repository) ListPending(ctx context.Context, responsibleID string, limit int) ([]entities.Agreement, error) {
	tx := r.db.WithContext(ctx).Model(&agreementModel{}).
		Where("status IN ?", []string{string(entities.StatusPending), string(entities.StatusInProgress)})
	if strings.TrimSpace(responsibleID) != "" {
		tx = tx.Where("responsible_id = ? OR secondary_responsible_id = ?",
			strings.TrimSpace(responsibleID), strings.TrimSpace(responsibleID))
	}
	var rows []agreementModel
	if err := tx.Order("due_date ASC, number ASC").Limit(normalizeLimit(limit)).Find(&rows).Error; err != nil {
		return nil, r.logError("agreement_repo_list_pending_failed", err,
			"responsible_id", strings.TrimSpace(responsibleID),
		)
	}
	return toAgreementEntities(rows)
}

func (r *Repository) ListByStatus(ctx context.Context, status entities.Status, limit int) ([]entities.Agreement, error) {
	var rows []agreementModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("due_date ASC, number ASC").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, r.logError("agreement_repo_list_by_status_failed", err,
			"status", string(status),
		)
	}
	return toAgreementEntities(rows)
}

func (r *Repository) ListOverdueCandidates(ctx context.Context, before time.Time, limit int) ([]entities.Agreement, error) {
	var rows []agreementModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(entities.StatusPending), string(entities.StatusInProgress)}).
		Where("due_date < ?", dateOnly(before)).
		Order("due_date ASC, number ASC").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, r.logError("agreement_repo_list_overdue_candidates_failed", err)
	}
	return toAgreementEntities(rows)
}

func (r *Repository) ListDueBetween(ctx context.Context, from time.Time, to time.Time, limit int) ([]entities.Agreement, error) {
	var rows []agreementModel
	if err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ?", dateOnly(from), dateOnly(to).AddDate(0, 0, 1)).
		Order("due_date ASC, number ASC").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, r.logError("agreement_repo_list_due_between_failed", err)
	}
	return toAgreementEntities(rows)
}

func (r *Repository) ListReminderCandidates(ctx context.Context, day time.Time, limit int) ([]entities.Agreement, error) {
	var rows []agreementModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(entities.StatusPending), string(entities.StatusInProgress)}).
		Where("reminder_days_before > 0").
		Where("date_trunc('day', due_date) - reminder_days_before * interval '1 day' = ?", dateOnly(day)).
		Order("due_date ASC, number ASC").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, r.logError("agreement_repo_list_reminder_candidates_failed", err)
	}
	return toAgreementEntities(rows)
}

func (r *Repository) ListBySource(ctx context.Context, sourceType entities.SourceType, sourceRef string) ([]entities.Agreement, error) {
	var rows []agreementModel
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_ref = ?", string(sourceType), strings.TrimSpace(sourceRef)).
		Order("due_date ASC, number ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("agreement_repo_list_by_source_failed", err,
			"source_ref", strings.TrimSpace(sourceRef),
		)
	}
	return toAgreementEntities(rows)
}

// NextAgreementSequence increments the per-year counter atomically so
// concurrent creations still yield a contiguous sequence.
func (r *Repository) NextAgreementSequence(ctx context.Context, year int) (int, error) {
	var value int
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO agreement_sequences (year, value) VALUES (?, 1)
		 ON CONFLICT (year) DO UPDATE SET value = agreement_sequences.value + 1
		 RETURNING value`, year,
	).Scan(&value).Error
	if err != nil {
		return 0, r.logError("agreement_repo_next_sequence_failed", err, "year", year)
	}
	return value, nil
}

func (r *Repository) SaveFollowUp(ctx context.Context, followUp entities.FollowUp) error {
	row := followUpModelFromEntity(followUp)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"status":     row.Status,
			"priority":   row.Priority,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("agreement_repo_save_follow_up_failed", create.Error,
			"follow_up_id", strings.TrimSpace(followUp.FollowUpID),
			"agreement_id", strings.TrimSpace(followUp.AgreementID),
		)
	}
	return nil
}

func (r *Repository) ListFollowUpsByAgreement(ctx context.Context, agreementID string) ([]entities.FollowUp, error) {
	var rows []followUpModel
	if err := r.db.WithContext(ctx).
		Where("agreement_id = ?", strings.TrimSpace(agreementID)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("agreement_repo_list_follow_ups_failed", err,
			"agreement_id", strings.TrimSpace(agreementID),
		)
	}
	items := make([]entities.FollowUp, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// Reserve inserts the dedup key; a unique violation means the emission
// already happened for this (kind, subject, day).
func (r *Repository) Reserve(ctx context.Context, key string, expiresAt time.Time) (bool, error) {
	row := notificationDedupModel{
		Key:       strings.TrimSpace(key),
		ExpiresAt: expiresAt.UTC(),
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, r.logError("agreement_repo_reserve_failed", err, "key", row.Key)
	}
	return false, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/agreement-tracker",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("agreement repository operation failed", fields...)
	return err
}

type agreementModel struct {
	ID                     string    `gorm:"column:id;primaryKey"`
	Number                 string    `gorm:"column:number"`
	SourceType             string    `gorm:"column:source_type"`
	SourceRef              string    `gorm:"column:source_ref"`
	Title                  string    `gorm:"column:title"`
	Description            string    `gorm:"column:description"`
	AgreementDate          time.Time `gorm:"column:agreement_date"`
	DueDate                time.Time `gorm:"column:due_date"`
	Category               string    `gorm:"column:category"`
	Priority               string    `gorm:"column:priority"`
	ResponsibleID          string    `gorm:"column:responsible_id"`
	SecondaryResponsibleID string    `gorm:"column:secondary_responsible_id"`
	Status                 string    `gorm:"column:status"`
	CompletionPercentage   float64   `gorm:"column:completion_percentage"`
	ReminderDaysBefore     int       `gorm:"column:reminder_days_before"`
	Updates                []byte    `gorm:"column:updates;type:jsonb"`
	CreatedAt              time.Time `gorm:"column:created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

func (agreementModel) TableName() string {
	return "agreements"
}

func agreementModelFromEntity(agreement entities.Agreement) (agreementModel, error) {
	updates, err := json.Marshal(agreement.Updates)
	if err != nil {
		return agreementModel{}, err
	}
	row := agreementModel{
		ID:                     strings.TrimSpace(agreement.AgreementID),
		Number:                 strings.TrimSpace(agreement.Number),
		SourceType:             string(agreement.SourceType),
		SourceRef:              strings.TrimSpace(agreement.SourceRef),
		Title:                  strings.TrimSpace(agreement.Title),
		Description:            strings.TrimSpace(agreement.Description),
		AgreementDate:          agreement.AgreementDate.UTC(),
		DueDate:                agreement.DueDate.UTC(),
		Category:               string(agreement.Category),
		Priority:               string(agreement.Priority),
		ResponsibleID:          strings.TrimSpace(agreement.ResponsibleID),
		SecondaryResponsibleID: strings.TrimSpace(agreement.SecondaryResponsibleID),
		Status:                 string(agreement.Status),
		CompletionPercentage:   agreement.CompletionPercentage,
		ReminderDaysBefore:     agreement.ReminderDaysBefore,
		Updates:                updates,
		CreatedAt:              agreement.CreatedAt.UTC(),
		UpdatedAt:              agreement.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row, nil
}

func (m agreementModel) toEntity() (entities.Agreement, error) {
	var updates []entities.ProgressUpdate
	if len(m.Updates) > 0 {
		if err := json.Unmarshal(m.Updates, &updates); err != nil {
			return entities.Agreement{}, err
		}
	}
	return entities.Agreement{
		AgreementID:            m.ID,
		Number:                 m.Number,
		SourceType:             entities.SourceType(m.SourceType),
		SourceRef:              m.SourceRef,
		Title:                  m.Title,
		Description:            m.Description,
		AgreementDate:          m.AgreementDate.UTC(),
		DueDate:                m.DueDate.UTC(),
		Category:               entities.Category(m.Category),
		Priority:               entities.Priority(m.Priority),
		ResponsibleID:          m.ResponsibleID,
		SecondaryResponsibleID: m.SecondaryResponsibleID,
		Status:                 entities.Status(m.Status),
		CompletionPercentage:   m.CompletionPercentage,
		ReminderDaysBefore:     m.ReminderDaysBefore,
		Updates:                updates,
		CreatedAt:              m.CreatedAt.UTC(),
		UpdatedAt:              m.UpdatedAt.UTC(),
	}, nil
}

type followUpModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	AgreementID string    `gorm:"column:agreement_id"`
	AssigneeID  string    `gorm:"column:assignee_id"`
	Priority    string    `gorm:"column:priority"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (followUpModel) TableName() string {
	return "agreement_follow_ups"
}

func followUpModelFromEntity(followUp entities.FollowUp) followUpModel {
	return followUpModel{
		ID:          strings.TrimSpace(followUp.FollowUpID),
		AgreementID: strings.TrimSpace(followUp.AgreementID),
		AssigneeID:  strings.TrimSpace(followUp.AssigneeID),
		Priority:    string(followUp.Priority),
		Status:      string(followUp.Status),
		CreatedAt:   followUp.CreatedAt.UTC(),
		UpdatedAt:   followUp.UpdatedAt.UTC(),
	}
}

func (m followUpModel) toEntity() entities.FollowUp {
	return entities.FollowUp{
		FollowUpID:  m.ID,
		AgreementID: m.AgreementID,
		AssigneeID:  m.AssigneeID,
		Priority:    entities.Priority(m.Priority),
		Status:      entities.FollowUpStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type notificationDedupModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (notificationDedupModel) TableName() string {
	return "agreement_notification_dedup"
}

func toAgreementEntities(rows []agreementModel) ([]entities.Agreement, error) {
	items := make([]entities.Agreement, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}

func dateOnly(value time.Time) time.Time {
	value = value.UTC()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
