package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"comunidad/contexts/governance/voting-engine/domain/entities"
	domainerrors "comunidad/contexts/governance/voting-engine/domain/errors"
	"comunidad/contexts/governance/voting-engine/ports"

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

func (r *Repository) SaveSession(ctx context.Context, session entities.VotingSession) error {
	row := sessionModelFromEntity(session)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"assembly_id":         row.AssemblyID,
			"motion":              row.Motion,
			"voting_type":         row.VotingType,
			"required_percentage": row.RequiredPercentage,
			"anonymous":           row.Anonymous,
			"start_time":          row.StartTime,
			"end_time":            row.EndTime,
			"status":              row.Status,
			"total_power":         row.TotalPower,
			"percent_in_favor":    row.PercentInFavor,
			"percent_against":     row.PercentAgainst,
			"percent_abstention":  row.PercentAbstention,
			"result":              row.Result,
			"certified_by":        row.CertifiedBy,
			"result_at":           row.ResultAt,
			"updated_at":          row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_save_session_failed", create.Error,
			"session_id", strings.TrimSpace(session.SessionID),
			"assembly_id", strings.TrimSpace(session.AssemblyID),
		)
	}
	return nil
}

func (r *Repository) GetSession(ctx context.Context, sessionID string) (entities.VotingSession, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(sessionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VotingSession{}, domainerrors.ErrSessionNotFound
		}
		return entities.VotingSession{}, r.logError("voting_repo_get_session_failed", err,
			"session_id", strings.TrimSpace(sessionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSessionsByAssembly(ctx context.Context, assemblyID string) ([]entities.VotingSession, error) {
	var rows []sessionModel
	if err := r.db.WithContext(ctx).
		Where("assembly_id = ?", strings.TrimSpace(assemblyID)).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_sessions_failed", err,
			"assembly_id", strings.TrimSpace(assemblyID),
		)
	}
	items := make([]entities.VotingSession, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// AppendVote relies on the (session_id, property_id) unique index for the
// one-ballot-per-property rule; concurrent casts race at the database, not in
// application memory.
func (r *Repository) AppendVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDoubleVote
		}
		return r.logError("voting_repo_append_vote_failed", err,
			"vote_id", strings.TrimSpace(vote.VoteID),
			"session_id", strings.TrimSpace(vote.SessionID),
			"property_id", strings.TrimSpace(vote.PropertyID),
		)
	}
	return nil
}

func (r *Repository) GetVoteByVoter(ctx context.Context, sessionID string, propertyID string) (entities.Vote, bool, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", strings.TrimSpace(sessionID)).
		Where("property_id = ?", strings.TrimSpace(propertyID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, false, nil
		}
		return entities.Vote{}, false, r.logError("voting_repo_get_vote_by_voter_failed", err,
			"session_id", strings.TrimSpace(sessionID),
			"property_id", strings.TrimSpace(propertyID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListVotesBySession(ctx context.Context, sessionID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", strings.TrimSpace(sessionID)).
		Order("cast_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_votes_failed", err,
			"session_id", strings.TrimSpace(sessionID),
		)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "governance/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

type sessionModel struct {
	ID                 string     `gorm:"column:id;primaryKey"`
	AssemblyID         string     `gorm:"column:assembly_id"`
	Motion             string     `gorm:"column:motion"`
	VotingType         string     `gorm:"column:voting_type"`
	RequiredPercentage float64    `gorm:"column:required_percentage"`
	Anonymous          bool       `gorm:"column:anonymous"`
	StartTime          time.Time  `gorm:"column:start_time"`
	EndTime            time.Time  `gorm:"column:end_time"`
	Status             string     `gorm:"column:status"`
	TotalPower         float64    `gorm:"column:total_power"`
	PercentInFavor     float64    `gorm:"column:percent_in_favor"`
	PercentAgainst     float64    `gorm:"column:percent_against"`
	PercentAbstention  float64    `gorm:"column:percent_abstention"`
	Result             *string    `gorm:"column:result"`
	CertifiedBy        string     `gorm:"column:certified_by"`
	ResultAt           *time.Time `gorm:"column:result_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string {
	return "voting_sessions"
}

func sessionModelFromEntity(session entities.VotingSession) sessionModel {
	row := sessionModel{
		ID:                 strings.TrimSpace(session.SessionID),
		AssemblyID:         strings.TrimSpace(session.AssemblyID),
		Motion:             strings.TrimSpace(session.Motion),
		VotingType:         string(session.Type),
		RequiredPercentage: session.RequiredPercentage,
		Anonymous:          session.Anonymous,
		StartTime:          session.StartTime.UTC(),
		EndTime:            session.EndTime.UTC(),
		Status:             string(session.Status),
		TotalPower:         session.Totals.TotalPower,
		PercentInFavor:     session.Totals.PercentInFavor,
		PercentAgainst:     session.Totals.PercentAgainst,
		PercentAbstention:  session.Totals.PercentAbstention,
		CertifiedBy:        strings.TrimSpace(session.CertifiedBy),
		CreatedAt:          session.CreatedAt.UTC(),
		UpdatedAt:          session.UpdatedAt.UTC(),
	}
	if session.Result != nil {
		result := string(*session.Result)
		row.Result = &result
	}
	if session.ResultAt != nil {
		resultAt := session.ResultAt.UTC()
		row.ResultAt = &resultAt
	}
	return row
}

func (m sessionModel) toEntity() entities.VotingSession {
	session := entities.VotingSession{
		SessionID:          m.ID,
		AssemblyID:         m.AssemblyID,
		Motion:             m.Motion,
		Type:               entities.VotingType(m.VotingType),
		RequiredPercentage: m.RequiredPercentage,
		Anonymous:          m.Anonymous,
		StartTime:          m.StartTime.UTC(),
		EndTime:            m.EndTime.UTC(),
		Status:             entities.SessionStatus(m.Status),
		Totals: entities.Totals{
			TotalPower:        m.TotalPower,
			PercentInFavor:    m.PercentInFavor,
			PercentAgainst:    m.PercentAgainst,
			PercentAbstention: m.PercentAbstention,
		},
		CertifiedBy: m.CertifiedBy,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.Result != nil {
		result := entities.SessionResult(*m.Result)
		session.Result = &result
	}
	if m.ResultAt != nil {
		resultAt := m.ResultAt.UTC()
		session.ResultAt = &resultAt
	}
	return session
}

type voteModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	SessionID  string    `gorm:"column:session_id;uniqueIndex:idx_votes_session_property"`
	PropertyID string    `gorm:"column:property_id;uniqueIndex:idx_votes_session_property"`
	Value      string    `gorm:"column:value"`
	Power      float64   `gorm:"column:power"`
	CastAt     time.Time `gorm:"column:cast_at"`
	Method     string    `gorm:"column:method"`
	IPAddress  string    `gorm:"column:ip_address"`
	Signature  string    `gorm:"column:signature"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ID:         strings.TrimSpace(vote.VoteID),
		SessionID:  strings.TrimSpace(vote.SessionID),
		PropertyID: strings.TrimSpace(vote.PropertyID),
		Value:      string(vote.Value),
		Power:      vote.Power,
		CastAt:     vote.CastAt.UTC(),
		Method:     string(vote.Method),
		IPAddress:  strings.TrimSpace(vote.IPAddress),
		Signature:  strings.TrimSpace(vote.Signature),
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		VoteID:     m.ID,
		SessionID:  m.SessionID,
		PropertyID: m.PropertyID,
		Value:      entities.VoteValue(m.Value),
		Power:      m.Power,
		CastAt:     m.CastAt.UTC(),
		Method:     entities.VoteMethod(m.Method),
		IPAddress:  m.IPAddress,
		Signature:  m.Signature,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.SessionRepository = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)
