package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"comunidad/contexts/governance/agreement-tracker/application"
	"comunidad/contexts/governance/agreement-tracker/domain/entities"
	domainerrors "comunidad/contexts/governance/agreement-tracker/domain/errors"
	httptransport "comunidad/contexts/governance/agreement-tracker/transport/http"
)

type Handler struct {
	Agreements application.Service
	Logger     *slog.Logger
}

func (h Handler) CreateAgreementHandler(ctx context.Context, req httptransport.CreateAgreementRequest) (httptransport.AgreementResponse, error) {
	agreementDate, err := parseDate(req.AgreementDate)
	if err != nil {
		return httptransport.AgreementResponse{}, domainerrors.ErrInvalidAgreementInput
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return httptransport.AgreementResponse{}, domainerrors.ErrInvalidAgreementInput
	}
	agreement, err := h.Agreements.Create(ctx, application.CreateAgreementCommand{
		Number:                 req.Number,
		SourceType:             entities.SourceType(req.SourceType),
		SourceRef:              req.SourceRef,
		Title:                  req.Title,
		Description:            req.Description,
		AgreementDate:          agreementDate,
		DueDate:                dueDate,
		Category:               entities.Category(req.Category),
		Priority:               entities.Priority(req.Priority),
		ResponsibleID:          req.ResponsibleID,
		SecondaryResponsibleID: req.SecondaryResponsibleID,
		ReminderDaysBefore:     req.ReminderDaysBefore,
	})
	if err != nil {
		return httptransport.AgreementResponse{}, err
	}
	return mapAgreement(agreement), nil
}

func (h Handler) AddProgressUpdateHandler(ctx context.Context, agreementID string, req httptransport.ProgressUpdateRequest) (httptransport.AgreementResponse, error) {
	agreement, err := h.Agreements.AddProgressUpdate(ctx, application.ProgressUpdateCommand{
		AgreementID: agreementID,
		AuthorID:    req.AuthorID,
		Description: req.Description,
		Percentage:  req.Percentage,
		Attachments: req.Attachments,
	})
	if err != nil {
		return httptransport.AgreementResponse{}, err
	}
	return mapAgreement(agreement), nil
}

func (h Handler) MarkCompletedHandler(ctx context.Context, agreementID string, req httptransport.MarkCompletedRequest) (httptransport.AgreementResponse, error) {
	agreement, err := h.Agreements.MarkCompleted(ctx, agreementID, req.AuthorID, req.Note)
	if err != nil {
		return httptransport.AgreementResponse{}, err
	}
	return mapAgreement(agreement), nil
}

func (h Handler) PendingHandler(ctx context.Context, responsibleID string, limit int) (httptransport.AgreementListResponse, error) {
	agreements, err := h.Agreements.Pending(ctx, responsibleID, limit)
	if err != nil {
		return httptransport.AgreementListResponse{}, err
	}
	return httptransport.AgreementListResponse{Items: mapAgreements(agreements)}, nil
}

func (h Handler) OverdueHandler(ctx context.Context, limit int) (httptransport.AgreementListResponse, error) {
	agreements, err := h.Agreements.Overdue(ctx, limit)
	if err != nil {
		return httptransport.AgreementListResponse{}, err
	}
	return httptransport.AgreementListResponse{Items: mapAgreements(agreements)}, nil
}

func (h Handler) DueSoonHandler(ctx context.Context, days int, limit int) (httptransport.AgreementListResponse, error) {
	agreements, err := h.Agreements.DueSoon(ctx, days, limit)
	if err != nil {
		return httptransport.AgreementListResponse{}, err
	}
	return httptransport.AgreementListResponse{Items: mapAgreements(agreements)}, nil
}

func (h Handler) StatisticsHandler(ctx context.Context, fromRaw string, toRaw string) (httptransport.StatisticsResponse, error) {
	var from, to *time.Time
	if fromRaw != "" {
		parsed, err := parseDate(fromRaw)
		if err != nil {
			return httptransport.StatisticsResponse{}, domainerrors.ErrInvalidAgreementInput
		}
		from = &parsed
	}
	if toRaw != "" {
		parsed, err := parseDate(toRaw)
		if err != nil {
			return httptransport.StatisticsResponse{}, domainerrors.ErrInvalidAgreementInput
		}
		to = &parsed
	}
	stats, err := h.Agreements.Statistics(ctx, from, to)
	if err != nil {
		return httptransport.StatisticsResponse{}, err
	}
	return httptransport.StatisticsResponse{
		Total:             stats.Total,
		Pending:           stats.Pending,
		InProgress:        stats.InProgress,
		Completed:         stats.Completed,
		Overdue:           stats.Overdue,
		Cancelled:         stats.Cancelled,
		CompletionRate:    stats.CompletionRate,
		AverageCompletion: stats.AverageCompletion,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func mapAgreements(agreements []entities.Agreement) []httptransport.AgreementResponse {
	items := make([]httptransport.AgreementResponse, 0, len(agreements))
	for _, agreement := range agreements {
		items = append(items, mapAgreement(agreement))
	}
	return items
}

func mapAgreement(agreement entities.Agreement) httptransport.AgreementResponse {
	updates := make([]httptransport.ProgressUpdateDTO, 0, len(agreement.Updates))
	for _, update := range agreement.Updates {
		updates = append(updates, httptransport.ProgressUpdateDTO{
			UpdateID:    update.UpdateID,
			Date:        update.Date.UTC().Format(time.RFC3339),
			AuthorID:    update.AuthorID,
			Description: update.Description,
			Percentage:  update.Percentage,
			Attachments: update.Attachments,
		})
	}
	return httptransport.AgreementResponse{
		AgreementID:            agreement.AgreementID,
		Number:                 agreement.Number,
		SourceType:             string(agreement.SourceType),
		SourceRef:              agreement.SourceRef,
		Title:                  agreement.Title,
		Description:            agreement.Description,
		AgreementDate:          agreement.AgreementDate.Format("2006-01-02"),
		DueDate:                agreement.DueDate.Format("2006-01-02"),
		Category:               string(agreement.Category),
		Priority:               string(agreement.Priority),
		ResponsibleID:          agreement.ResponsibleID,
		SecondaryResponsibleID: agreement.SecondaryResponsibleID,
		Status:                 string(agreement.Status),
		CompletionPercentage:   agreement.CompletionPercentage,
		ReminderDaysBefore:     agreement.ReminderDaysBefore,
		Updates:                updates,
	}
}
