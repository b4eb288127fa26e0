package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"comunidad/contexts/governance/assembly-lifecycle/application"
	"comunidad/contexts/governance/assembly-lifecycle/domain/entities"
	domainerrors "comunidad/contexts/governance/assembly-lifecycle/domain/errors"
	httptransport "comunidad/contexts/governance/assembly-lifecycle/transport/http"
)

type Handler struct {
	Assemblies application.Service
	Logger     *slog.Logger
}

func (h Handler) PlanAssemblyHandler(ctx context.Context, req httptransport.PlanAssemblyRequest) (httptransport.AssemblyResponse, error) {
	convocationDate, err := time.Parse("2006-01-02", req.ConvocationDate)
	if err != nil {
		return httptransport.AssemblyResponse{}, domainerrors.ErrInvalidAssemblyInput
	}
	assemblyDate, err := time.Parse("2006-01-02", req.AssemblyDate)
	if err != nil {
		return httptransport.AssemblyResponse{}, domainerrors.ErrInvalidAssemblyInput
	}
	firstCall, err := time.Parse(time.RFC3339, req.FirstCallTime)
	if err != nil {
		return httptransport.AssemblyResponse{}, domainerrors.ErrInvalidAssemblyInput
	}
	secondCall, err := time.Parse(time.RFC3339, req.SecondCallTime)
	if err != nil {
		return httptransport.AssemblyResponse{}, domainerrors.ErrInvalidAssemblyInput
	}
	agenda := make([]application.AgendaItemInput, 0, len(req.Agenda))
	for _, item := range req.Agenda {
		agenda = append(agenda, mapAgendaInput(item))
	}
	assembly, err := h.Assemblies.Plan(ctx, application.PlanAssemblyCommand{
		Type:                    entities.AssemblyType(req.Type),
		Title:                   req.Title,
		ConvocationDate:         convocationDate,
		AssemblyDate:            assemblyDate,
		FirstCallTime:           firstCall,
		SecondCallTime:          secondCall,
		MinimumQuorumFirstCall:  req.MinimumQuorumFirstCall,
		MinimumQuorumSecondCall: req.MinimumQuorumSecondCall,
		Hybrid:                  req.Hybrid,
		VirtualLink:             req.VirtualLink,
		Agenda:                  agenda,
	})
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) AddAgendaItemHandler(ctx context.Context, assemblyID string, req httptransport.AgendaItemInput) (httptransport.AssemblyResponse, error) {
	assembly, err := h.Assemblies.AddAgendaItem(ctx, assemblyID, mapAgendaInput(req))
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) ConveneHandler(ctx context.Context, assemblyID string) (httptransport.AssemblyResponse, error) {
	assembly, err := h.Assemblies.Convene(ctx, assemblyID)
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) RegisterAttendanceHandler(ctx context.Context, assemblyID string, req httptransport.RegisterAttendanceRequest) (httptransport.AssemblyResponse, error) {
	assembly, err := h.Assemblies.RegisterAttendance(ctx, application.RegisterAttendanceCommand{
		AssemblyID:    assemblyID,
		PropertyID:    req.PropertyID,
		Status:        entities.AttendanceStatus(req.Status),
		CheckInMethod: entities.CheckInMethod(req.CheckInMethod),
		ProxyHolder:   req.ProxyHolder,
		ProxyDocument: req.ProxyDocument,
	})
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) StartSessionHandler(ctx context.Context, assemblyID string) (httptransport.AssemblyResponse, error) {
	assembly, err := h.Assemblies.StartSession(ctx, assemblyID)
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) CompleteHandler(ctx context.Context, assemblyID string) (httptransport.AssemblyResponse, error) {
	assembly, err := h.Assemblies.Complete(ctx, assemblyID)
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) SubmitHandler(ctx context.Context, assemblyID string) (httptransport.AssemblyResponse, error) {
	assembly, err := h.Assemblies.Submit(ctx, assemblyID)
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) CancelHandler(ctx context.Context, assemblyID string) (httptransport.AssemblyResponse, error) {
	assembly, err := h.Assemblies.Cancel(ctx, assemblyID)
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) QuorumHandler(ctx context.Context, assemblyID string) (httptransport.QuorumSummaryResponse, error) {
	summary, err := h.Assemblies.Quorum(ctx, assemblyID)
	if err != nil {
		return httptransport.QuorumSummaryResponse{}, err
	}
	return httptransport.QuorumSummaryResponse{
		AssemblyID:      summary.AssemblyID,
		Number:          summary.Number,
		Status:          string(summary.Status),
		TotalProperties: summary.TotalProperties,
		Present:         summary.Present,
		Represented:     summary.Represented,
		Absent:          summary.Absent,
		CurrentQuorum:   summary.CurrentQuorum,
		Threshold:       summary.Threshold,
		ThresholdActive: summary.ThresholdActive,
		QuorumReached:   summary.QuorumReached,
	}, nil
}

func (h Handler) GetHandler(ctx context.Context, assemblyID string) (httptransport.AssemblyResponse, error) {
	assembly, err := h.Assemblies.Get(ctx, assemblyID)
	if err != nil {
		return httptransport.AssemblyResponse{}, err
	}
	return mapAssembly(assembly), nil
}

func (h Handler) ListHandler(ctx context.Context) (httptransport.AssemblyListResponse, error) {
	assemblies, err := h.Assemblies.List(ctx)
	if err != nil {
		return httptransport.AssemblyListResponse{}, err
	}
	items := make([]httptransport.AssemblyResponse, 0, len(assemblies))
	for _, assembly := range assemblies {
		items = append(items, mapAssembly(assembly))
	}
	return httptransport.AssemblyListResponse{Items: items}, nil
}

func mapAgendaInput(item httptransport.AgendaItemInput) application.AgendaItemInput {
	return application.AgendaItemInput{
		Topic:        item.Topic,
		Description:  item.Description,
		PresenterID:  item.PresenterID,
		RequiresVote: item.RequiresVote,
		VotingType:   entities.VotingType(item.VotingType),
	}
}

func mapAssembly(assembly entities.Assembly) httptransport.AssemblyResponse {
	quorum := make([]httptransport.QuorumEntryDTO, 0, len(assembly.Quorum))
	for _, entry := range assembly.Quorum {
		dto := httptransport.QuorumEntryDTO{
			PropertyID:          entry.PropertyID,
			OwnershipPercentage: entry.OwnershipPercentage,
			Status:              string(entry.Status),
			CheckInMethod:       string(entry.CheckInMethod),
			ProxyHolder:         entry.ProxyHolder,
		}
		if entry.AttendanceTime != nil {
			dto.AttendanceTime = entry.AttendanceTime.UTC().Format(time.RFC3339)
		}
		quorum = append(quorum, dto)
	}
	agenda := make([]httptransport.AgendaItemDTO, 0, len(assembly.Agenda))
	for _, item := range assembly.Agenda {
		agenda = append(agenda, httptransport.AgendaItemDTO{
			ItemID:       item.ItemID,
			Topic:        item.Topic,
			Description:  item.Description,
			PresenterID:  item.PresenterID,
			RequiresVote: item.RequiresVote,
			VotingType:   string(item.VotingType),
		})
	}
	return httptransport.AssemblyResponse{
		AssemblyID:              assembly.AssemblyID,
		Number:                  assembly.Number,
		Type:                    string(assembly.Type),
		Title:                   assembly.Title,
		ConvocationDate:         assembly.ConvocationDate.Format("2006-01-02"),
		AssemblyDate:            assembly.AssemblyDate.Format("2006-01-02"),
		FirstCallTime:           assembly.FirstCallTime.UTC().Format(time.RFC3339),
		SecondCallTime:          assembly.SecondCallTime.UTC().Format(time.RFC3339),
		MinimumQuorumFirstCall:  assembly.MinimumQuorumFirstCall,
		MinimumQuorumSecondCall: assembly.MinimumQuorumSecondCall,
		Hybrid:                  assembly.Hybrid,
		VirtualLink:             assembly.VirtualLink,
		Status:                  string(assembly.Status),
		Quorum:                  quorum,
		Agenda:                  agenda,
		CurrentQuorumPercentage: assembly.CurrentQuorumPercentage,
		QuorumReached:           assembly.QuorumReached,
	}
}
