package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"comunidad/contexts/governance/member-registry/application"
	"comunidad/contexts/governance/member-registry/domain/entities"
	domainerrors "comunidad/contexts/governance/member-registry/domain/errors"
	httptransport "comunidad/contexts/governance/member-registry/transport/http"
)

type Handler struct {
	Members application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateMemberHandler(ctx context.Context, req httptransport.CreateMemberRequest) (httptransport.MemberResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return httptransport.MemberResponse{}, domainerrors.ErrInvalidMemberInput
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			return httptransport.MemberResponse{}, domainerrors.ErrInvalidMemberInput
		}
		endDate = &parsed
	}
	member, err := h.Members.CreateMember(ctx, application.CreateMemberCommand{
		FullName:    req.FullName,
		Role:        entities.Role(req.Role),
		PropertyID:  req.PropertyID,
		StartDate:   startDate,
		EndDate:     endDate,
		Permissions: permissionsFromDTO(req.Permissions),
	})
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func (h Handler) UpdateRoleHandler(ctx context.Context, memberID string, req httptransport.UpdateRoleRequest) (httptransport.MemberResponse, error) {
	member, err := h.Members.UpdateRole(ctx, application.UpdateRoleCommand{
		MemberID:    memberID,
		Role:        entities.Role(req.Role),
		Permissions: permissionsFromDTO(req.Permissions),
	})
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func (h Handler) DeactivateHandler(ctx context.Context, memberID string) (httptransport.MemberResponse, error) {
	member, err := h.Members.Deactivate(ctx, memberID)
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapMember(member), nil
}

func (h Handler) ActiveMembersHandler(ctx context.Context) (httptransport.MemberListResponse, error) {
	members, err := h.Members.ActiveMembers(ctx)
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	return httptransport.MemberListResponse{Items: mapMembers(members)}, nil
}

func (h Handler) ByRoleHandler(ctx context.Context, role string) (httptransport.MemberListResponse, error) {
	members, err := h.Members.ByRole(ctx, entities.Role(role))
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	return httptransport.MemberListResponse{Items: mapMembers(members)}, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func permissionsFromDTO(dto *httptransport.PermissionBundleDTO) *entities.PermissionBundle {
	if dto == nil {
		return nil
	}
	return &entities.PermissionBundle{
		ApproveExpenses:      dto.ApproveExpenses,
		CallAssembly:         dto.CallAssembly,
		SignDocuments:        dto.SignDocuments,
		CreatePolls:          dto.CreatePolls,
		ExpenseApprovalLimit: dto.ExpenseApprovalLimit,
	}
}

func mapMembers(members []entities.Member) []httptransport.MemberResponse {
	items := make([]httptransport.MemberResponse, 0, len(members))
	for _, member := range members {
		items = append(items, mapMember(member))
	}
	return items
}

func mapMember(member entities.Member) httptransport.MemberResponse {
	endDate := ""
	if member.EndDate != nil {
		endDate = member.EndDate.Format("2006-01-02")
	}
	return httptransport.MemberResponse{
		MemberID:       member.MemberID,
		FullName:       member.FullName,
		Role:           string(member.Role),
		PropertyID:     member.PropertyID,
		Active:         member.Active,
		StartDate:      member.StartDate.Format("2006-01-02"),
		EndDate:        endDate,
		PositionWeight: member.PositionWeight,
		Permissions: httptransport.PermissionBundleDTO{
			ApproveExpenses:      member.Permissions.ApproveExpenses,
			CallAssembly:         member.Permissions.CallAssembly,
			SignDocuments:        member.Permissions.SignDocuments,
			CreatePolls:          member.Permissions.CreatePolls,
			ExpenseApprovalLimit: member.Permissions.ExpenseApprovalLimit,
		},
	}
}
