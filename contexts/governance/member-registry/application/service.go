package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"comunidad/contexts/governance/member-registry/domain/entities"
	domainerrors "comunidad/contexts/governance/member-registry/domain/errors"
	"comunidad/contexts/governance/member-registry/ports"
)

// CreateMemberCommand is the write-model input for an appointment.
// Permissions is optional; when nil the role default is applied.
type CreateMemberCommand struct {
	FullName    string
	Role        entities.Role
	PropertyID  string
	StartDate   time.Time
	EndDate     *time.Time
	Permissions *entities.PermissionBundle
}

type UpdateRoleCommand struct {
	MemberID    string
	Role        entities.Role
	Permissions *entities.PermissionBundle
}

// Service orchestrates member commands: role uniqueness, permission
// derivation, and position-weight recomputation happen on every save.
type Service struct {
	Members    ports.MemberRepository
	Properties ports.PropertyDirectory
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (s Service) CreateMember(ctx context.Context, cmd CreateMemberCommand) (entities.Member, error) {
	logger := ResolveLogger(s.Logger)
	if strings.TrimSpace(cmd.FullName) == "" || !cmd.Role.Valid() || strings.TrimSpace(cmd.PropertyID) == "" {
		return entities.Member{}, domainerrors.ErrInvalidMemberInput
	}
	if cmd.EndDate != nil && !cmd.StartDate.Before(*cmd.EndDate) {
		return entities.Member{}, domainerrors.ErrDateOrder
	}
	if err := s.checkProperty(ctx, cmd.PropertyID); err != nil {
		return entities.Member{}, err
	}
	if err := s.checkRoleUnique(ctx, cmd.Role, ""); err != nil {
		return entities.Member{}, err
	}

	now := s.now()
	memberID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Member{}, err
	}
	member := entities.Member{
		MemberID:   memberID,
		FullName:   strings.TrimSpace(cmd.FullName),
		Role:       cmd.Role,
		PropertyID: strings.TrimSpace(cmd.PropertyID),
		Active:     true,
		StartDate:  cmd.StartDate,
		EndDate:    cmd.EndDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyRoleDerivations(&member, cmd.Permissions)

	if err := s.Members.SaveMember(ctx, member); err != nil {
		return entities.Member{}, err
	}
	logger.Info("member created",
		"event", "member_created",
		"module", "governance/member-registry",
		"layer", "application",
		"member_id", member.MemberID,
		"role", string(member.Role),
		"property_id", member.PropertyID,
	)
	return member, nil
}

func (s Service) UpdateRole(ctx context.Context, cmd UpdateRoleCommand) (entities.Member, error) {
	logger := ResolveLogger(s.Logger)
	if strings.TrimSpace(cmd.MemberID) == "" || !cmd.Role.Valid() {
		return entities.Member{}, domainerrors.ErrInvalidMemberInput
	}
	member, err := s.Members.GetMember(ctx, strings.TrimSpace(cmd.MemberID))
	if err != nil {
		return entities.Member{}, err
	}
	if !member.Active {
		return entities.Member{}, domainerrors.ErrMemberInactive
	}
	if err := s.checkProperty(ctx, member.PropertyID); err != nil {
		return entities.Member{}, err
	}
	if err := s.checkRoleUnique(ctx, cmd.Role, member.MemberID); err != nil {
		return entities.Member{}, err
	}

	member.Role = cmd.Role
	member.UpdatedAt = s.now()
	applyRoleDerivations(&member, cmd.Permissions)

	if err := s.Members.SaveMember(ctx, member); err != nil {
		return entities.Member{}, err
	}
	logger.Info("member role updated",
		"event", "member_role_updated",
		"module", "governance/member-registry",
		"layer", "application",
		"member_id", member.MemberID,
		"role", string(member.Role),
	)
	return member, nil
}

// Deactivate ends the mandate and revokes the permission bundle.
func (s Service) Deactivate(ctx context.Context, memberID string) (entities.Member, error) {
	logger := ResolveLogger(s.Logger)
	member, err := s.Members.GetMember(ctx, strings.TrimSpace(memberID))
	if err != nil {
		return entities.Member{}, err
	}
	if !member.Active {
		return member, nil
	}
	now := s.now()
	member.Active = false
	member.Permissions = entities.PermissionBundle{}
	if member.EndDate == nil {
		member.EndDate = &now
	}
	member.UpdatedAt = now
	if err := s.Members.SaveMember(ctx, member); err != nil {
		return entities.Member{}, err
	}
	logger.Info("member deactivated",
		"event", "member_deactivated",
		"module", "governance/member-registry",
		"layer", "application",
		"member_id", member.MemberID,
		"role", string(member.Role),
	)
	return member, nil
}

func (s Service) ActiveMembers(ctx context.Context) ([]entities.Member, error) {
	return s.Members.ListMembers(ctx, true)
}

func (s Service) ByRole(ctx context.Context, role entities.Role) ([]entities.Member, error) {
	if !role.Valid() {
		return nil, domainerrors.ErrInvalidMemberInput
	}
	return s.Members.FindActiveByRole(ctx, role)
}

// CanApproveExpense is the permission check consumed by the finance side.
func (s Service) CanApproveExpense(ctx context.Context, memberID string, amount float64) (bool, error) {
	member, err := s.Members.GetMember(ctx, strings.TrimSpace(memberID))
	if err != nil {
		return false, err
	}
	return member.CanApproveExpense(amount), nil
}

func (s Service) checkProperty(ctx context.Context, propertyID string) error {
	property, found, err := s.Properties.GetProperty(ctx, strings.TrimSpace(propertyID))
	if err != nil {
		return err
	}
	if !found || !property.Active {
		return domainerrors.ErrPropertyInactive
	}
	return nil
}

func (s Service) checkRoleUnique(ctx context.Context, role entities.Role, selfID string) error {
	if !role.UniqueRole() {
		return nil
	}
	holders, err := s.Members.FindActiveByRole(ctx, role)
	if err != nil {
		return err
	}
	for _, holder := range holders {
		if holder.MemberID != selfID {
			return domainerrors.ErrRoleConflict
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

// applyRoleDerivations re-derives permissions and weight on each save.
func applyRoleDerivations(member *entities.Member, explicit *entities.PermissionBundle) {
	if explicit != nil {
		member.Permissions = *explicit
	} else {
		member.Permissions = entities.DefaultPermissions(member.Role)
	}
	member.PositionWeight = member.Role.PositionWeight()
}
