package ports

import (
	"context"
	"time"

	"comunidad/contexts/governance/member-registry/domain/entities"
)

type MemberRepository interface {
	SaveMember(ctx context.Context, member entities.Member) error
	GetMember(ctx context.Context, memberID string) (entities.Member, error)
	ListMembers(ctx context.Context, activeOnly bool) ([]entities.Member, error)
	FindActiveByRole(ctx context.Context, role entities.Role) ([]entities.Member, error)
}

// PropertyProjection is the slice of the property read model this module
// needs for appointment validation.
type PropertyProjection struct {
	PropertyID string
	Active     bool
	Resident   bool
}

type PropertyDirectory interface {
	GetProperty(ctx context.Context, propertyID string) (PropertyProjection, bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
