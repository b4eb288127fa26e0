package ports

import (
	"context"

	"comunidad/contexts/governance/property-view/domain/entities"
)

// Registry is the read API over the property module. Implementations never
// mutate; consumers re-resolve activity on every write path.
type Registry interface {
	ListActiveProperties(ctx context.Context) ([]entities.Property, error)
	GetProperty(ctx context.Context, propertyID string) (entities.Property, error)
	OwnershipPercentage(ctx context.Context, propertyID string) (float64, error)
	IsResident(ctx context.Context, propertyID string) (bool, error)
}
