package propertyview

import (
	"comunidad/contexts/governance/property-view/adapters/memory"
	"comunidad/contexts/governance/property-view/domain/entities"
	"comunidad/contexts/governance/property-view/ports"
)

type Module struct {
	Registry ports.Registry
	Store    *memory.Store
}

func NewInMemoryModule(seed []entities.Property) Module {
	store := memory.NewStore(seed)
	return Module{
		Registry: store,
		Store:    store,
	}
}
