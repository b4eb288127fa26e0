package entities

type OccupancyStatus string

const (
	OccupancyOwnerOccupied OccupancyStatus = "owner_occupied"
	OccupancyRented        OccupancyStatus = "rented"
	OccupancyVacant        OccupancyStatus = "vacant"
)

// Property is the projected read model of one condominium unit.
// OwnershipPercentage is the voting power the unit carries, in (0, 100].
type Property struct {
	PropertyID          string
	OwnerName           string
	OwnershipPercentage float64
	Active              bool
	Occupancy           OccupancyStatus
}

func (p Property) Resident() bool {
	return p.Occupancy == OccupancyOwnerOccupied
}
