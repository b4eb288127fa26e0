package entities

import "time"

type Role string

const (
	RolePresident Role = "president"
	RoleSecretary Role = "secretary"
	RoleTreasurer Role = "treasurer"
	RoleVocal     Role = "vocal"
)

// UniqueRole reports whether at most one active member may hold the role.
func (r Role) UniqueRole() bool {
	switch r {
	case RolePresident, RoleSecretary, RoleTreasurer:
		return true
	default:
		return false
	}
}

func (r Role) Valid() bool {
	switch r {
	case RolePresident, RoleSecretary, RoleTreasurer, RoleVocal:
		return true
	default:
		return false
	}
}

// PositionWeight ranks roles for protocol ordering and tie-break policies.
func (r Role) PositionWeight() int {
	switch r {
	case RolePresident:
		return 4
	case RoleSecretary:
		return 3
	case RoleTreasurer:
		return 2
	default:
		return 1
	}
}

// PermissionBundle is the capability set attached to a member. A nil
// ExpenseApprovalLimit means unlimited approval authority.
type PermissionBundle struct {
	ApproveExpenses      bool
	CallAssembly         bool
	SignDocuments        bool
	CreatePolls          bool
	ExpenseApprovalLimit *float64
}

// DefaultPermissions is the role-derived bundle applied unless a bundle was
// set explicitly on the command.
func DefaultPermissions(role Role) PermissionBundle {
	switch role {
	case RolePresident:
		return PermissionBundle{
			ApproveExpenses: true,
			CallAssembly:    true,
			SignDocuments:   true,
			CreatePolls:     true,
		}
	case RoleSecretary:
		return PermissionBundle{
			SignDocuments: true,
			CreatePolls:   true,
		}
	case RoleTreasurer:
		limit := 5000.0
		return PermissionBundle{
			ApproveExpenses:      true,
			ExpenseApprovalLimit: &limit,
		}
	default:
		return PermissionBundle{}
	}
}

type Member struct {
	MemberID       string
	FullName       string
	Role           Role
	PropertyID     string
	Active         bool
	StartDate      time.Time
	EndDate        *time.Time
	Permissions    PermissionBundle
	PositionWeight int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanApproveExpense checks the permission bit and the approval limit.
func (m Member) CanApproveExpense(amount float64) bool {
	if !m.Active || !m.Permissions.ApproveExpenses {
		return false
	}
	if m.Permissions.ExpenseApprovalLimit == nil {
		return true
	}
	return amount <= *m.Permissions.ExpenseApprovalLimit
}
