package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PermissionBundleDTO struct {
	ApproveExpenses      bool     `json:"approve_expenses"`
	CallAssembly         bool     `json:"call_assembly"`
	SignDocuments        bool     `json:"sign_documents"`
	CreatePolls          bool     `json:"create_polls"`
	ExpenseApprovalLimit *float64 `json:"expense_approval_limit,omitempty"`
}

type CreateMemberRequest struct {
	FullName    string               `json:"full_name"`
	Role        string               `json:"role"`
	PropertyID  string               `json:"property_id"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date,omitempty"`
	Permissions *PermissionBundleDTO `json:"permissions,omitempty"`
}

type UpdateRoleRequest struct {
	Role        string               `json:"role"`
	Permissions *PermissionBundleDTO `json:"permissions,omitempty"`
}

type MemberResponse struct {
	MemberID       string              `json:"member_id"`
	FullName       string              `json:"full_name"`
	Role           string              `json:"role"`
	PropertyID     string              `json:"property_id"`
	Active         bool                `json:"active"`
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date,omitempty"`
	PositionWeight int                 `json:"position_weight"`
	Permissions    PermissionBundleDTO `json:"permissions"`
}

type MemberListResponse struct {
	Items []MemberResponse `json:"items"`
}
