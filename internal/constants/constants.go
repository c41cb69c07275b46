package constants

// ContextKeyIdentity is the gin context key holding the authenticated
// identity established by the authentication middleware.
const ContextKeyIdentity = "identity"

// Default roles created for every company.
const (
	RoleOwner    = "Owner"
	RoleEmployee = "Employee"
)

// Built-in permission names seeded into the catalog.
const (
	PermAddEmployee    = "Add employee"
	PermRemoveEmployee = "Remove employee"
	PermListRoles      = "List roles"
	PermCreateRole     = "Create role"
	PermModifyRole     = "Modify role"
	PermDeleteRole     = "Delete role"
	PermCreateCampaign = "Create campaign"
	PermModifyCampaign = "Modify campaign"
)

// Token claim names for the membership snapshot embedded at issue time.
// Authorization never trusts these; they exist for clients.
const (
	ClaimCompanyID = "company_id"
	ClaimRole      = "role"
)

const MinPasswordLength = 8

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
