package repository

import (
	"github.com/tomasdma/donation-platform/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Update persists changes to an existing user
	Update(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindBySubject finds a user whose username or email equals the
	// token subject.
	FindBySubject(subject string) (*models.User, error)
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// CreateWithDefaultRoles creates a company, its Owner and Employee
	// roles, and the creator's Owner membership within one transaction.
	CreateWithDefaultRoles(company *models.Company, ownerID uint64, ownerPermissions []models.Permission) error

	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)

	// List retrieves all companies with their type
	List() ([]models.Company, error)

	// CreateType creates a company type
	CreateType(ct *models.CompanyType) error

	// FindTypeByID finds a company type by ID
	FindTypeByID(id uint64) (*models.CompanyType, error)

	// ListTypes retrieves all company types
	ListTypes() ([]models.CompanyType, error)
}

// RoleRepository defines the interface for role and permission data access
type RoleRepository interface {
	// Create creates a new role with its permission associations
	Create(role *models.CompanyRole) error

	// Update persists role changes and replaces its permission set
	Update(role *models.CompanyRole, permissions []models.Permission) error

	// Delete removes a role and its permission associations
	Delete(role *models.CompanyRole) error

	// FindByID finds a role with its permissions preloaded
	FindByID(id uint64) (*models.CompanyRole, error)

	// FindByCompanyIDAndName finds a role by its per-company unique name
	FindByCompanyIDAndName(companyID uint64, name string) (*models.CompanyRole, error)

	// ListByCompanyID lists a company's roles with permissions preloaded
	ListByCompanyID(companyID uint64) ([]models.CompanyRole, error)

	// CountMemberships counts membership rows referencing the role
	CountMemberships(roleID uint64) (int64, error)

	// FindPermissionsByIDs resolves permission references
	FindPermissionsByIDs(ids []uint64) ([]models.Permission, error)

	// ListPermissions retrieves the process-wide permission catalog
	ListPermissions() ([]models.Permission, error)

	// CreatePermission adds a permission to the catalog
	CreatePermission(p *models.Permission) error
}

// MembershipRepository defines the interface for membership data access
type MembershipRepository interface {
	// FindByUserID finds a user's membership with role, permissions and
	// company preloaded. Authorization reads go through here on every
	// request; results are never cached.
	FindByUserID(userID uint64) (*models.Membership, error)

	// FindByUserIDAndCompanyID finds a membership scoped to a company
	FindByUserIDAndCompanyID(userID, companyID uint64) (*models.Membership, error)

	// ListByCompanyID lists a company's memberships with users preloaded
	ListByCompanyID(companyID uint64) ([]models.Membership, error)

	// Transfer atomically replaces the user's membership with a new
	// (company, role) assignment.
	Transfer(userID, companyID, roleID uint64) (*models.Membership, error)

	// DeleteByUserID removes the user's membership if any
	DeleteByUserID(userID uint64) error
}

// CampaignRepository defines the interface for campaign data access
type CampaignRepository interface {
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
	FindByID(id uint64) (*models.Campaign, error)
	List(page, limit int) ([]models.Campaign, int64, error)
}

// DonationRepository defines the interface for donation data access
type DonationRepository interface {
	// Record inserts the donation and increments the campaign's raised
	// amount in one transaction.
	Record(donation *models.Donation) error

	ListByCampaignID(campaignID uint64) ([]models.Donation, error)
	ListByUserID(userID uint64) ([]models.Donation, error)
}
