package repository

import (
	"errors"
	"fmt"

	"github.com/tomasdma/donation-platform/internal/constants"
	"github.com/tomasdma/donation-platform/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateCompany is returned when creating the company row fails
	// inside the bootstrap transaction.
	ErrCreateCompany = errors.New("company repository: create company failed")
	// ErrCreateDefaultRoles is returned when creating the Owner or
	// Employee role fails inside the bootstrap transaction.
	ErrCreateDefaultRoles = errors.New("company repository: create default roles failed")
	// ErrCreateOwnerMembership is returned when granting the creator the
	// Owner membership fails inside the bootstrap transaction.
	ErrCreateOwnerMembership = errors.New("company repository: create owner membership failed")
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// CreateWithDefaultRoles creates the company, bootstraps the Owner and
// Employee roles, and grants the creator the Owner membership, all
// atomically. Every company leaves this method with both default
// roles present.
func (r *GormCompanyRepository) CreateWithDefaultRoles(company *models.Company, ownerID uint64, ownerPermissions []models.Permission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCompany, err)
		}

		owner := &models.CompanyRole{
			Name:        constants.RoleOwner,
			CompanyID:   company.ID,
			Permissions: ownerPermissions,
		}
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateDefaultRoles, err)
		}

		employee := &models.CompanyRole{
			Name:      constants.RoleEmployee,
			CompanyID: company.ID,
		}
		if err := tx.Create(employee).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateDefaultRoles, err)
		}

		membership := &models.Membership{
			UserID:    ownerID,
			CompanyID: company.ID,
			RoleID:    owner.ID,
		}
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOwnerMembership, err)
		}

		return nil
	})
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.Preload("Type").First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List retrieves all companies with their type
func (r *GormCompanyRepository) List() ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.Preload("Type").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// CreateType creates a company type
func (r *GormCompanyRepository) CreateType(ct *models.CompanyType) error {
	return r.db.Create(ct).Error
}

// FindTypeByID finds a company type by ID
func (r *GormCompanyRepository) FindTypeByID(id uint64) (*models.CompanyType, error) {
	var ct models.CompanyType
	if err := r.db.First(&ct, id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

// ListTypes retrieves all company types
func (r *GormCompanyRepository) ListTypes() ([]models.CompanyType, error) {
	var types []models.CompanyType
	if err := r.db.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
