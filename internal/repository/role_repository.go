package repository

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tomasdma/donation-platform/internal/models"
	"gorm.io/gorm"
)

const permissionCatalogKey = "permission-catalog"

// GormRoleRepository is a GORM implementation of RoleRepository. The
// process-wide permission catalog is read on most role operations and
// changes rarely, so catalog reads go through a short-lived cache.
// Role and membership reads are never cached.
type GormRoleRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{
		db:    db,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Create creates a new role with its permission associations
func (r *GormRoleRepository) Create(role *models.CompanyRole) error {
	return r.db.Create(role).Error
}

// Update persists role changes and replaces its permission set
func (r *GormRoleRepository) Update(role *models.CompanyRole, permissions []models.Permission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(role).Error; err != nil {
			return err
		}
		if permissions != nil {
			if err := tx.Model(role).Association("Permissions").Replace(permissions); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a role and its permission associations. Membership
// checks belong to the service layer; by the time this runs the role
// must have no members.
func (r *GormRoleRepository) Delete(role *models.CompanyRole) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(role).Association("Permissions").Clear(); err != nil {
			return err
		}
		return tx.Delete(role).Error
	})
}

// FindByID finds a role with its permissions preloaded
func (r *GormRoleRepository) FindByID(id uint64) (*models.CompanyRole, error) {
	var role models.CompanyRole
	if err := r.db.Preload("Permissions").First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByCompanyIDAndName finds a role by its per-company unique name
func (r *GormRoleRepository) FindByCompanyIDAndName(companyID uint64, name string) (*models.CompanyRole, error) {
	var role models.CompanyRole
	if err := r.db.Where("company_id = ? AND name = ?", companyID, name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ListByCompanyID lists a company's roles with permissions preloaded
func (r *GormRoleRepository) ListByCompanyID(companyID uint64) ([]models.CompanyRole, error) {
	var roles []models.CompanyRole
	if err := r.db.Preload("Permissions").Where("company_id = ?", companyID).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// CountMemberships counts membership rows referencing the role
func (r *GormRoleRepository) CountMemberships(roleID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

// FindPermissionsByIDs resolves permission references
func (r *GormRoleRepository) FindPermissionsByIDs(ids []uint64) ([]models.Permission, error) {
	var permissions []models.Permission
	if err := r.db.Where("id IN ?", ids).Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// ListPermissions retrieves the process-wide permission catalog
func (r *GormRoleRepository) ListPermissions() ([]models.Permission, error) {
	if cached, ok := r.cache.Get(permissionCatalogKey); ok {
		return cached.([]models.Permission), nil
	}

	var permissions []models.Permission
	if err := r.db.Find(&permissions).Error; err != nil {
		return nil, err
	}
	r.cache.SetDefault(permissionCatalogKey, permissions)
	return permissions, nil
}

// CreatePermission adds a permission to the catalog
func (r *GormRoleRepository) CreatePermission(p *models.Permission) error {
	if err := r.db.Create(p).Error; err != nil {
		return err
	}
	r.cache.Delete(permissionCatalogKey)
	return nil
}
