package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRoleNameTaken      = errors.New("role with this name already exists for this company")
	ErrRoleInUse          = errors.New("cannot delete role while members are assigned to it")
	ErrInvalidRoleName    = errors.New("role name cannot be empty")
	ErrPermissionNotFound = errors.New("permission not found")
)

// RoleService provides business logic for company roles and the
// process-wide permission catalog.
type RoleService struct {
	companyRepo repository.CompanyRepository
	roleRepo    repository.RoleRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(companyRepo repository.CompanyRepository, roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{
		companyRepo: companyRepo,
		roleRepo:    roleRepo,
	}
}

// ListRoles returns a company's roles with their permissions.
func (s *RoleService) ListRoles(companyID uint64) ([]models.CompanyRole, error) {
	roles, err := s.roleRepo.ListByCompanyID(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// CreateRoleInput represents parameters to create a role.
type CreateRoleInput struct {
	CompanyID     uint64
	Name          string
	PermissionIDs []uint64
}

// CreateRole creates a role for a company. Role names are unique per
// company.
func (s *RoleService) CreateRole(input CreateRoleInput) (*models.CompanyRole, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidRoleName
	}

	if _, err := s.companyRepo.FindByID(input.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	if _, err := s.roleRepo.FindByCompanyIDAndName(input.CompanyID, input.Name); err == nil {
		return nil, ErrRoleNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check role name: %w", err)
	}

	permissions, err := s.resolvePermissions(input.PermissionIDs)
	if err != nil {
		return nil, err
	}

	role := &models.CompanyRole{
		Name:        input.Name,
		CompanyID:   input.CompanyID,
		Permissions: permissions,
	}

	if err := s.roleRepo.Create(role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoleNameTaken
		}
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return role, nil
}

// UpdateRoleInput represents parameters to update a role.
type UpdateRoleInput struct {
	RoleID        uint64
	Name          string
	PermissionIDs []uint64
}

// UpdateRole renames a role and/or replaces its permission set.
func (s *RoleService) UpdateRole(input UpdateRoleInput) (*models.CompanyRole, error) {
	role, err := s.roleRepo.FindByID(input.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	if strings.TrimSpace(input.Name) != "" {
		role.Name = input.Name
	}

	var permissions []models.Permission
	if input.PermissionIDs != nil {
		permissions, err = s.resolvePermissions(input.PermissionIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Update(role, permissions); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoleNameTaken
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return s.roleRepo.FindByID(role.ID)
}

// DeleteRole removes a role. Deletion is refused while any membership
// references the role; the role and its memberships are left intact.
func (s *RoleService) DeleteRole(roleID uint64) error {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("failed to find role: %w", err)
	}

	members, err := s.roleRepo.CountMemberships(roleID)
	if err != nil {
		return fmt.Errorf("failed to count role members: %w", err)
	}
	if members > 0 {
		return fmt.Errorf("%w: %d member(s) assigned", ErrRoleInUse, members)
	}

	if err := s.roleRepo.Delete(role); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

// ListPermissions returns the process-wide permission catalog.
func (s *RoleService) ListPermissions() ([]models.Permission, error) {
	permissions, err := s.roleRepo.ListPermissions()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, nil
}

// CreatePermission adds a permission to the catalog.
func (s *RoleService) CreatePermission(name string, permType models.PermissionType, description string) (*models.Permission, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("permission name cannot be empty")
	}

	p := &models.Permission{
		Name:        name,
		Type:        permType,
		Description: description,
	}
	if err := s.roleRepo.CreatePermission(p); err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}
	return p, nil
}

func (s *RoleService) resolvePermissions(ids []uint64) ([]models.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	permissions, err := s.roleRepo.FindPermissionsByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}
	if len(permissions) != len(ids) {
		return nil, ErrPermissionNotFound
	}
	return permissions, nil
}
