package dto

import (
	"github.com/tomasdma/donation-platform/internal/models"
)

// PermissionDTO represents a permission in API responses
type PermissionDTO struct {
	ID          uint64                `json:"id"`
	Name        string                `json:"name"`
	Type        models.PermissionType `json:"type"`
	Description string                `json:"description,omitempty"`
}

// RoleDTO represents a company role with its permissions
type RoleDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	CompanyID   uint64          `json:"company_id"`
	Permissions []PermissionDTO `json:"permissions"`
}

// ToPermissionDTO converts a permission
func ToPermissionDTO(p models.Permission) PermissionDTO {
	return PermissionDTO{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
	}
}

// ToRoleDTO converts a role with its permissions
func ToRoleDTO(role models.CompanyRole) RoleDTO {
	permissions := make([]PermissionDTO, len(role.Permissions))
	for i, p := range role.Permissions {
		permissions[i] = ToPermissionDTO(p)
	}
	return RoleDTO{
		ID:          role.ID,
		Name:        role.Name,
		CompanyID:   role.CompanyID,
		Permissions: permissions,
	}
}
