package models

import (
	"time"
)

// CompanyRole is a named, company-scoped bundle of permissions. The
// name is unique per company. A role with at least one member cannot
// be deleted; the role service enforces this before any delete.
type CompanyRole struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_company_role_name" json:"name"`
	CompanyID uint64    `gorm:"not null;uniqueIndex:idx_company_role_name" json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Company     Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Permissions []Permission `gorm:"many2many:company_role_permissions" json:"permissions,omitempty"`
	Memberships []Membership `gorm:"foreignKey:RoleID" json:"-"`
}
