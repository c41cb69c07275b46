package dto

import (
	"time"

	"github.com/tomasdma/donation-platform/internal/models"
)

// CompanyTypeDTO represents a company type in API responses
type CompanyTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID                 uint64               `json:"id"`
	Name               string               `json:"name"`
	RegistrationNumber string               `json:"registration_number"`
	TaxID              string               `json:"tax_id"`
	Status             models.CompanyStatus `json:"status"`
	Type               *CompanyTypeDTO      `json:"type,omitempty"`
}

// EmployeeDTO represents a company member in API responses
type EmployeeDTO struct {
	User     UserDTO   `json:"user"`
	RoleID   uint64    `json:"role_id"`
	RoleName string    `json:"role_name"`
	JoinedAt time.Time `json:"joined_at"`
}

// MembershipDTO represents a membership assignment in API responses
type MembershipDTO struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user_id"`
	CompanyID uint64 `json:"company_id"`
	RoleID    uint64 `json:"role_id"`
}

// ToCompanyTypeDTO converts a company type
func ToCompanyTypeDTO(ct models.CompanyType) CompanyTypeDTO {
	return CompanyTypeDTO{ID: ct.ID, Name: ct.Name}
}

// ToCompanyDTO converts a company with its type
func ToCompanyDTO(company models.Company) CompanyDTO {
	dto := CompanyDTO{
		ID:                 company.ID,
		Name:               company.Name,
		RegistrationNumber: company.RegistrationNumber,
		TaxID:              company.TaxID,
		Status:             company.Status,
	}
	if company.Type.ID != 0 {
		t := ToCompanyTypeDTO(company.Type)
		dto.Type = &t
	}
	return dto
}

// ToEmployeeDTO converts a membership to the employee view
func ToEmployeeDTO(membership models.Membership) EmployeeDTO {
	return EmployeeDTO{
		User:     ToUserDTO(membership.User),
		RoleID:   membership.RoleID,
		RoleName: membership.Role.Name,
		JoinedAt: membership.CreatedAt,
	}
}

// ToMembershipDTO converts a membership assignment
func ToMembershipDTO(membership models.Membership) MembershipDTO {
	return MembershipDTO{
		ID:        membership.ID,
		UserID:    membership.UserID,
		CompanyID: membership.CompanyID,
		RoleID:    membership.RoleID,
	}
}
