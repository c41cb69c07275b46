package models

import (
	"time"
)

type CompanyStatus string

const (
	CompanyStatusPending  CompanyStatus = "PENDING"
	CompanyStatusApproved CompanyStatus = "APPROVED"
)

type Company struct {
	ID                 uint64        `gorm:"primarykey" json:"id"`
	Name               string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	RegistrationNumber string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"registration_number"`
	TaxID              string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"tax_id"`
	CompanyTypeID      uint64        `gorm:"not null" json:"company_type_id"`
	Status             CompanyStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	// Relations
	Type        CompanyType   `gorm:"foreignKey:CompanyTypeID" json:"type,omitempty"`
	Roles       []CompanyRole `gorm:"foreignKey:CompanyID" json:"roles,omitempty"`
	Memberships []Membership  `gorm:"foreignKey:CompanyID" json:"-"`
	Campaigns   []Campaign    `gorm:"foreignKey:CompanyID" json:"-"`
}

// CompanyType is a taxonomy tag, not security-relevant.
type CompanyType struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}
