package models

type PermissionType string

const (
	PermissionTypeEmployee PermissionType = "EMPLOYEE"
	PermissionTypeRole     PermissionType = "ROLE"
	PermissionTypeCampaign PermissionType = "CAMPAIGN"
)

// Permission is a process-wide named capability. Roles opt into a
// subset; permissions themselves are not tenant-scoped.
type Permission struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Type        PermissionType `gorm:"type:varchar(20);not null" json:"type"`
	Description string         `gorm:"type:varchar(500)" json:"description"`
}
