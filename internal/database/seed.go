package database

import (
	"fmt"

	"github.com/tomasdma/donation-platform/internal/constants"
	"github.com/tomasdma/donation-platform/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedPermissions inserts the built-in permission catalog. Existing
// rows are left untouched, so re-running migrations is safe.
func SeedPermissions(db *gorm.DB) error {
	permissions := []models.Permission{
		{Name: constants.PermAddEmployee, Type: models.PermissionTypeEmployee, Description: "Grant a user membership in the company"},
		{Name: constants.PermRemoveEmployee, Type: models.PermissionTypeEmployee, Description: "Revoke a user's membership in the company"},
		{Name: constants.PermListRoles, Type: models.PermissionTypeRole, Description: "List the company's roles and their permissions"},
		{Name: constants.PermCreateRole, Type: models.PermissionTypeRole, Description: "Create a new role for the company"},
		{Name: constants.PermModifyRole, Type: models.PermissionTypeRole, Description: "Change a role's name or permission set"},
		{Name: constants.PermDeleteRole, Type: models.PermissionTypeRole, Description: "Delete a role that has no members"},
		{Name: constants.PermCreateCampaign, Type: models.PermissionTypeCampaign, Description: "Create a donation campaign for the company"},
		{Name: constants.PermModifyCampaign, Type: models.PermissionTypeCampaign, Description: "Update one of the company's campaigns"},
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&permissions).Error
	if err != nil {
		return fmt.Errorf("failed to insert permission catalog: %w", err)
	}

	return nil
}
