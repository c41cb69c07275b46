package repository

import (
	"errors"
	"fmt"

	"github.com/tomasdma/donation-platform/internal/models"
	"gorm.io/gorm"
)

// ErrMembershipConflict is returned when a concurrent transfer for the
// same user wins the race on the unique-by-user index.
var ErrMembershipConflict = errors.New("membership repository: concurrent membership change")

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

// FindByUserID finds a user's membership with role, permissions and company preloaded
func (r *GormMembershipRepository) FindByUserID(userID uint64) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.Preload("Role.Permissions").Preload("Company").
		Where("user_id = ?", userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// FindByUserIDAndCompanyID finds a membership scoped to a company
func (r *GormMembershipRepository) FindByUserIDAndCompanyID(userID, companyID uint64) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.Preload("Role").
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListByCompanyID lists a company's memberships with users preloaded
func (r *GormMembershipRepository) ListByCompanyID(companyID uint64) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Preload("User").Preload("Role").
		Where("company_id = ?", companyID).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// Transfer replaces the user's membership with the new assignment. The
// delete and insert run in one transaction: the delete is applied
// before the insert executes, and the whole sequence rolls back if the
// insert fails, so no reader ever observes two memberships for one
// user. Concurrent transfers for the same user serialize on the unique
// index over user_id; the loser gets ErrMembershipConflict.
func (r *GormMembershipRepository) Transfer(userID, companyID, roleID uint64) (*models.Membership, error) {
	membership := &models.Membership{
		UserID:    userID,
		CompanyID: companyID,
		RoleID:    roleID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Membership{}).Error; err != nil {
			return fmt.Errorf("failed to delete existing membership: %w", err)
		}

		if err := tx.Create(membership).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrMembershipConflict
			}
			return fmt.Errorf("failed to create membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return membership, nil
}

// DeleteByUserID removes the user's membership if any
func (r *GormMembershipRepository) DeleteByUserID(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Membership{}).Error
}
