package services

import (
	"errors"
	"fmt"

	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotCompanyMember  = errors.New("acting user is not a member of this company")
	ErrRoleCannotGrant   = errors.New("acting user's role may not grant company access")
	ErrRoleNotFound      = errors.New("role not found in this company")
	ErrTargetNotFound    = errors.New("target user not found")
	ErrTargetNotMember   = errors.New("target user is not a member of this company")
	ErrMembershipChanged = errors.New("membership was changed concurrently")
)

// EmployeeService implements the membership transfer protocol: it
// atomically moves a user into a company under a specific role, with
// ownership safeguards checked up front.
type EmployeeService struct {
	userRepo       repository.UserRepository
	companyRepo    repository.CompanyRepository
	roleRepo       repository.RoleRepository
	membershipRepo repository.MembershipRepository

	// prohibitedRoles lists role names barred from granting access,
	// from configuration.
	prohibitedRoles map[string]struct{}
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	roleRepo repository.RoleRepository,
	membershipRepo repository.MembershipRepository,
	prohibitedRoleNames []string,
) *EmployeeService {
	prohibited := make(map[string]struct{}, len(prohibitedRoleNames))
	for _, name := range prohibitedRoleNames {
		prohibited[name] = struct{}{}
	}
	return &EmployeeService{
		userRepo:        userRepo,
		companyRepo:     companyRepo,
		roleRepo:        roleRepo,
		membershipRepo:  membershipRepo,
		prohibitedRoles: prohibited,
	}
}

// ListEmployees returns the memberships of a company with users loaded.
func (s *EmployeeService) ListEmployees(companyID uint64) ([]models.Membership, error) {
	if _, err := s.companyRepo.FindByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	memberships, err := s.membershipRepo.ListByCompanyID(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return memberships, nil
}

// AddUserToCompany transfers the target user into the company under
// the given role. Preconditions, in order:
//  1. the acting user holds a membership in the target company,
//  2. the acting user's role is not barred from granting access,
//  3. the role belongs to the target company.
//
// The membership replacement itself is a transactional
// delete-then-insert keyed by the target user; a failure between the
// two writes rolls back, never leaving two memberships for one user.
func (s *EmployeeService) AddUserToCompany(actorID, targetID, companyID, roleID uint64) (*models.Membership, error) {
	actorMembership, err := s.membershipRepo.FindByUserIDAndCompanyID(actorID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCompanyMember
		}
		return nil, fmt.Errorf("failed to check acting membership: %w", err)
	}

	if _, prohibited := s.prohibitedRoles[actorMembership.Role.Name]; prohibited {
		return nil, ErrRoleCannotGrant
	}

	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	if role.CompanyID != companyID {
		return nil, ErrRoleNotFound
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, fmt.Errorf("failed to find target user: %w", err)
	}

	membership, err := s.membershipRepo.Transfer(targetID, companyID, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipConflict) {
			return nil, ErrMembershipChanged
		}
		return nil, fmt.Errorf("failed to transfer membership: %w", err)
	}

	return membership, nil
}

// RemoveUserFromCompany deletes the target user's membership. The
// acting user must belong to the company, and the target must
// currently be a member of it.
func (s *EmployeeService) RemoveUserFromCompany(actorID, targetID, companyID uint64) error {
	if _, err := s.membershipRepo.FindByUserIDAndCompanyID(actorID, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotCompanyMember
		}
		return fmt.Errorf("failed to check acting membership: %w", err)
	}

	if _, err := s.membershipRepo.FindByUserIDAndCompanyID(targetID, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetNotMember
		}
		return fmt.Errorf("failed to check target membership: %w", err)
	}

	if err := s.membershipRepo.DeleteByUserID(targetID); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	return nil
}
