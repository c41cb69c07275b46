package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomasdma/donation-platform/internal/constants"
	"github.com/tomasdma/donation-platform/internal/database"
	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type employeeTestEnv struct {
	db      *gorm.DB
	service *EmployeeService
}

func setupEmployeeTestEnv(t *testing.T) employeeTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.CompanyType{},
		&models.Company{},
		&models.Permission{},
		&models.CompanyRole{},
		&models.Membership{},
	)
	require.NoError(t, err)
	require.NoError(t, database.SeedPermissions(db))

	database.SetDB(db)

	service := NewEmployeeService(
		repository.NewUserRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewRoleRepository(db),
		repository.NewMembershipRepository(db),
		[]string{"Donor"},
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return employeeTestEnv{db: db, service: service}
}

func (env employeeTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Enabled:      true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// createCompany bootstraps a company the same way registration does:
// Owner and Employee roles plus the creator's Owner membership.
func (env employeeTestEnv) createCompany(t *testing.T, name string, ownerID uint64) *models.Company {
	t.Helper()

	ct := &models.CompanyType{Name: "Charity " + name}
	require.NoError(t, env.db.Create(ct).Error)

	var permissions []models.Permission
	require.NoError(t, env.db.Find(&permissions).Error)

	company := &models.Company{
		Name:               name,
		RegistrationNumber: "reg-" + name,
		TaxID:              "tax-" + name,
		CompanyTypeID:      ct.ID,
		Status:             models.CompanyStatusApproved,
	}
	repo := repository.NewCompanyRepository(env.db)
	require.NoError(t, repo.CreateWithDefaultRoles(company, ownerID, permissions))
	return company
}

func (env employeeTestEnv) roleByName(t *testing.T, companyID uint64, name string) *models.CompanyRole {
	t.Helper()
	var role models.CompanyRole
	require.NoError(t, env.db.Where("company_id = ? AND name = ?", companyID, name).First(&role).Error)
	return &role
}

func (env employeeTestEnv) membershipCount(t *testing.T, userID uint64) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&models.Membership{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestEmployeeService_AddUserToCompany(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	owner := env.createUser(t, "owner")
	target := env.createUser(t, "target")
	company := env.createCompany(t, "acme", owner.ID)
	employeeRole := env.roleByName(t, company.ID, constants.RoleEmployee)

	membership, err := env.service.AddUserToCompany(owner.ID, target.ID, company.ID, employeeRole.ID)
	require.NoError(t, err)
	require.Equal(t, target.ID, membership.UserID)
	require.Equal(t, company.ID, membership.CompanyID)
	require.Equal(t, employeeRole.ID, membership.RoleID)
	require.EqualValues(t, 1, env.membershipCount(t, target.ID))
}

// Re-running an identical transfer converges on the same state with
// exactly one membership row.
func TestEmployeeService_AddUserToCompanyIsIdempotent(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	owner := env.createUser(t, "owner")
	target := env.createUser(t, "target")
	company := env.createCompany(t, "acme", owner.ID)
	employeeRole := env.roleByName(t, company.ID, constants.RoleEmployee)

	for i := 0; i < 2; i++ {
		_, err := env.service.AddUserToCompany(owner.ID, target.ID, company.ID, employeeRole.ID)
		require.NoError(t, err)
	}

	require.EqualValues(t, 1, env.membershipCount(t, target.ID))
}

// A transfer replaces any previous membership: a user belongs to at
// most one company at a time.
func TestEmployeeService_AddUserToCompanyReplacesPreviousMembership(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	ownerA := env.createUser(t, "owner-a")
	ownerB := env.createUser(t, "owner-b")
	target := env.createUser(t, "target")
	companyA := env.createCompany(t, "acme", ownerA.ID)
	companyB := env.createCompany(t, "globex", ownerB.ID)

	_, err := env.service.AddUserToCompany(ownerA.ID, target.ID, companyA.ID, env.roleByName(t, companyA.ID, constants.RoleEmployee).ID)
	require.NoError(t, err)

	membership, err := env.service.AddUserToCompany(ownerB.ID, target.ID, companyB.ID, env.roleByName(t, companyB.ID, constants.RoleEmployee).ID)
	require.NoError(t, err)
	require.Equal(t, companyB.ID, membership.CompanyID)

	require.EqualValues(t, 1, env.membershipCount(t, target.ID))

	var remaining models.Membership
	require.NoError(t, env.db.Where("user_id = ?", target.ID).First(&remaining).Error)
	require.Equal(t, companyB.ID, remaining.CompanyID)
}

func TestEmployeeService_AddUserToCompanyActorNotMember(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	owner := env.createUser(t, "owner")
	outsider := env.createUser(t, "outsider")
	target := env.createUser(t, "target")
	company := env.createCompany(t, "acme", owner.ID)
	employeeRole := env.roleByName(t, company.ID, constants.RoleEmployee)

	_, err := env.service.AddUserToCompany(outsider.ID, target.ID, company.ID, employeeRole.ID)
	require.ErrorIs(t, err, ErrNotCompanyMember)
	require.EqualValues(t, 0, env.membershipCount(t, target.ID))
}

func TestEmployeeService_AddUserToCompanyProhibitedActorRole(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	owner := env.createUser(t, "owner")
	donor := env.createUser(t, "donor")
	target := env.createUser(t, "target")
	company := env.createCompany(t, "acme", owner.ID)

	donorRole := &models.CompanyRole{Name: "Donor", CompanyID: company.ID}
	require.NoError(t, env.db.Create(donorRole).Error)
	require.NoError(t, env.db.Create(&models.Membership{
		UserID:    donor.ID,
		CompanyID: company.ID,
		RoleID:    donorRole.ID,
	}).Error)

	_, err := env.service.AddUserToCompany(donor.ID, target.ID, company.ID, donorRole.ID)
	require.ErrorIs(t, err, ErrRoleCannotGrant)
}

// Granting a role that belongs to a different company is refused even
// when the role id exists.
func TestEmployeeService_AddUserToCompanyForeignRole(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	ownerA := env.createUser(t, "owner-a")
	ownerB := env.createUser(t, "owner-b")
	target := env.createUser(t, "target")
	companyA := env.createCompany(t, "acme", ownerA.ID)
	companyB := env.createCompany(t, "globex", ownerB.ID)

	foreignRole := env.roleByName(t, companyB.ID, constants.RoleEmployee)

	_, err := env.service.AddUserToCompany(ownerA.ID, target.ID, companyA.ID, foreignRole.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)
	require.EqualValues(t, 0, env.membershipCount(t, target.ID))
}

func TestEmployeeService_AddUserToCompanyUnknownTarget(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	owner := env.createUser(t, "owner")
	company := env.createCompany(t, "acme", owner.ID)
	employeeRole := env.roleByName(t, company.ID, constants.RoleEmployee)

	_, err := env.service.AddUserToCompany(owner.ID, 99999, company.ID, employeeRole.ID)
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestEmployeeService_RemoveUserFromCompany(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	owner := env.createUser(t, "owner")
	target := env.createUser(t, "target")
	company := env.createCompany(t, "acme", owner.ID)
	employeeRole := env.roleByName(t, company.ID, constants.RoleEmployee)

	_, err := env.service.AddUserToCompany(owner.ID, target.ID, company.ID, employeeRole.ID)
	require.NoError(t, err)

	require.NoError(t, env.service.RemoveUserFromCompany(owner.ID, target.ID, company.ID))
	require.EqualValues(t, 0, env.membershipCount(t, target.ID))
}

func TestEmployeeService_RemoveUserFromCompanyTargetNotMember(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	owner := env.createUser(t, "owner")
	stranger := env.createUser(t, "stranger")
	company := env.createCompany(t, "acme", owner.ID)

	err := env.service.RemoveUserFromCompany(owner.ID, stranger.ID, company.ID)
	require.ErrorIs(t, err, ErrTargetNotMember)
}

func TestEmployeeService_ListEmployees(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	owner := env.createUser(t, "owner")
	target := env.createUser(t, "target")
	company := env.createCompany(t, "acme", owner.ID)
	employeeRole := env.roleByName(t, company.ID, constants.RoleEmployee)

	_, err := env.service.AddUserToCompany(owner.ID, target.ID, company.ID, employeeRole.ID)
	require.NoError(t, err)

	memberships, err := env.service.ListEmployees(company.ID)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
}

func TestEmployeeService_ListEmployeesUnknownCompany(t *testing.T) {
	env := setupEmployeeTestEnv(t)

	_, err := env.service.ListEmployees(99999)
	require.ErrorIs(t, err, ErrCompanyNotFound)
}
