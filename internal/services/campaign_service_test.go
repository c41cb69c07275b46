package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type campaignTestEnv struct {
	db      *gorm.DB
	service *CampaignService
}

func setupCampaignTestEnv(t *testing.T) campaignTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.CompanyType{},
		&models.Company{},
		&models.Campaign{},
	)
	require.NoError(t, err)

	service := NewCampaignService(repository.NewCampaignRepository(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return campaignTestEnv{db: db, service: service}
}

func (env campaignTestEnv) createCompany(t *testing.T, name string) *models.Company {
	t.Helper()

	ct := &models.CompanyType{Name: "Charity " + name}
	require.NoError(t, env.db.Create(ct).Error)

	company := &models.Company{
		Name:               name,
		RegistrationNumber: "reg-" + name,
		TaxID:              "tax-" + name,
		CompanyTypeID:      ct.ID,
		Status:             models.CompanyStatusApproved,
	}
	require.NoError(t, env.db.Create(company).Error)
	return company
}

func TestCampaignService_CreateCampaign(t *testing.T) {
	env := setupCampaignTestEnv(t)
	company := env.createCompany(t, "acme")

	campaign, err := env.service.CreateCampaign(CreateCampaignInput{
		Title:      "Winter appeal",
		CompanyID:  company.ID,
		GoalAmount: 50_000,
	})
	require.NoError(t, err)
	require.Equal(t, models.CampaignStatusActive, campaign.Status)
	require.EqualValues(t, 0, campaign.RaisedAmount)
}

func TestCampaignService_CreateCampaignValidation(t *testing.T) {
	env := setupCampaignTestEnv(t)
	company := env.createCompany(t, "acme")

	_, err := env.service.CreateCampaign(CreateCampaignInput{
		Title:      "  ",
		CompanyID:  company.ID,
		GoalAmount: 50_000,
	})
	require.ErrorIs(t, err, ErrInvalidCampaignTitle)

	_, err = env.service.CreateCampaign(CreateCampaignInput{
		Title:     "Winter appeal",
		CompanyID: company.ID,
	})
	require.ErrorIs(t, err, ErrInvalidGoalAmount)
}

// A company may only update its own campaigns.
func TestCampaignService_UpdateCampaignOwnership(t *testing.T) {
	env := setupCampaignTestEnv(t)
	owner := env.createCompany(t, "acme")
	other := env.createCompany(t, "globex")

	campaign, err := env.service.CreateCampaign(CreateCampaignInput{
		Title:      "Winter appeal",
		CompanyID:  owner.ID,
		GoalAmount: 50_000,
	})
	require.NoError(t, err)

	_, err = env.service.UpdateCampaign(UpdateCampaignInput{
		CampaignID: campaign.ID,
		CompanyID:  other.ID,
		Title:      "Hijacked",
	})
	require.ErrorIs(t, err, ErrCampaignNotOwned)

	updated, err := env.service.UpdateCampaign(UpdateCampaignInput{
		CampaignID: campaign.ID,
		CompanyID:  owner.ID,
		Status:     models.CampaignStatusClosed,
	})
	require.NoError(t, err)
	require.Equal(t, models.CampaignStatusClosed, updated.Status)
}

func TestCampaignService_ListCampaignsPagination(t *testing.T) {
	env := setupCampaignTestEnv(t)
	company := env.createCompany(t, "acme")

	for i := 0; i < 5; i++ {
		_, err := env.service.CreateCampaign(CreateCampaignInput{
			Title:      "Appeal",
			CompanyID:  company.ID,
			GoalAmount: 1000,
		})
		require.NoError(t, err)
	}

	campaigns, total, err := env.service.ListCampaigns(1, 3)
	require.NoError(t, err)
	require.Len(t, campaigns, 3)
	require.EqualValues(t, 5, total)

	campaigns, _, err = env.service.ListCampaigns(2, 3)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
}
