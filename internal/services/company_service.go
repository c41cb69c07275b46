package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrCompanyTypeNotFound = errors.New("company type not found")
	ErrCompanyNameTaken    = errors.New("company already exists")
	ErrInvalidCompanyName  = errors.New("company name cannot be empty")
	ErrInvalidTypeName     = errors.New("company type name cannot be empty")
)

// CompanyService provides business logic for company operations.
type CompanyService struct {
	companyRepo repository.CompanyRepository
	roleRepo    repository.RoleRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo repository.CompanyRepository, roleRepo repository.RoleRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		roleRepo:    roleRepo,
	}
}

// CreateCompanyInput represents parameters to create a new company.
type CreateCompanyInput struct {
	Name               string
	RegistrationNumber string
	TaxID              string
	TypeID             uint64
	CreatorID          uint64
}

// CreateCompany creates a company with its default Owner and Employee
// roles and grants the creator the Owner role. The Owner role starts
// with the full permission catalog.
func (s *CompanyService) CreateCompany(input CreateCompanyInput) (*models.Company, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidCompanyName
	}

	if _, err := s.companyRepo.FindTypeByID(input.TypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyTypeNotFound
		}
		return nil, fmt.Errorf("failed to find company type: %w", err)
	}

	ownerPermissions, err := s.roleRepo.ListPermissions()
	if err != nil {
		return nil, fmt.Errorf("failed to load permission catalog: %w", err)
	}

	company := &models.Company{
		Name:               input.Name,
		RegistrationNumber: input.RegistrationNumber,
		TaxID:              input.TaxID,
		CompanyTypeID:      input.TypeID,
		Status:             models.CompanyStatusPending,
	}

	if err := s.companyRepo.CreateWithDefaultRoles(company, input.CreatorID, ownerPermissions); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, repository.ErrCreateCompany) {
			return nil, ErrCompanyNameTaken
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}

// ListCompanies returns all companies.
func (s *CompanyService) ListCompanies() ([]models.Company, error) {
	companies, err := s.companyRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// GetCompany returns a company by id.
func (s *CompanyService) GetCompany(id uint64) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// CreateCompanyType adds a taxonomy entry.
func (s *CompanyService) CreateCompanyType(name string) (*models.CompanyType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidTypeName
	}

	ct := &models.CompanyType{Name: name}
	if err := s.companyRepo.CreateType(ct); err != nil {
		return nil, fmt.Errorf("failed to create company type: %w", err)
	}
	return ct, nil
}

// ListCompanyTypes returns the taxonomy.
func (s *CompanyService) ListCompanyTypes() ([]models.CompanyType, error) {
	types, err := s.companyRepo.ListTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to list company types: %w", err)
	}
	return types, nil
}
