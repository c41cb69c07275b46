package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomasdma/donation-platform/internal/dto"
	apierrors "github.com/tomasdma/donation-platform/internal/errors"
	"github.com/tomasdma/donation-platform/internal/middleware"
	"github.com/tomasdma/donation-platform/internal/services"
)

// CompanyHandler serves company and company-type endpoints.
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// CreateCompany registers a company and makes the caller its Owner.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCompanyRequest struct {
		Name               string `json:"name" binding:"required"`
		RegistrationNumber string `json:"registration_number" binding:"required"`
		TaxID              string `json:"tax_id" binding:"required"`
		TypeID             uint64 `json:"type_id" binding:"required"`
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.CreateCompany(services.CreateCompanyInput{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		TaxID:              req.TaxID,
		TypeID:             req.TypeID,
		CreatorID:          identity.User.ID,
	})
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}

// ListCompanies returns all companies.
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies()
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	dtos := make([]dto.CompanyDTO, len(companies))
	for i, company := range companies {
		dtos[i] = dto.ToCompanyDTO(company)
	}

	c.JSON(http.StatusOK, gin.H{"companies": dtos})
}

// GetCompany returns a single company.
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.companyService.GetCompany(companyID)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// CreateCompanyType adds a taxonomy entry.
func (h *CompanyHandler) CreateCompanyType(c *gin.Context) {
	type CreateTypeRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ct, err := h.companyService.CreateCompanyType(req.Name)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyTypeDTO(*ct))
}

// ListCompanyTypes returns the taxonomy.
func (h *CompanyHandler) ListCompanyTypes(c *gin.Context) {
	types, err := h.companyService.ListCompanyTypes()
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	dtos := make([]dto.CompanyTypeDTO, len(types))
	for i, ct := range types {
		dtos[i] = dto.ToCompanyTypeDTO(ct)
	}

	c.JSON(http.StatusOK, gin.H{"types": dtos})
}

func respondCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCompanyName),
		errors.Is(err, services.ErrInvalidTypeName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCompanyNameTaken):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrCompanyTypeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
