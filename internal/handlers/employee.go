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

// EmployeeHandler serves company membership endpoints.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// ListEmployees returns the members of a company.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	memberships, err := h.employeeService.ListEmployees(companyID)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	dtos := make([]dto.EmployeeDTO, len(memberships))
	for i, membership := range memberships {
		dtos[i] = dto.ToEmployeeDTO(membership)
	}

	c.JSON(http.StatusOK, gin.H{"employees": dtos})
}

// AddUserToCompany grants a user membership in a company under a role.
func (h *EmployeeHandler) AddUserToCompany(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type AddUserRequest struct {
		EmployeeID uint64 `json:"employee_id" binding:"required"`
		CompanyID  uint64 `json:"company_id" binding:"required"`
		RoleID     uint64 `json:"role_id" binding:"required"`
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	membership, err := h.employeeService.AddUserToCompany(identity.User.ID, req.EmployeeID, req.CompanyID, req.RoleID)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMembershipDTO(*membership))
}

// RemoveUserFromCompany revokes a user's membership.
func (h *EmployeeHandler) RemoveUserFromCompany(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type RemoveUserRequest struct {
		EmployeeID uint64 `json:"employee_id" binding:"required"`
		CompanyID  uint64 `json:"company_id" binding:"required"`
	}

	var req RemoveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.employeeService.RemoveUserFromCompany(identity.User.ID, req.EmployeeID, req.CompanyID); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Membership removed"})
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotCompanyMember),
		errors.Is(err, services.ErrRoleCannotGrant):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrRoleNotFound),
		errors.Is(err, services.ErrTargetNotFound),
		errors.Is(err, services.ErrTargetNotMember),
		errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrMembershipChanged):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
