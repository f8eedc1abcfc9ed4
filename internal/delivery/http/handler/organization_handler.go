package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	apperrors "github.com/partner-crm/internal/pkg/errors"
	"github.com/partner-crm/internal/pkg/utils"
	"github.com/partner-crm/internal/pkg/validator"
	"github.com/partner-crm/internal/usecase"
	"github.com/partner-crm/internal/usecase/dto"
	"go.uber.org/zap"
)

// OrganizationHandler serves the organization CRUD endpoints.
type OrganizationHandler struct {
	orgUC  *usecase.OrganizationUseCase
	logger *zap.Logger
}

func NewOrganizationHandler(orgUC *usecase.OrganizationUseCase, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgUC:  orgUC,
		logger: logger,
	}
}

// GetByID godoc
// @Summary Get an organization
// @Description Returns a single organization by id
// @Tags Organizations
// @Produce json
// @Param id path string true "Organization id (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=domain.Organization}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("id must be a UUID"))
	}

	org, err := h.orgUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, org, nil)
}

// List godoc
// @Summary List organizations
// @Description Returns organizations, optionally filtered by state and city
// @Tags Organizations
// @Produce json
// @Param state query string false "State code or full name"
// @Param city query string false "City name"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Organization}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	req := dto.ListOrganizationsRequest{
		State:  c.Query("state"),
		City:   c.Query("city"),
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	orgs, err := h.orgUC.List(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, orgs, &utils.Meta{
		Total:  len(orgs),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

// Create godoc
// @Summary Create an organization
// @Description Creates an organization and resolves its county, synchronously when the city names one directly and in the background otherwise
// @Tags Organizations
// @Accept json
// @Produce json
// @Param request body dto.CreateOrganizationRequest true "Organization fields"
// @Success 201 {object} utils.SuccessResponse{data=domain.Organization}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	org, err := h.orgUC.Create(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, org)
}

// Update godoc
// @Summary Update an organization
// @Description Overwrites the organization's fields and re-runs county resolution when county_id is left empty
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path string true "Organization id (UUID)"
// @Param request body dto.UpdateOrganizationRequest true "Organization fields"
// @Success 200 {object} utils.SuccessResponse{data=domain.Organization}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/organizations/{id} [put]
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("id must be a UUID"))
	}

	var req dto.UpdateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	org, err := h.orgUC.Update(c.Context(), id, &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, org, nil)
}
