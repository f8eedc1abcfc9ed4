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

// PersonHandler serves the contact-person CRUD endpoints.
type PersonHandler struct {
	personUC *usecase.PersonUseCase
	logger   *zap.Logger
}

func NewPersonHandler(personUC *usecase.PersonUseCase, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{
		personUC: personUC,
		logger:   logger,
	}
}

// GetByID godoc
// @Summary Get a person
// @Tags People
// @Produce json
// @Param id path string true "Person id (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=domain.Person}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/people/{id} [get]
func (h *PersonHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("id must be a UUID"))
	}

	person, err := h.personUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, person, nil)
}

// List godoc
// @Summary List people
// @Description Returns people, optionally filtered by organization and state
// @Tags People
// @Produce json
// @Param organization_id query string false "Organization id (UUID)"
// @Param state query string false "State code or full name"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Person}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/people [get]
func (h *PersonHandler) List(c *fiber.Ctx) error {
	req := dto.ListPeopleRequest{
		State:  c.Query("state"),
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}

	if raw := c.Query("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("organization_id must be a UUID"))
		}
		req.OrganizationID = &orgID
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	people, err := h.personUC.List(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, people, &utils.Meta{
		Total:  len(people),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

// Create godoc
// @Summary Create a person
// @Description Creates a contact person and resolves their county the same way organizations are resolved
// @Tags People
// @Accept json
// @Produce json
// @Param request body dto.CreatePersonRequest true "Person fields"
// @Success 201 {object} utils.SuccessResponse{data=domain.Person}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/people [post]
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	person, err := h.personUC.Create(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, person)
}

// Update godoc
// @Summary Update a person
// @Tags People
// @Accept json
// @Produce json
// @Param id path string true "Person id (UUID)"
// @Param request body dto.UpdatePersonRequest true "Person fields"
// @Success 200 {object} utils.SuccessResponse{data=domain.Person}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/people/{id} [put]
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("id must be a UUID"))
	}

	var req dto.UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	person, err := h.personUC.Update(c.Context(), id, &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, person, nil)
}
