package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	apperrors "github.com/partner-crm/internal/pkg/errors"
	"github.com/partner-crm/internal/pkg/utils"
	"github.com/partner-crm/internal/usecase"
	"go.uber.org/zap"
)

// CountyHandler serves read access to the county reference table.
type CountyHandler struct {
	countyUC *usecase.CountyUseCase
	logger   *zap.Logger
}

func NewCountyHandler(countyUC *usecase.CountyUseCase, logger *zap.Logger) *CountyHandler {
	return &CountyHandler{
		countyUC: countyUC,
		logger:   logger,
	}
}

// GetByID godoc
// @Summary Get a county
// @Description Returns a county with its chapter, region and division hierarchy
// @Tags Counties
// @Produce json
// @Param id path int true "County id"
// @Success 200 {object} utils.SuccessResponse{data=domain.County}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/counties/{id} [get]
func (h *CountyHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("id must be an integer"))
	}

	county, err := h.countyUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, county, nil)
}

// ListByState godoc
// @Summary List counties in a state
// @Tags Counties
// @Produce json
// @Param state query string true "State code or full name"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.County}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/counties [get]
func (h *CountyHandler) ListByState(c *fiber.Ctx) error {
	counties, err := h.countyUC.ListByState(c.Context(), c.Query("state"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, counties, &utils.Meta{Total: len(counties)})
}
