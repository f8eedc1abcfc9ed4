package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/partner-crm/internal/pkg/utils"
	"github.com/partner-crm/internal/pkg/validator"
	"github.com/partner-crm/internal/usecase"
	"github.com/partner-crm/internal/usecase/dto"
	"go.uber.org/zap"
)

// GeocodeHandler exposes the resolver for debugging and the county
// backfill for operators.
type GeocodeHandler struct {
	resolver     *usecase.CoordinateResolver
	assignmentUC *usecase.AssignmentUseCase
	logger       *zap.Logger
}

func NewGeocodeHandler(
	resolver *usecase.CoordinateResolver,
	assignmentUC *usecase.AssignmentUseCase,
	logger *zap.Logger,
) *GeocodeHandler {
	return &GeocodeHandler{
		resolver:     resolver,
		assignmentUC: assignmentUC,
		logger:       logger,
	}
}

// ResolveCity godoc
// @Summary Resolve a city to coordinates
// @Description Runs the coordinate resolver for a city/state pair. Cached results are served without a provider call.
// @Tags Debug
// @Produce json
// @Param city query string true "City name"
// @Param state query string true "State code or full name"
// @Success 200 {object} utils.SuccessResponse{data=domain.Coordinate}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/debug/geocode/city [get]
func (h *GeocodeHandler) ResolveCity(c *fiber.Ctx) error {
	req := dto.ResolveCityRequest{
		City:  c.Query("city"),
		State: c.Query("state"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	coord := h.resolver.Resolve(c.Context(), req.City, req.State)

	return utils.SendSuccess(c, coord, nil)
}

// ResolveAddress godoc
// @Summary Resolve a full address
// @Description Geocodes a free-text address and returns the coordinate plus the provider's county/state/city breakdown
// @Tags Debug
// @Produce json
// @Param address query string true "Free-text address"
// @Success 200 {object} utils.SuccessResponse{data=domain.GeocodedAddress}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/debug/geocode/address [get]
func (h *GeocodeHandler) ResolveAddress(c *fiber.Ctx) error {
	req := dto.ResolveAddressRequest{
		Address: c.Query("address"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	geocoded := h.resolver.ResolveAddress(c.Context(), req.Address)

	return utils.SendSuccess(c, geocoded, nil)
}

// Backfill godoc
// @Summary Backfill county assignments
// @Description Runs the geocoding pipeline for every organization and person that has a city but no county. Provider calls are rate limited, so large runs take a while.
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.BackfillSummary}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/backfill-counties [post]
func (h *GeocodeHandler) Backfill(c *fiber.Ctx) error {
	summary, err := h.assignmentUC.Backfill(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, summary, nil)
}
