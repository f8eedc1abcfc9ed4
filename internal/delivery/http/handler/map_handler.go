package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/partner-crm/internal/domain"
	apperrors "github.com/partner-crm/internal/pkg/errors"
	"github.com/partner-crm/internal/pkg/utils"
	"github.com/partner-crm/internal/pkg/validator"
	"github.com/partner-crm/internal/usecase"
	"github.com/partner-crm/internal/usecase/dto"
	"go.uber.org/zap"
)

// MapHandler serves the aggregated marker endpoint for the map layer.
type MapHandler struct {
	mapUC  *usecase.MapUseCase
	logger *zap.Logger
}

func NewMapHandler(mapUC *usecase.MapUseCase, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapUC:  mapUC,
		logger: logger,
	}
}

// GetMarkers godoc
// @Summary Get map markers
// @Description Aggregates organizations and people into one marker per distinct coordinate and frames a viewport for the result
// @Tags Map
// @Produce json
// @Param display_mode query string false "organizations, people or both" default(both)
// @Param state query string false "State code or full name"
// @Param city query string false "City name"
// @Param selected_organization_id query string false "Organization id to flag as selected (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.MapMarkersResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/map/markers [get]
func (h *MapHandler) GetMarkers(c *fiber.Ctx) error {
	req := dto.MapMarkersRequest{
		DisplayMode: domain.DisplayMode(c.Query("display_mode", string(domain.DisplayBoth))),
		State:       c.Query("state"),
		City:        c.Query("city"),
	}

	if raw := c.Query("selected_organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest.WithDetails("selected_organization_id must be a UUID"))
		}
		req.SelectedOrganizationID = &orgID
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidDisplayMode)
	}

	resp, err := h.mapUC.GetMarkers(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}
