package dto

import (
	"github.com/google/uuid"
	"github.com/partner-crm/internal/domain"
)

// MapMarkersRequest selects which entities feed the map and which
// organization is currently selected in the UI.
type MapMarkersRequest struct {
	DisplayMode            domain.DisplayMode `json:"display_mode" validate:"required,oneof=organizations people both"`
	State                  string             `json:"state" validate:"omitempty,max=50"`
	City                   string             `json:"city" validate:"omitempty,max=100"`
	SelectedOrganizationID *uuid.UUID         `json:"selected_organization_id,omitempty"`
}

// MapMarkersResponse is the full render input for the map layer.
type MapMarkersResponse struct {
	Markers  []domain.MapMarker `json:"markers"`
	Viewport domain.Viewport    `json:"viewport"`
	Total    int                `json:"total"`
}
