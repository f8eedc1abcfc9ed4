package dto

import "github.com/google/uuid"

// CreateOrganizationRequest carries owner-entered fields from the form.
// county_id is optional; when absent the county-assignment workflow fills
// it in, synchronously when it can and in the background otherwise.
type CreateOrganizationRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=200"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State    *string `json:"state,omitempty" validate:"omitempty,max=50"`
	Zip      *string `json:"zip,omitempty" validate:"omitempty,max=10"`
	CountyID *int64  `json:"county_id,omitempty"`
}

// UpdateOrganizationRequest mirrors the create shape; a set county_id is
// preserved, never overwritten by the background path.
type UpdateOrganizationRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=200"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State    *string `json:"state,omitempty" validate:"omitempty,max=50"`
	Zip      *string `json:"zip,omitempty" validate:"omitempty,max=10"`
	CountyID *int64  `json:"county_id,omitempty"`
}

// ListOrganizationsRequest holds the list filters.
type ListOrganizationsRequest struct {
	State  string `json:"state" validate:"omitempty,max=50"`
	City   string `json:"city" validate:"omitempty,max=100"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=500"`
	Offset int    `json:"offset" validate:"omitempty,min=0"`
}

// OrganizationIDParam validates path ids.
type OrganizationIDParam struct {
	ID uuid.UUID `json:"id" validate:"required"`
}
