package dto

import "github.com/google/uuid"

// CreatePersonRequest carries owner-entered contact fields.
type CreatePersonRequest struct {
	FirstName      string     `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string     `json:"last_name" validate:"required,min=1,max=100"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,max=30"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	Address        *string    `json:"address,omitempty" validate:"omitempty,max=200"`
	City           *string    `json:"city,omitempty" validate:"omitempty,max=100"`
	State          *string    `json:"state,omitempty" validate:"omitempty,max=50"`
	Zip            *string    `json:"zip,omitempty" validate:"omitempty,max=10"`
	CountyID       *int64     `json:"county_id,omitempty"`
}

// UpdatePersonRequest mirrors the create shape.
type UpdatePersonRequest struct {
	FirstName      string     `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string     `json:"last_name" validate:"required,min=1,max=100"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,max=30"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	Address        *string    `json:"address,omitempty" validate:"omitempty,max=200"`
	City           *string    `json:"city,omitempty" validate:"omitempty,max=100"`
	State          *string    `json:"state,omitempty" validate:"omitempty,max=50"`
	Zip            *string    `json:"zip,omitempty" validate:"omitempty,max=10"`
	CountyID       *int64     `json:"county_id,omitempty"`
}

// ListPeopleRequest holds the list filters.
type ListPeopleRequest struct {
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	State          string     `json:"state" validate:"omitempty,max=50"`
	Limit          int        `json:"limit" validate:"omitempty,min=1,max=500"`
	Offset         int        `json:"offset" validate:"omitempty,min=0"`
}
