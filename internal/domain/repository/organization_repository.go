package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/partner-crm/internal/domain"
)

// OrganizationFilter narrows List results. Zero-value fields are ignored.
type OrganizationFilter struct {
	State  string
	City   string
	Limit  int
	Offset int
}

// OrganizationRepository persists partner organizations.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)

	// GetByIDs returns the organizations for the given id set.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Organization, error)

	List(ctx context.Context, filter OrganizationFilter) ([]*domain.Organization, error)

	Create(ctx context.Context, org *domain.Organization) error

	Update(ctx context.Context, org *domain.Organization) error

	// AssignCounty sets county_id on a row that does not have one yet.
	// Rows with an existing county_id are left untouched.
	AssignCounty(ctx context.Context, id uuid.UUID, countyID int64) error

	// SetCoordinates records the geocoded position of the organization.
	SetCoordinates(ctx context.Context, id uuid.UUID, lat, lon float64) error

	// ListMissingCounty returns organizations that have a city but no
	// county assignment. Feeds the bulk backfill.
	ListMissingCounty(ctx context.Context) ([]*domain.Organization, error)
}
