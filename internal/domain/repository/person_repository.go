package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/partner-crm/internal/domain"
)

// PersonFilter narrows List results. Zero-value fields are ignored.
type PersonFilter struct {
	OrganizationID *uuid.UUID
	State          string
	Limit          int
	Offset         int
}

// PersonRepository persists contact people.
type PersonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)

	List(ctx context.Context, filter PersonFilter) ([]*domain.Person, error)

	// ListByOrganizations returns all people belonging to the given
	// organizations, for the map aggregation pass.
	ListByOrganizations(ctx context.Context, orgIDs []uuid.UUID) ([]*domain.Person, error)

	Create(ctx context.Context, person *domain.Person) error

	Update(ctx context.Context, person *domain.Person) error

	// AssignCounty sets county_id on a row that does not have one yet.
	AssignCounty(ctx context.Context, id uuid.UUID, countyID int64) error

	// ListMissingCounty returns people that have a city but no county
	// assignment. Feeds the bulk backfill.
	ListMissingCounty(ctx context.Context) ([]*domain.Person, error)
}
