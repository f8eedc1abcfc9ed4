package repository

import (
	"context"

	"github.com/partner-crm/internal/domain"
)

// CountyRepository reads the chapter reference table. The table is
// import-managed, so there are no write methods.
type CountyRepository interface {
	// GetByID returns a county by its id.
	GetByID(ctx context.Context, id int64) (*domain.County, error)

	// FindByName returns the first county in the state whose short or long
	// name matches the given name, case-insensitively and partially.
	FindByName(ctx context.Context, name, state string) (*domain.County, error)

	// FindByCity returns the first county in the state whose name matches
	// the city, case-insensitively. Used for the cheap synchronous path.
	FindByCity(ctx context.Context, city, state string) (*domain.County, error)

	// FirstByState returns any county in the state. Low-confidence fallback.
	FirstByState(ctx context.Context, state string) (*domain.County, error)

	// ListByState returns all counties in a state ordered by name.
	ListByState(ctx context.Context, state string) ([]*domain.County, error)
}
