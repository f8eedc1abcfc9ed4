package repository

import (
	"context"

	"github.com/partner-crm/internal/domain"
)

// GeocodeProvider is one external geocoding backend. Providers are tried in
// order by the coordinate resolver; additional backends slot in without
// changing any caller.
//
// A provider returns (nil, nil) when the query yields no result. Errors are
// reserved for transport and decoding failures; the resolver folds both
// cases into an unresolved (nil) outcome.
type GeocodeProvider interface {
	// Name identifies the provider in logs.
	Name() string

	// SearchCity geocodes a "city, state" pair restricted to US results.
	SearchCity(ctx context.Context, city, state string) (*domain.GeocodedAddress, error)

	// SearchAddress geocodes a full free-text postal address.
	SearchAddress(ctx context.Context, address string) (*domain.GeocodedAddress, error)
}
