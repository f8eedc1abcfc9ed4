package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"go.uber.org/zap"
)

// cityCoordinates is the static seed for the map's coordinate lookup:
// cities the chapters see most, resolvable without any provider call.
var cityCoordinates = map[string]domain.Coordinate{
	"miami":           {Lat: 25.7617, Lon: -80.1918},
	"orlando":         {Lat: 28.5384, Lon: -81.3789},
	"tampa":           {Lat: 27.9506, Lon: -82.4572},
	"jacksonville":    {Lat: 30.3322, Lon: -81.6557},
	"tallahassee":     {Lat: 30.4383, Lon: -84.2807},
	"fort lauderdale": {Lat: 26.1224, Lon: -80.1373},
	"st. petersburg":  {Lat: 27.7676, Lon: -82.6403},
	"sarasota":        {Lat: 27.3364, Lon: -82.5307},
	"gainesville":     {Lat: 29.6516, Lon: -82.3248},
	"pensacola":       {Lat: 30.4213, Lon: -87.2169},
	"naples":          {Lat: 26.1420, Lon: -81.7948},
	"west palm beach": {Lat: 26.7153, Lon: -80.0534},
	"atlanta":         {Lat: 33.7490, Lon: -84.3880},
	"savannah":        {Lat: 32.0809, Lon: -81.0912},
	"birmingham":      {Lat: 33.5186, Lon: -86.8104},
	"charleston":      {Lat: 32.7765, Lon: -79.9311},
	"charlotte":       {Lat: 35.2271, Lon: -80.8431},
	"nashville":       {Lat: 36.1627, Lon: -86.7816},
	"new orleans":     {Lat: 29.9511, Lon: -90.0715},
	"houston":         {Lat: 29.7604, Lon: -95.3698},
}

// CoordinateResolver turns cities and addresses into coordinates. Cache
// hits never touch the network; misses go through the provider chain with a
// minimum interval between consecutive external calls, which keeps bulk
// backfills within the provider's usage policy.
type CoordinateResolver struct {
	providers []repository.GeocodeProvider
	cache     *coordinateCache
	logger    *zap.Logger

	minInterval time.Duration
	sleep       func(ctx context.Context, d time.Duration)

	mu       sync.Mutex
	lastCall time.Time
}

// NewCoordinateResolver wires the provider chain. Providers are tried in
// order; additional fallbacks slot in without changing any caller. A nil
// now falls back to the wall clock.
func NewCoordinateResolver(
	providers []repository.GeocodeProvider,
	logger *zap.Logger,
	cacheTTL time.Duration,
	minInterval time.Duration,
	now func() time.Time,
) *CoordinateResolver {
	return &CoordinateResolver{
		providers:   providers,
		cache:       newCoordinateCache(cacheTTL, now),
		logger:      logger,
		minInterval: minInterval,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Resolve returns the coordinate for a city/state pair, or nil when the
// pair cannot be resolved. Unresolved is the expected miss case, never an
// error: network failures, bad status codes, empty results and malformed
// payloads all fold into nil.
func (r *CoordinateResolver) Resolve(ctx context.Context, city, state string) *domain.Coordinate {
	if strings.TrimSpace(city) == "" {
		return nil
	}

	stateCode := NormalizeState(state)
	if stateCode == "" {
		stateCode = strings.TrimSpace(state)
	}

	key := cacheKey(city, stateCode)
	if entry, ok := r.cache.get(key); ok {
		coord := entry.coordinate
		return &coord
	}

	result := r.query(ctx, func(p repository.GeocodeProvider) (*domain.GeocodedAddress, error) {
		return p.SearchCity(ctx, city, stateCode)
	})
	if result == nil {
		return nil
	}

	r.cache.put(key, result.Coordinate, result.DisplayName)

	coord := result.Coordinate
	return &coord
}

// ResolveAddress geocodes a full address string, returning the coordinate
// plus the provider's county/state/city breakdown, or nil when unresolved.
func (r *CoordinateResolver) ResolveAddress(ctx context.Context, address string) *domain.GeocodedAddress {
	if strings.TrimSpace(address) == "" {
		return nil
	}

	return r.query(ctx, func(p repository.GeocodeProvider) (*domain.GeocodedAddress, error) {
		return p.SearchAddress(ctx, address)
	})
}

// query walks the provider chain, throttling each external call. Provider
// errors are logged and treated the same as empty results.
func (r *CoordinateResolver) query(
	ctx context.Context,
	call func(repository.GeocodeProvider) (*domain.GeocodedAddress, error),
) *domain.GeocodedAddress {
	for _, provider := range r.providers {
		r.throttle(ctx)

		result, err := call(provider)
		if err != nil {
			r.logger.Warn("Geocoding provider failed",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}
		if result != nil {
			return result
		}
	}

	return nil
}

// throttle enforces the minimum interval between consecutive external
// calls across all callers of this resolver.
func (r *CoordinateResolver) throttle(ctx context.Context) {
	r.mu.Lock()
	wait := r.minInterval - time.Since(r.lastCall)
	if wait > 0 {
		r.mu.Unlock()
		r.sleep(ctx, wait)
		r.mu.Lock()
	}
	r.lastCall = time.Now()
	r.mu.Unlock()
}

// CityLookup returns the network-free coordinate lookup the map aggregation
// engine consumes: the static city table first, then fresh cache entries.
func (r *CoordinateResolver) CityLookup(state string) domain.CoordinateLookup {
	return func(city string) *domain.Coordinate {
		normalized := strings.ToLower(strings.TrimSpace(city))
		if normalized == "" {
			return nil
		}

		if coord, ok := cityCoordinates[normalized]; ok {
			return &coord
		}

		if entry, ok := r.cache.get(cacheKey(city, NormalizeState(state))); ok {
			coord := entry.coordinate
			return &coord
		}

		return nil
	}
}
