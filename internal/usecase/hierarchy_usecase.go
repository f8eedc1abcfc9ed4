package usecase

import (
	"context"
	"strings"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"go.uber.org/zap"
)

// CountyMatch says how confident a FindCounty result is. Callers log it;
// the returned county is used the same way either way.
type CountyMatch string

const (
	MatchNone          CountyMatch = "none"
	MatchName          CountyMatch = "name"
	MatchStateFallback CountyMatch = "state_fallback"
)

// HierarchyUseCase locates the county (and through it the chapter, region
// and division) containing a geocoded or user-entered location. It only
// reads the reference table; no county is ever synthesized.
type HierarchyUseCase struct {
	countyRepo repository.CountyRepository
	logger     *zap.Logger
}

func NewHierarchyUseCase(countyRepo repository.CountyRepository, logger *zap.Logger) *HierarchyUseCase {
	return &HierarchyUseCase{
		countyRepo: countyRepo,
		logger:     logger,
	}
}

// FindCounty resolves the containing county in strict priority order:
//
//  1. Geocoded county name + state: normalized name match within the state.
//  2. State derived from the coordinate via fixed bounding boxes.
//  3. Any county in the derived state, as a low-confidence fallback.
//
// Each tier runs only when the previous one yields nothing. A nil county
// with a nil error means every tier missed.
func (uc *HierarchyUseCase) FindCounty(
	ctx context.Context,
	coord *domain.Coordinate,
	geocodedCounty string,
	geocodedState string,
) (*domain.County, CountyMatch, error) {
	// Tier 1: exact administrative-name match
	countyName := NormalizeCountyName(geocodedCounty)
	stateCode := NormalizeState(geocodedState)

	if countyName != "" && stateCode != "" {
		county, err := uc.countyRepo.FindByName(ctx, countyName, stateCode)
		if err != nil {
			return nil, MatchNone, err
		}
		if county != nil {
			uc.logger.Debug("County matched by name",
				zap.String("county", county.Name),
				zap.String("state", stateCode))
			return county, MatchName, nil
		}
	}

	// Tier 2: derive a state from the coordinate
	if coord == nil {
		return nil, MatchNone, nil
	}

	derivedState := stateFromCoordinate(*coord)
	if derivedState == "" {
		return nil, MatchNone, nil
	}

	// Tier 3: first county in the derived state
	county, err := uc.countyRepo.FirstByState(ctx, derivedState)
	if err != nil {
		return nil, MatchNone, err
	}
	if county == nil {
		return nil, MatchNone, nil
	}

	uc.logger.Info("County resolved by state fallback",
		zap.String("county", county.Name),
		zap.String("state", derivedState),
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon))
	return county, MatchStateFallback, nil
}

// NormalizeCountyName strips the trailing "County" suffix geocoders append
// ("Miami-Dade County" -> "Miami-Dade") and trims whitespace.
func NormalizeCountyName(name string) string {
	n := strings.TrimSpace(name)
	lower := strings.ToLower(n)
	if strings.HasSuffix(lower, " county") {
		n = strings.TrimSpace(n[:len(n)-len(" county")])
	}
	return n
}
