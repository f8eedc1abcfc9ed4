package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/partner-crm/internal/config"
	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	apperrors "github.com/partner-crm/internal/pkg/errors"
	"github.com/partner-crm/internal/pkg/utils"
	"github.com/partner-crm/internal/usecase/dto"
	"go.uber.org/zap"
)

// cityZoom is the zoom level for a single resolved marker: close enough to
// see the city, far enough to keep context.
const cityZoom = 11

// boundsPadding widens the fitted viewport by 10% per side so edge markers
// do not sit on the frame.
const boundsPadding = 0.1

// MapUseCase builds the marker set and viewport for the map layer.
// Aggregation itself is pure; the use case adds data loading and a short
// Redis cache in front of it.
type MapUseCase struct {
	orgRepo    repository.OrganizationRepository
	personRepo repository.PersonRepository
	cacheRepo  repository.CacheRepository
	resolver   *CoordinateResolver
	cfg        config.MapConfig
	cacheTTL   config.CacheConfig
	logger     *zap.Logger
}

func NewMapUseCase(
	orgRepo repository.OrganizationRepository,
	personRepo repository.PersonRepository,
	cacheRepo repository.CacheRepository,
	resolver *CoordinateResolver,
	cfg config.MapConfig,
	cacheCfg config.CacheConfig,
	logger *zap.Logger,
) *MapUseCase {
	return &MapUseCase{
		orgRepo:    orgRepo,
		personRepo: personRepo,
		cacheRepo:  cacheRepo,
		resolver:   resolver,
		cfg:        cfg,
		cacheTTL:   cacheCfg,
		logger:     logger,
	}
}

// GetMarkers loads the entities matching the request, aggregates them into
// markers, and frames a viewport. Responses are cached briefly per filter
// combination; a cache failure falls through to a fresh build.
func (uc *MapUseCase) GetMarkers(ctx context.Context, req *dto.MapMarkersRequest) (*dto.MapMarkersResponse, error) {
	if !req.DisplayMode.Valid() {
		return nil, apperrors.ErrInvalidDisplayMode
	}

	key := markersCacheKey(req)
	if data, err := uc.cacheRepo.GetMarkers(ctx, key); err != nil {
		uc.logger.Warn("Markers cache read failed", zap.Error(err))
	} else if data != nil {
		var cached dto.MapMarkersResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		uc.logger.Warn("Dropping malformed markers cache entry", zap.String("key", key))
	}

	state := NormalizeState(req.State)

	orgs, err := uc.orgRepo.List(ctx, repository.OrganizationFilter{
		State: state,
		City:  req.City,
	})
	if err != nil {
		return nil, err
	}

	// Organizations are always loaded: in people mode they still serve as
	// the coordinate index for people attached to them.
	var people []*domain.Person
	if req.DisplayMode != domain.DisplayOrganizations {
		orgIDs := make([]uuid.UUID, 0, len(orgs))
		for _, org := range orgs {
			orgIDs = append(orgIDs, org.ID)
		}
		people, err = uc.personRepo.ListByOrganizations(ctx, orgIDs)
		if err != nil {
			return nil, err
		}
	}

	markers := BuildMarkers(orgs, people, req.DisplayMode, uc.resolver.CityLookup(state), req.SelectedOrganizationID)

	resp := &dto.MapMarkersResponse{
		Markers:  markers,
		Viewport: uc.computeViewport(markers),
		Total:    len(markers),
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.SetMarkers(ctx, key, data, uc.cacheTTL.MarkersCacheTTL); err != nil {
			uc.logger.Warn("Markers cache write failed", zap.Error(err))
		}
	}

	return resp, nil
}

// BuildMarkers groups entities into one marker per distinct coordinate.
// Markers keep first-seen order, so when an organization and its people
// share a point the combined marker lands where the organization was first
// placed. Entities whose coordinate cannot be resolved are skipped.
func BuildMarkers(
	orgs []*domain.Organization,
	people []*domain.Person,
	mode domain.DisplayMode,
	lookup domain.CoordinateLookup,
	selectedOrgID *uuid.UUID,
) []domain.MapMarker {
	byCoord := make(map[domain.Coordinate]*domain.MapMarker)
	order := make([]domain.Coordinate, 0, len(orgs)+len(people))

	add := func(coord domain.Coordinate) *domain.MapMarker {
		if m, ok := byCoord[coord]; ok {
			return m
		}
		m := &domain.MapMarker{Coordinate: coord}
		byCoord[coord] = m
		order = append(order, coord)
		return m
	}

	orgCoords := make(map[uuid.UUID]domain.Coordinate, len(orgs))

	for _, org := range orgs {
		coord, ok := organizationCoordinate(org, lookup)
		if !ok {
			continue
		}
		orgCoords[org.ID] = coord

		if mode == domain.DisplayPeople {
			// Index only: the organization resolves its people's
			// position but draws no marker of its own.
			continue
		}

		m := add(coord)
		m.Organizations = append(m.Organizations, org)
		if selectedOrgID != nil && org.ID == *selectedOrgID {
			m.Selected = true
		}
	}

	if mode != domain.DisplayOrganizations {
		for _, person := range people {
			coord, ok := personCoordinate(person, orgCoords, lookup)
			if !ok {
				continue
			}
			m := add(coord)
			m.People = append(m.People, person)
		}
	}

	markers := make([]domain.MapMarker, 0, len(order))
	for _, coord := range order {
		m := byCoord[coord]
		m.Count = len(m.Organizations) + len(m.People)
		m.Type = markerType(m)
		markers = append(markers, *m)
	}

	return markers
}

func markerType(m *domain.MapMarker) domain.MarkerType {
	switch {
	case len(m.Organizations) > 0 && len(m.People) > 0:
		return domain.MarkerMixed
	case len(m.People) > 0:
		return domain.MarkerPerson
	default:
		return domain.MarkerOrganization
	}
}

// organizationCoordinate prefers stored geocoded coordinates and falls back
// to the city lookup table.
func organizationCoordinate(org *domain.Organization, lookup domain.CoordinateLookup) (domain.Coordinate, bool) {
	if org.Latitude != nil && org.Longitude != nil {
		return domain.Coordinate{Lat: *org.Latitude, Lon: *org.Longitude}, true
	}
	if city := org.CityName(); city != "" && lookup != nil {
		if c := lookup(city); c != nil {
			return *c, true
		}
	}
	return domain.Coordinate{}, false
}

// personCoordinate places a person at their organization's point when one
// is known, otherwise at their own city.
func personCoordinate(person *domain.Person, orgCoords map[uuid.UUID]domain.Coordinate, lookup domain.CoordinateLookup) (domain.Coordinate, bool) {
	if person.OrganizationID != nil {
		if coord, ok := orgCoords[*person.OrganizationID]; ok {
			return coord, true
		}
	}
	if city := person.CityName(); city != "" && lookup != nil {
		if c := lookup(city); c != nil {
			return *c, true
		}
	}
	return domain.Coordinate{}, false
}

// computeViewport frames the marker set: one marker centers at city zoom,
// several fit a padded bounding box, none falls back to the configured
// region default.
func (uc *MapUseCase) computeViewport(markers []domain.MapMarker) domain.Viewport {
	switch len(markers) {
	case 0:
		return domain.Viewport{
			Center: &domain.Coordinate{Lat: uc.cfg.DefaultLat, Lon: uc.cfg.DefaultLon},
			Zoom:   uc.cfg.DefaultZoom,
		}
	case 1:
		coord := markers[0].Coordinate
		return domain.Viewport{
			Center: &coord,
			Zoom:   cityZoom,
		}
	default:
		coords := make([]domain.Coordinate, len(markers))
		for i, m := range markers {
			coords[i] = m.Coordinate
		}
		return domain.Viewport{
			Bounds: utils.BoundsOf(coords, boundsPadding),
		}
	}
}

func markersCacheKey(req *dto.MapMarkersRequest) string {
	selected := ""
	if req.SelectedOrganizationID != nil {
		selected = req.SelectedOrganizationID.String()
	}
	return fmt.Sprintf("%s|%s|%s|%s",
		req.DisplayMode,
		strings.ToLower(strings.TrimSpace(req.State)),
		strings.ToLower(strings.TrimSpace(req.City)),
		selected,
	)
}
