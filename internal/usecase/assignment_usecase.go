package usecase

import (
	"context"
	"strings"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/usecase/dto"
	"go.uber.org/zap"
)

// AssignmentUseCase orchestrates county assignment for organizations and
// people: a cheap synchronous city match first, a queued geocoding pass
// when that misses. The queued pass never affects the outcome of the write
// that triggered it.
type AssignmentUseCase struct {
	orgRepo    repository.OrganizationRepository
	personRepo repository.PersonRepository
	countyRepo repository.CountyRepository
	resolver   *CoordinateResolver
	hierarchy  *HierarchyUseCase
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

func NewAssignmentUseCase(
	orgRepo repository.OrganizationRepository,
	personRepo repository.PersonRepository,
	countyRepo repository.CountyRepository,
	resolver *CoordinateResolver,
	hierarchy *HierarchyUseCase,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		orgRepo:    orgRepo,
		personRepo: personRepo,
		countyRepo: countyRepo,
		resolver:   resolver,
		hierarchy:  hierarchy,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// DirectCounty tries the synchronous path: a case-insensitive match of the
// entity's city against county names within its state. Single query, no
// network. Returns nil when the city does not name a county.
func (uc *AssignmentUseCase) DirectCounty(ctx context.Context, loc domain.Locatable) (*domain.County, error) {
	city := strings.TrimSpace(loc.CityName())
	state := NormalizeState(loc.StateCode())
	if city == "" || state == "" {
		return nil, nil
	}

	return uc.countyRepo.FindByCity(ctx, city, state)
}

// Queue publishes a county-assign event for the background worker. Called
// only after the entity write has committed; a publish failure is logged
// and swallowed so it can never fail the original request.
func (uc *AssignmentUseCase) Queue(ctx context.Context, event domain.CountyAssignEvent) {
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamCountyAssign, event); err != nil {
		uc.logger.Error("Failed to queue county assignment",
			zap.String("entity_type", string(event.EntityType)),
			zap.String("entity_id", event.EntityID.String()),
			zap.Error(err))
	}
}

// ProcessEvent runs the geocode+hierarchy pipeline for one queued entity
// and writes the resolved county back. Re-running on an entity that
// already has a county is a no-op. An unresolvable address is not an
// error; the entity simply stays unassigned.
func (uc *AssignmentUseCase) ProcessEvent(ctx context.Context, event domain.CountyAssignEvent) error {
	switch event.EntityType {
	case domain.EntityOrganization:
		return uc.processOrganization(ctx, event)
	case domain.EntityPerson:
		return uc.processPerson(ctx, event)
	default:
		uc.logger.Warn("Unknown entity type in county-assign event",
			zap.String("entity_type", string(event.EntityType)))
		return nil
	}
}

func (uc *AssignmentUseCase) processOrganization(ctx context.Context, event domain.CountyAssignEvent) error {
	org, err := uc.orgRepo.GetByID(ctx, event.EntityID)
	if err != nil {
		return err
	}
	if org.CountyID != nil {
		uc.logger.Debug("Organization already has a county, skipping",
			zap.String("id", org.ID.String()))
		return nil
	}

	geocoded, county := uc.resolve(ctx, org)

	if geocoded != nil {
		if err := uc.orgRepo.SetCoordinates(ctx, org.ID, geocoded.Coordinate.Lat, geocoded.Coordinate.Lon); err != nil {
			uc.logger.Error("Failed to store organization coordinates",
				zap.String("id", org.ID.String()),
				zap.Error(err))
		}
	}

	if county == nil {
		uc.logger.Info("Organization county unresolved",
			zap.String("id", org.ID.String()),
			zap.String("name", org.Name))
		return nil
	}

	return uc.orgRepo.AssignCounty(ctx, org.ID, county.ID)
}

func (uc *AssignmentUseCase) processPerson(ctx context.Context, event domain.CountyAssignEvent) error {
	person, err := uc.personRepo.GetByID(ctx, event.EntityID)
	if err != nil {
		return err
	}
	if person.CountyID != nil {
		uc.logger.Debug("Person already has a county, skipping",
			zap.String("id", person.ID.String()))
		return nil
	}

	_, county := uc.resolve(ctx, person)
	if county == nil {
		uc.logger.Info("Person county unresolved",
			zap.String("id", person.ID.String()),
			zap.String("name", person.FullName()))
		return nil
	}

	return uc.personRepo.AssignCounty(ctx, person.ID, county.ID)
}

// resolve runs the full pipeline for one entity: geocode the address, then
// locate the containing county. Either step may come back empty.
func (uc *AssignmentUseCase) resolve(ctx context.Context, loc domain.Locatable) (*domain.GeocodedAddress, *domain.County) {
	geocoded := uc.resolver.ResolveAddress(ctx, FullAddress(loc))
	if geocoded == nil {
		return nil, nil
	}

	county, match, err := uc.hierarchy.FindCounty(ctx, &geocoded.Coordinate, geocoded.County, geocoded.State)
	if err != nil {
		uc.logger.Error("County lookup failed", zap.Error(err))
		return geocoded, nil
	}
	if county != nil {
		uc.logger.Debug("County resolved",
			zap.String("county", county.Name),
			zap.String("match", string(match)))
	}

	return geocoded, county
}

// Backfill scans every entity lacking a county but carrying a city and
// runs the pipeline for each. The resolver's throttle spaces out the
// provider calls, so a large run deliberately takes a while.
func (uc *AssignmentUseCase) Backfill(ctx context.Context) (*dto.BackfillSummary, error) {
	summary := &dto.BackfillSummary{}

	orgs, err := uc.orgRepo.ListMissingCounty(ctx)
	if err != nil {
		return nil, err
	}

	for _, org := range orgs {
		summary.Processed++

		geocoded, county := uc.resolve(ctx, org)
		if geocoded != nil {
			if err := uc.orgRepo.SetCoordinates(ctx, org.ID, geocoded.Coordinate.Lat, geocoded.Coordinate.Lon); err != nil {
				uc.logger.Error("Failed to store organization coordinates",
					zap.String("id", org.ID.String()),
					zap.Error(err))
			}
		}
		if county == nil {
			summary.Failures = append(summary.Failures, org.Name)
			continue
		}
		if err := uc.orgRepo.AssignCounty(ctx, org.ID, county.ID); err != nil {
			summary.Failures = append(summary.Failures, org.Name)
			continue
		}
		summary.Succeeded++
	}

	people, err := uc.personRepo.ListMissingCounty(ctx)
	if err != nil {
		return nil, err
	}

	for _, person := range people {
		summary.Processed++

		_, county := uc.resolve(ctx, person)
		if county == nil {
			summary.Failures = append(summary.Failures, person.FullName())
			continue
		}
		if err := uc.personRepo.AssignCounty(ctx, person.ID, county.ID); err != nil {
			summary.Failures = append(summary.Failures, person.FullName())
			continue
		}
		summary.Succeeded++
	}

	uc.logger.Info("County backfill finished",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", len(summary.Failures)))

	return summary, nil
}

// FullAddress joins the entity's address fields into the free-text query
// the geocoding provider expects.
func FullAddress(loc domain.Locatable) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{loc.StreetAddress(), loc.CityName(), loc.StateCode(), loc.PostalCode()} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
