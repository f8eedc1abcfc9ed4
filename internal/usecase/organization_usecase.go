package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/usecase/dto"
	"go.uber.org/zap"
)

// OrganizationUseCase handles organization CRUD and hooks the
// county-assignment workflow into every write.
type OrganizationUseCase struct {
	orgRepo    repository.OrganizationRepository
	assignment *AssignmentUseCase
	logger     *zap.Logger
}

func NewOrganizationUseCase(
	orgRepo repository.OrganizationRepository,
	assignment *AssignmentUseCase,
	logger *zap.Logger,
) *OrganizationUseCase {
	return &OrganizationUseCase{
		orgRepo:    orgRepo,
		assignment: assignment,
		logger:     logger,
	}
}

func (uc *OrganizationUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return uc.orgRepo.GetByID(ctx, id)
}

func (uc *OrganizationUseCase) List(ctx context.Context, req *dto.ListOrganizationsRequest) ([]*domain.Organization, error) {
	filter := repository.OrganizationFilter{
		State:  NormalizeState(req.State),
		City:   req.City,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	return uc.orgRepo.List(ctx, filter)
}

// Create inserts the organization and resolves its county: an explicit
// county_id wins, a direct city match is applied before the insert, and
// anything else is queued for the background worker after the insert.
func (uc *OrganizationUseCase) Create(ctx context.Context, req *dto.CreateOrganizationRequest) (*domain.Organization, error) {
	org := &domain.Organization{
		ID:       uuid.New(),
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Zip:      req.Zip,
		CountyID: req.CountyID,
	}

	if org.CountyID == nil {
		county, err := uc.assignment.DirectCounty(ctx, org)
		if err != nil {
			uc.logger.Warn("Direct county match failed",
				zap.String("name", org.Name),
				zap.Error(err))
		} else if county != nil {
			org.CountyID = &county.ID
		}
	}

	if err := uc.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	uc.queueIfUnassigned(ctx, org)

	return org, nil
}

// Update overwrites the organization's fields and re-runs county
// resolution when the caller left county_id empty.
func (uc *OrganizationUseCase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateOrganizationRequest) (*domain.Organization, error) {
	org, err := uc.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	org.Name = req.Name
	org.Address = req.Address
	org.City = req.City
	org.State = req.State
	org.Zip = req.Zip
	org.CountyID = req.CountyID

	if org.CountyID == nil {
		county, err := uc.assignment.DirectCounty(ctx, org)
		if err != nil {
			uc.logger.Warn("Direct county match failed",
				zap.String("name", org.Name),
				zap.Error(err))
		} else if county != nil {
			org.CountyID = &county.ID
		}
	}

	if err := uc.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	uc.queueIfUnassigned(ctx, org)

	return org, nil
}

func (uc *OrganizationUseCase) queueIfUnassigned(ctx context.Context, org *domain.Organization) {
	if org.CountyID != nil || org.CityName() == "" {
		return
	}
	uc.assignment.Queue(ctx, domain.CountyAssignEvent{
		EntityType: domain.EntityOrganization,
		EntityID:   org.ID,
		Name:       org.Name,
		Address:    org.StreetAddress(),
		City:       org.CityName(),
		State:      org.StateCode(),
		Zip:        org.PostalCode(),
	})
}
