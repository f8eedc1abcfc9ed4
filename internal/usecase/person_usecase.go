package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/usecase/dto"
	"go.uber.org/zap"
)

// PersonUseCase handles person CRUD with the same county-assignment hooks
// as organizations.
type PersonUseCase struct {
	personRepo repository.PersonRepository
	assignment *AssignmentUseCase
	logger     *zap.Logger
}

func NewPersonUseCase(
	personRepo repository.PersonRepository,
	assignment *AssignmentUseCase,
	logger *zap.Logger,
) *PersonUseCase {
	return &PersonUseCase{
		personRepo: personRepo,
		assignment: assignment,
		logger:     logger,
	}
}

func (uc *PersonUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	return uc.personRepo.GetByID(ctx, id)
}

func (uc *PersonUseCase) List(ctx context.Context, req *dto.ListPeopleRequest) ([]*domain.Person, error) {
	filter := repository.PersonFilter{
		OrganizationID: req.OrganizationID,
		State:          NormalizeState(req.State),
		Limit:          req.Limit,
		Offset:         req.Offset,
	}
	return uc.personRepo.List(ctx, filter)
}

func (uc *PersonUseCase) Create(ctx context.Context, req *dto.CreatePersonRequest) (*domain.Person, error) {
	person := &domain.Person{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		OrganizationID: req.OrganizationID,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		CountyID:       req.CountyID,
	}

	if person.CountyID == nil {
		county, err := uc.assignment.DirectCounty(ctx, person)
		if err != nil {
			uc.logger.Warn("Direct county match failed",
				zap.String("name", person.FullName()),
				zap.Error(err))
		} else if county != nil {
			person.CountyID = &county.ID
		}
	}

	if err := uc.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}

	uc.queueIfUnassigned(ctx, person)

	return person, nil
}

func (uc *PersonUseCase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePersonRequest) (*domain.Person, error) {
	person, err := uc.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	person.FirstName = req.FirstName
	person.LastName = req.LastName
	person.Email = req.Email
	person.Phone = req.Phone
	person.OrganizationID = req.OrganizationID
	person.Address = req.Address
	person.City = req.City
	person.State = req.State
	person.Zip = req.Zip
	person.CountyID = req.CountyID

	if person.CountyID == nil {
		county, err := uc.assignment.DirectCounty(ctx, person)
		if err != nil {
			uc.logger.Warn("Direct county match failed",
				zap.String("name", person.FullName()),
				zap.Error(err))
		} else if county != nil {
			person.CountyID = &county.ID
		}
	}

	if err := uc.personRepo.Update(ctx, person); err != nil {
		return nil, err
	}

	uc.queueIfUnassigned(ctx, person)

	return person, nil
}

func (uc *PersonUseCase) queueIfUnassigned(ctx context.Context, person *domain.Person) {
	if person.CountyID != nil || person.CityName() == "" {
		return
	}
	uc.assignment.Queue(ctx, domain.CountyAssignEvent{
		EntityType: domain.EntityPerson,
		EntityID:   person.ID,
		Name:       person.FullName(),
		Address:    person.StreetAddress(),
		City:       person.CityName(),
		State:      person.StateCode(),
		Zip:        person.PostalCode(),
	})
}
