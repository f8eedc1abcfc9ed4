package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/usecase"
)

type assignmentFixture struct {
	orgRepo    *MockOrganizationRepository
	personRepo *MockPersonRepository
	countyRepo *MockCountyRepository
	streamRepo *MockStreamRepository
	provider   *fakeProvider
	uc         *usecase.AssignmentUseCase
}

func newAssignmentFixture(provider *fakeProvider) *assignmentFixture {
	f := &assignmentFixture{
		orgRepo:    &MockOrganizationRepository{},
		personRepo: &MockPersonRepository{},
		countyRepo: &MockCountyRepository{},
		streamRepo: &MockStreamRepository{},
		provider:   provider,
	}

	logger := zap.NewNop()
	resolver := usecase.NewCoordinateResolver(
		[]repository.GeocodeProvider{provider},
		logger,
		time.Hour,
		0,
		nil,
	)
	hierarchy := usecase.NewHierarchyUseCase(f.countyRepo, logger)

	f.uc = usecase.NewAssignmentUseCase(
		f.orgRepo,
		f.personRepo,
		f.countyRepo,
		resolver,
		hierarchy,
		f.streamRepo,
		logger,
	)
	return f
}

func strPtr(s string) *string { return &s }

func TestDirectCounty_CityNamesACounty(t *testing.T) {
	f := newAssignmentFixture(&fakeProvider{})

	orange := &domain.County{ID: 5, Name: "Orange", State: "FL"}
	f.countyRepo.On("FindByCity", mock.Anything, "Orange", "FL").Return(orange, nil)

	org := &domain.Organization{
		Name:  "Citrus Partners",
		City:  strPtr("Orange"),
		State: strPtr("Florida"),
	}

	county, err := f.uc.DirectCounty(context.Background(), org)

	assert.NoError(t, err)
	assert.Equal(t, orange, county)
}

func TestDirectCounty_MissingCityOrState(t *testing.T) {
	f := newAssignmentFixture(&fakeProvider{})

	noCity := &domain.Organization{Name: "A", State: strPtr("FL")}
	noState := &domain.Organization{Name: "B", City: strPtr("Miami")}

	county, err := f.uc.DirectCounty(context.Background(), noCity)
	assert.NoError(t, err)
	assert.Nil(t, county)

	county, err = f.uc.DirectCounty(context.Background(), noState)
	assert.NoError(t, err)
	assert.Nil(t, county)

	f.countyRepo.AssertNotCalled(t, "FindByCity", mock.Anything, mock.Anything, mock.Anything)
}

func TestQueue_PublishFailureIsSwallowed(t *testing.T) {
	f := newAssignmentFixture(&fakeProvider{})

	f.streamRepo.On("PublishToStream", mock.Anything, domain.StreamCountyAssign, mock.Anything).
		Return(errors.New("redis down"))

	// Must not panic or surface the error to the caller.
	f.uc.Queue(context.Background(), domain.CountyAssignEvent{
		EntityType: domain.EntityOrganization,
		EntityID:   uuid.New(),
		Name:       "Citrus Partners",
	})

	f.streamRepo.AssertExpectations(t)
}

func TestProcessEvent_AssignsOrganizationCounty(t *testing.T) {
	provider := &fakeProvider{
		result: &domain.GeocodedAddress{
			Coordinate: domain.Coordinate{Lat: 25.7617, Lon: -80.1918},
			County:     "Miami-Dade County",
			State:      "Florida",
		},
	}
	f := newAssignmentFixture(provider)

	orgID := uuid.New()
	org := &domain.Organization{
		ID:      orgID,
		Name:    "Citrus Partners",
		Address: strPtr("123 Main St"),
		City:    strPtr("Miami"),
		State:   strPtr("FL"),
		Zip:     strPtr("33101"),
	}
	miamiDade := &domain.County{ID: 12, Name: "Miami-Dade", State: "FL"}

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.countyRepo.On("FindByName", mock.Anything, "Miami-Dade", "FL").Return(miamiDade, nil)
	f.orgRepo.On("SetCoordinates", mock.Anything, orgID, 25.7617, -80.1918).Return(nil)
	f.orgRepo.On("AssignCounty", mock.Anything, orgID, int64(12)).Return(nil)

	err := f.uc.ProcessEvent(context.Background(), domain.CountyAssignEvent{
		EntityType: domain.EntityOrganization,
		EntityID:   orgID,
	})

	assert.NoError(t, err)
	f.orgRepo.AssertExpectations(t)
}

func TestProcessEvent_SkipsAlreadyAssigned(t *testing.T) {
	f := newAssignmentFixture(&fakeProvider{})

	countyID := int64(3)
	orgID := uuid.New()
	org := &domain.Organization{ID: orgID, Name: "Citrus Partners", CountyID: &countyID}

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)

	err := f.uc.ProcessEvent(context.Background(), domain.CountyAssignEvent{
		EntityType: domain.EntityOrganization,
		EntityID:   orgID,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, f.provider.calls, "an assigned entity must not be re-geocoded")
	f.orgRepo.AssertNotCalled(t, "AssignCounty", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessEvent_UnresolvableAddressIsNotAnError(t *testing.T) {
	f := newAssignmentFixture(&fakeProvider{err: errors.New("provider down")})

	orgID := uuid.New()
	org := &domain.Organization{
		ID:    orgID,
		Name:  "Citrus Partners",
		City:  strPtr("Miami"),
		State: strPtr("FL"),
	}

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)

	err := f.uc.ProcessEvent(context.Background(), domain.CountyAssignEvent{
		EntityType: domain.EntityOrganization,
		EntityID:   orgID,
	})

	assert.NoError(t, err)
	f.orgRepo.AssertNotCalled(t, "AssignCounty", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessEvent_AssignsPersonCounty(t *testing.T) {
	provider := &fakeProvider{
		result: &domain.GeocodedAddress{
			Coordinate: domain.Coordinate{Lat: 28.5384, Lon: -81.3789},
			County:     "Orange County",
			State:      "Florida",
		},
	}
	f := newAssignmentFixture(provider)

	personID := uuid.New()
	person := &domain.Person{
		ID:        personID,
		FirstName: "Ada",
		LastName:  "Rivera",
		City:      strPtr("Orlando"),
		State:     strPtr("FL"),
	}
	orange := &domain.County{ID: 5, Name: "Orange", State: "FL"}

	f.personRepo.On("GetByID", mock.Anything, personID).Return(person, nil)
	f.countyRepo.On("FindByName", mock.Anything, "Orange", "FL").Return(orange, nil)
	f.personRepo.On("AssignCounty", mock.Anything, personID, int64(5)).Return(nil)

	err := f.uc.ProcessEvent(context.Background(), domain.CountyAssignEvent{
		EntityType: domain.EntityPerson,
		EntityID:   personID,
	})

	assert.NoError(t, err)
	f.personRepo.AssertExpectations(t)
}

func TestProcessEvent_UnknownEntityType(t *testing.T) {
	f := newAssignmentFixture(&fakeProvider{})

	err := f.uc.ProcessEvent(context.Background(), domain.CountyAssignEvent{
		EntityType: "spaceship",
		EntityID:   uuid.New(),
	})

	assert.NoError(t, err)
}

func TestBackfill_ReportsSuccessesAndFailures(t *testing.T) {
	provider := &fakeProvider{
		result: &domain.GeocodedAddress{
			Coordinate: domain.Coordinate{Lat: 25.7617, Lon: -80.1918},
			County:     "Miami-Dade County",
			State:      "Florida",
		},
	}
	f := newAssignmentFixture(provider)

	resolvable := &domain.Organization{
		ID:    uuid.New(),
		Name:  "Citrus Partners",
		City:  strPtr("Miami"),
		State: strPtr("FL"),
	}
	miamiDade := &domain.County{ID: 12, Name: "Miami-Dade", State: "FL"}

	person := &domain.Person{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Rivera",
		City:      strPtr("Orlando"),
		State:     strPtr("FL"),
	}

	f.orgRepo.On("ListMissingCounty", mock.Anything).Return([]*domain.Organization{resolvable}, nil)
	f.orgRepo.On("SetCoordinates", mock.Anything, resolvable.ID, 25.7617, -80.1918).Return(nil)
	f.countyRepo.On("FindByName", mock.Anything, "Miami-Dade", "FL").Return(miamiDade, nil)
	f.orgRepo.On("AssignCounty", mock.Anything, resolvable.ID, int64(12)).Return(nil)

	f.personRepo.On("ListMissingCounty", mock.Anything).Return([]*domain.Person{person}, nil)
	// Person assignment fails at the database
	f.personRepo.On("AssignCounty", mock.Anything, person.ID, int64(12)).Return(errors.New("deadlock"))

	summary, err := f.uc.Backfill(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, []string{"Ada Rivera"}, summary.Failures)
}

func TestFullAddress(t *testing.T) {
	org := &domain.Organization{
		Address: strPtr("123 Main St"),
		City:    strPtr("Miami"),
		State:   strPtr("FL"),
		Zip:     strPtr("33101"),
	}
	assert.Equal(t, "123 Main St, Miami, FL, 33101", usecase.FullAddress(org))

	sparse := &domain.Organization{City: strPtr("Miami"), State: strPtr("FL")}
	assert.Equal(t, "Miami, FL", usecase.FullAddress(sparse))

	assert.Equal(t, "", usecase.FullAddress(&domain.Organization{}))
}
