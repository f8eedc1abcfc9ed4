package assignment_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/usecase"
	"github.com/partner-crm/internal/worker/assignment"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// MockOrganizationRepository covers only what ProcessEvent touches.
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Organization, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) List(ctx context.Context, filter repository.OrganizationFilter) ([]*domain.Organization, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) AssignCounty(ctx context.Context, id uuid.UUID, countyID int64) error {
	args := m.Called(ctx, id, countyID)
	return args.Error(0)
}

func (m *MockOrganizationRepository) SetCoordinates(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	args := m.Called(ctx, id, lat, lon)
	return args.Error(0)
}

func (m *MockOrganizationRepository) ListMissingCounty(ctx context.Context) ([]*domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Organization), args.Error(1)
}

func newWorkerFixture(streamRepo *MockStreamRepository, orgRepo *MockOrganizationRepository) *assignment.CountyWorker {
	logger := zap.NewNop()
	assignmentUC := usecase.NewAssignmentUseCase(
		orgRepo,
		nil,
		nil,
		usecase.NewCoordinateResolver(nil, logger, time.Hour, 0, nil),
		usecase.NewHierarchyUseCase(nil, logger),
		streamRepo,
		logger,
	)
	return assignment.NewCountyWorker(streamRepo, assignmentUC, "test-group", 3, logger)
}

func TestCountyWorker_Name(t *testing.T) {
	w := newWorkerFixture(&MockStreamRepository{}, &MockOrganizationRepository{})
	assert.Equal(t, "county-assignment", w.Name())
}

func TestCountyWorker_StopIsIdempotent(t *testing.T) {
	w := newWorkerFixture(&MockStreamRepository{}, &MockOrganizationRepository{})

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestCountyWorker_MalformedMessageIsAcked(t *testing.T) {
	streamRepo := &MockStreamRepository{}
	w := newWorkerFixture(streamRepo, &MockOrganizationRepository{})

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- domain.StreamMessage{ID: "1-0", Data: "{not json"}
	close(msgChan)

	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamCountyAssign, "test-group").Return(nil)
	streamRepo.On("ConsumeStream", mock.Anything, domain.StreamCountyAssign, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamCountyAssign, "test-group", "1-0").Return(nil)

	err := w.Start(context.Background())

	assert.NoError(t, err)
	streamRepo.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamCountyAssign, "test-group", "1-0")
}

func TestCountyWorker_ProcessedEventIsAcked(t *testing.T) {
	streamRepo := &MockStreamRepository{}
	orgRepo := &MockOrganizationRepository{}
	w := newWorkerFixture(streamRepo, orgRepo)

	countyID := int64(7)
	orgID := uuid.New()
	event := domain.CountyAssignEvent{
		EntityType: domain.EntityOrganization,
		EntityID:   orgID,
		Name:       "Citrus Partners",
	}
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- domain.StreamMessage{ID: "2-0", Data: string(payload)}
	close(msgChan)

	// Entity already assigned: the event is a no-op and gets acked
	orgRepo.On("GetByID", mock.Anything, orgID).
		Return(&domain.Organization{ID: orgID, Name: "Citrus Partners", CountyID: &countyID}, nil)

	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamCountyAssign, "test-group").Return(nil)
	streamRepo.On("ConsumeStream", mock.Anything, domain.StreamCountyAssign, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamCountyAssign, "test-group", "2-0").Return(nil)

	err = w.Start(context.Background())

	assert.NoError(t, err)
	streamRepo.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamCountyAssign, "test-group", "2-0")
}
