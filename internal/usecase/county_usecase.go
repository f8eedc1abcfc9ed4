package usecase

import (
	"context"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	apperrors "github.com/partner-crm/internal/pkg/errors"
	"go.uber.org/zap"
)

// CountyUseCase exposes read access to the county reference table.
type CountyUseCase struct {
	countyRepo repository.CountyRepository
	logger     *zap.Logger
}

func NewCountyUseCase(countyRepo repository.CountyRepository, logger *zap.Logger) *CountyUseCase {
	return &CountyUseCase{
		countyRepo: countyRepo,
		logger:     logger,
	}
}

func (uc *CountyUseCase) GetByID(ctx context.Context, id int64) (*domain.County, error) {
	return uc.countyRepo.GetByID(ctx, id)
}

func (uc *CountyUseCase) ListByState(ctx context.Context, state string) ([]*domain.County, error) {
	normalized := NormalizeState(state)
	if normalized == "" {
		return nil, apperrors.ErrInvalidState
	}
	return uc.countyRepo.ListByState(ctx, normalized)
}
