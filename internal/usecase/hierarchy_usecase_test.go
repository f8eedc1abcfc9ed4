package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/usecase"
)

func TestFindCounty_NameMatchWins(t *testing.T) {
	countyRepo := &MockCountyRepository{}
	uc := usecase.NewHierarchyUseCase(countyRepo, zap.NewNop())

	miamiDade := &domain.County{ID: 12, Name: "Miami-Dade", State: "FL"}
	countyRepo.On("FindByName", mock.Anything, "Miami-Dade", "FL").Return(miamiDade, nil)

	coord := &domain.Coordinate{Lat: 25.7617, Lon: -80.1918}
	county, match, err := uc.FindCounty(context.Background(), coord, "Miami-Dade County", "Florida")

	assert.NoError(t, err)
	assert.Equal(t, miamiDade, county)
	assert.Equal(t, usecase.MatchName, match)
	countyRepo.AssertNotCalled(t, "FirstByState", mock.Anything, mock.Anything)
}

func TestFindCounty_StateFallbackFromCoordinate(t *testing.T) {
	countyRepo := &MockCountyRepository{}
	uc := usecase.NewHierarchyUseCase(countyRepo, zap.NewNop())

	fallback := &domain.County{ID: 1, Name: "Alachua", State: "FL"}
	countyRepo.On("FindByName", mock.Anything, "Unknownville", "FL").Return(nil, nil)
	countyRepo.On("FirstByState", mock.Anything, "FL").Return(fallback, nil)

	// Gainesville: inside the Florida bounding box
	coord := &domain.Coordinate{Lat: 29.6516, Lon: -82.3248}
	county, match, err := uc.FindCounty(context.Background(), coord, "Unknownville County", "Florida")

	assert.NoError(t, err)
	assert.Equal(t, fallback, county)
	assert.Equal(t, usecase.MatchStateFallback, match)
}

func TestFindCounty_NoCoordinateNoFallback(t *testing.T) {
	countyRepo := &MockCountyRepository{}
	uc := usecase.NewHierarchyUseCase(countyRepo, zap.NewNop())

	countyRepo.On("FindByName", mock.Anything, "Unknownville", "FL").Return(nil, nil)

	county, match, err := uc.FindCounty(context.Background(), nil, "Unknownville", "FL")

	assert.NoError(t, err)
	assert.Nil(t, county)
	assert.Equal(t, usecase.MatchNone, match)
	countyRepo.AssertNotCalled(t, "FirstByState", mock.Anything, mock.Anything)
}

func TestFindCounty_CoordinateOutsideKnownStates(t *testing.T) {
	countyRepo := &MockCountyRepository{}
	uc := usecase.NewHierarchyUseCase(countyRepo, zap.NewNop())

	// Middle of the Pacific: no bounding box matches
	coord := &domain.Coordinate{Lat: 10.0, Lon: -150.0}
	county, match, err := uc.FindCounty(context.Background(), coord, "", "")

	assert.NoError(t, err)
	assert.Nil(t, county)
	assert.Equal(t, usecase.MatchNone, match)
	countyRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything, mock.Anything)
	countyRepo.AssertNotCalled(t, "FirstByState", mock.Anything, mock.Anything)
}

func TestFindCounty_SkipsNameTierWithoutState(t *testing.T) {
	countyRepo := &MockCountyRepository{}
	uc := usecase.NewHierarchyUseCase(countyRepo, zap.NewNop())

	fallback := &domain.County{ID: 7, Name: "Fulton", State: "GA"}
	countyRepo.On("FirstByState", mock.Anything, "GA").Return(fallback, nil)

	// Atlanta: state missing from the geocoder payload, derived from the point
	coord := &domain.Coordinate{Lat: 33.7490, Lon: -84.3880}
	county, match, err := uc.FindCounty(context.Background(), coord, "Fulton County", "")

	assert.NoError(t, err)
	assert.Equal(t, fallback, county)
	assert.Equal(t, usecase.MatchStateFallback, match)
	countyRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindCounty_PropagatesRepositoryError(t *testing.T) {
	countyRepo := &MockCountyRepository{}
	uc := usecase.NewHierarchyUseCase(countyRepo, zap.NewNop())

	countyRepo.On("FindByName", mock.Anything, "Miami-Dade", "FL").Return(nil, errors.New("connection reset"))

	county, match, err := uc.FindCounty(context.Background(), nil, "Miami-Dade", "FL")

	assert.Error(t, err)
	assert.Nil(t, county)
	assert.Equal(t, usecase.MatchNone, match)
}

func TestNormalizeCountyName(t *testing.T) {
	assert.Equal(t, "Miami-Dade", usecase.NormalizeCountyName("Miami-Dade County"))
	assert.Equal(t, "Miami-Dade", usecase.NormalizeCountyName("Miami-Dade county"))
	assert.Equal(t, "Orange", usecase.NormalizeCountyName("  Orange County  "))
	assert.Equal(t, "Orange", usecase.NormalizeCountyName("Orange"))
	assert.Equal(t, "", usecase.NormalizeCountyName(""))
}
