package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/pkg/utils"
)

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(25.76, -80.19))
	assert.True(t, utils.ValidateCoordinates(90, 180))
	assert.True(t, utils.ValidateCoordinates(-90, -180))
	assert.False(t, utils.ValidateCoordinates(91, 0))
	assert.False(t, utils.ValidateCoordinates(0, -181))
}

func TestBoundsOf_Empty(t *testing.T) {
	assert.Nil(t, utils.BoundsOf(nil, 0.1))
	assert.Nil(t, utils.BoundsOf([]domain.Coordinate{}, 0.1))
}

func TestBoundsOf_SinglePoint(t *testing.T) {
	box := utils.BoundsOf([]domain.Coordinate{{Lat: 25.76, Lon: -80.19}}, 0.1)

	// Zero span, so padding adds nothing
	assert.Equal(t, 25.76, box.MinLat)
	assert.Equal(t, 25.76, box.MaxLat)
	assert.Equal(t, -80.19, box.MinLon)
	assert.Equal(t, -80.19, box.MaxLon)
}

func TestBoundsOf_Padding(t *testing.T) {
	coords := []domain.Coordinate{
		{Lat: 25.0, Lon: -81.0},
		{Lat: 26.0, Lon: -80.0},
		{Lat: 25.5, Lon: -80.5},
	}

	box := utils.BoundsOf(coords, 0.1)

	assert.InDelta(t, 24.9, box.MinLat, 0.0001)
	assert.InDelta(t, 26.1, box.MaxLat, 0.0001)
	assert.InDelta(t, -81.1, box.MinLon, 0.0001)
	assert.InDelta(t, -79.9, box.MaxLon, 0.0001)
}
