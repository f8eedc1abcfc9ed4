package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partner-crm/internal/config"
	"github.com/partner-crm/internal/infrastructure/nominatim"
	"go.uber.org/zap"
)

func testConfig(baseURL string) *config.GeocoderConfig {
	return &config.GeocoderConfig{
		BaseURL:        baseURL,
		UserAgent:      "partner-crm-test/1.0",
		RequestTimeout: 2 * time.Second,
	}
}

const miamiPayload = `[
	{
		"lat": "25.7741728",
		"lon": "-80.19362",
		"display_name": "Miami, Miami-Dade County, Florida, United States",
		"address": {
			"city": "Miami",
			"county": "Miami-Dade County",
			"state": "Florida"
		}
	}
]`

func TestSearchCity_ParsesResult(t *testing.T) {
	var gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")

		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "us", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(miamiPayload))
	}))
	defer server.Close()

	client := nominatim.NewClient(testConfig(server.URL), zap.NewNop())

	result, err := client.SearchCity(context.Background(), "Miami", "FL")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Miami, FL", gotQuery)
	assert.Equal(t, "partner-crm-test/1.0", gotUA)
	assert.InDelta(t, 25.7741728, result.Coordinate.Lat, 0.0000001)
	assert.InDelta(t, -80.19362, result.Coordinate.Lon, 0.0000001)
	assert.Equal(t, "Miami-Dade County", result.County)
	assert.Equal(t, "Florida", result.State)
	assert.Equal(t, "Miami", result.City)
	assert.Equal(t, "nominatim", result.Provider)
}

func TestSearchAddress_EmptyResultIsNilNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := nominatim.NewClient(testConfig(server.URL), zap.NewNop())

	result, err := client.SearchAddress(context.Background(), "nowhere at all")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestSearch_Non200IsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := nominatim.NewClient(testConfig(server.URL), zap.NewNop())

	result, err := client.SearchCity(context.Background(), "Miami", "FL")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSearch_MalformedCoordinateIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat": "not-a-number", "lon": "-80.19"}]`))
	}))
	defer server.Close()

	client := nominatim.NewClient(testConfig(server.URL), zap.NewNop())

	result, err := client.SearchCity(context.Background(), "Miami", "FL")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSearch_TownFallsBackWhenCityMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{
				"lat": "30.1766",
				"lon": "-85.8055",
				"address": {"town": "Panama City Beach", "state": "Florida"}
			}
		]`))
	}))
	defer server.Close()

	client := nominatim.NewClient(testConfig(server.URL), zap.NewNop())

	result, err := client.SearchCity(context.Background(), "Panama City Beach", "FL")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Panama City Beach", result.City)
}
