package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/partner-crm/internal/config"
	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"go.uber.org/zap"
)

const providerName = "nominatim"

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates the primary geocoding provider. The User-Agent header is
// mandatory under the provider's usage policy; requests without a
// distinguishing client identifier get blocked.
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocodeProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

func (c *client) Name() string {
	return providerName
}

// searchResult mirrors the relevant parts of the provider's JSON payload.
// Latitude and longitude arrive as strings.
type searchResult struct {
	Lat         string        `json:"lat"`
	Lon         string        `json:"lon"`
	DisplayName string        `json:"display_name"`
	Address     searchAddress `json:"address"`
}

type searchAddress struct {
	County  string `json:"county"`
	State   string `json:"state"`
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
}

// cityName picks the most specific populated-place field present.
func (a searchAddress) cityName() string {
	if a.City != "" {
		return a.City
	}
	if a.Town != "" {
		return a.Town
	}
	return a.Village
}

func (c *client) SearchCity(ctx context.Context, city, state string) (*domain.GeocodedAddress, error) {
	return c.search(ctx, fmt.Sprintf("%s, %s", city, state))
}

func (c *client) SearchAddress(ctx context.Context, address string) (*domain.GeocodedAddress, error) {
	return c.search(ctx, address)
}

// search runs one query against the provider, restricted to US results and
// a single candidate. Returns (nil, nil) when nothing matches.
func (c *client) search(ctx context.Context, query string) (*domain.GeocodedAddress, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("countrycodes", "us")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("Calling geocoding provider",
		zap.String("provider", providerName),
		zap.String("query", query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding provider error: status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(results) == 0 {
		c.logger.Debug("Geocoding provider returned no results",
			zap.String("query", query))
		return nil, nil
	}

	first := results[0]

	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed latitude %q: %w", first.Lat, err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed longitude %q: %w", first.Lon, err)
	}

	return &domain.GeocodedAddress{
		Coordinate:  domain.Coordinate{Lat: lat, Lon: lon},
		County:      first.Address.County,
		State:       first.Address.State,
		City:        first.Address.cityName(),
		DisplayName: first.DisplayName,
		Provider:    providerName,
	}, nil
}
