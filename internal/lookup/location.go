package lookup

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"unimate/internal/models"
	"unimate/internal/observability"
)

// MaxLocations caps a location search.
const MaxLocations = 5

// LocationClient searches places through a Nominatim compatible API.
type LocationClient struct {
	req    requester
	logger *zap.Logger
}

// NewLocationClient builds a LocationClient for baseURL.
func NewLocationClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *LocationClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationClient{
		req:    requester{name: "location", baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient},
		logger: logger,
	}
}

// Search returns at most MaxLocations places matching query inside the
// country (ISO 3166-1 alpha-2). Records without a display name or with
// non-numeric coordinates are dropped.
func (c *LocationClient) Search(ctx context.Context, query, countryCode string) []models.Location {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Location{}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(MaxLocations))
	params.Set("addressdetails", "0")
	if cc := strings.ToLower(strings.TrimSpace(countryCode)); cc != "" {
		params.Set("countrycodes", cc)
	}

	var raw []models.Location
	if err := c.req.getJSON(ctx, "/search", params, &raw); err != nil {
		c.logger.Warn("location search failed", zap.String("query", query), zap.Error(err))
		observability.IncLookupFailure("location")
		return []models.Location{}
	}

	results := make([]models.Location, 0, MaxLocations)
	for _, loc := range raw {
		if len(results) == MaxLocations {
			break
		}
		if !usable(loc) {
			continue
		}
		results = append(results, loc)
	}
	return results
}

func usable(loc models.Location) bool {
	if strings.TrimSpace(loc.DisplayName) == "" {
		return false
	}
	if _, err := strconv.ParseFloat(loc.Lat, 64); err != nil {
		return false
	}
	_, err := strconv.ParseFloat(loc.Lon, 64)
	return err == nil
}
