package lookup

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"unimate/internal/models"
	"unimate/internal/observability"
)

// UniversityClient searches a Hipolabs compatible university directory.
type UniversityClient struct {
	req    requester
	logger *zap.Logger
}

// NewUniversityClient builds a UniversityClient for baseURL.
func NewUniversityClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *UniversityClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UniversityClient{
		req:    requester{name: "university", baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient},
		logger: logger,
	}
}

// Search returns universities whose name contains name. When country is set
// only entries of that exact country are kept; the upstream API matches
// countries loosely.
func (c *UniversityClient) Search(ctx context.Context, name, country string) []models.University {
	country = strings.TrimSpace(country)

	params := url.Values{}
	params.Set("name", strings.TrimSpace(name))
	if country != "" {
		params.Set("country", country)
	}

	var raw []models.University
	if err := c.req.getJSON(ctx, "/search", params, &raw); err != nil {
		c.logger.Warn("university search failed", zap.String("name", name), zap.String("country", country), zap.Error(err))
		observability.IncLookupFailure("university")
		return []models.University{}
	}

	if country == "" {
		if raw == nil {
			return []models.University{}
		}
		return raw
	}
	// Country names match without regard to case.
	results := make([]models.University, 0, len(raw))
	for _, u := range raw {
		if strings.EqualFold(u.Country, country) {
			results = append(results, u)
		}
	}
	return results
}
