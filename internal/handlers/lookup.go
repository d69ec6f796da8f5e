package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"unimate/internal/models"
)

// DefaultCountryCode scopes location searches when none is given.
const DefaultCountryCode = "sn"

// LocationSearcher is implemented by lookup.LocationClient.
type LocationSearcher interface {
	Search(ctx context.Context, query, countryCode string) []models.Location
}

// UniversitySearcher is implemented by lookup.UniversityClient.
type UniversitySearcher interface {
	Search(ctx context.Context, name, country string) []models.University
}

// LookupHandler proxies the public lookup directories. It always answers
// 200; upstream failures yield an empty list.
type LookupHandler struct {
	locations    LocationSearcher
	universities UniversitySearcher
}

// NewLookupHandler builds a LookupHandler.
func NewLookupHandler(locations LocationSearcher, universities UniversitySearcher) *LookupHandler {
	return &LookupHandler{locations: locations, universities: universities}
}

// Locations handles GET /lookup/locations?q=&country=.
func (h *LookupHandler) Locations(c *gin.Context) {
	results := h.locations.Search(c.Request.Context(), c.Query("q"), c.DefaultQuery("country", DefaultCountryCode))
	if results == nil {
		results = []models.Location{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Universities handles GET /lookup/universities?name=&country=.
func (h *LookupHandler) Universities(c *gin.Context) {
	results := h.universities.Search(c.Request.Context(), c.Query("name"), c.Query("country"))
	if results == nil {
		results = []models.University{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
