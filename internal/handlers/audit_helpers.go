package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"unimate/internal/session"
)

const requestIDContextKey = "request_id"

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

func profileIDFromContext(c *gin.Context) *string {
	s := session.FromContext(c)
	if id := s.ProfileID(); id != "" {
		return &id
	}
	if s.User != nil && s.User.ID != "" {
		id := s.User.ID
		return &id
	}
	return nil
}

// validIDs reports whether every non-empty id is a uuid. Missing ids are left
// to field validation.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
