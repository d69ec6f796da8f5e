// Package session carries the authentication state of a request: the user
// resolved from the access token, the profile loaded for that user, and
// whether the profile is still unresolved.
package session

import (
	"github.com/gin-gonic/gin"

	"unimate/internal/models"
)

const contextKey = "session"

// Session is the explicit auth context handed to the route guard and the
// handlers. Its lifecycle is SignIn, then SetProfile, then SignOut.
type Session struct {
	Token   string
	User    *models.User
	Profile *models.Profile
	Loading bool
}

// SignIn records the authenticated user. The profile is pending until
// SetProfile is called.
func (s *Session) SignIn(token string, user *models.User) {
	s.Token = token
	s.User = user
	s.Profile = nil
	s.Loading = true
}

// SetProfile settles the profile lookup. A nil profile means the user has
// no profile row yet.
func (s *Session) SetProfile(profile *models.Profile) {
	s.Profile = profile
	s.Loading = false
}

// MarkUnresolved is used when the auth state could not be settled because a
// backend was unavailable.
func (s *Session) MarkUnresolved() {
	s.Loading = true
}

// SignOut clears the session.
func (s *Session) SignOut() {
	*s = Session{}
}

// Authenticated reports whether a user is attached.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// ProfileID returns the profile id, or "" when there is none.
func (s *Session) ProfileID() string {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.ID
}

// Attach stores the session on the gin context.
func Attach(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

// FromContext returns the request session, or an anonymous one.
func FromContext(c *gin.Context) *Session {
	if val, ok := c.Get(contextKey); ok {
		if s, ok := val.(*Session); ok && s != nil {
			return s
		}
	}
	return &Session{}
}
