package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"unimate/internal/models"
	"unimate/internal/repositories"
	"unimate/internal/session"
)

// AccessTokenCookie is the cookie the web client stores its access token in.
const AccessTokenCookie = "sb-access-token"

// ProfileReader loads the profile of an authenticated user.
type ProfileReader interface {
	GetProfile(ctx context.Context, id string) (models.Profile, error)
}

// SessionMiddleware resolves the caller into a session.Session and attaches
// it to the context. It never aborts: deciding what an anonymous or
// half-resolved caller may see is the route guard's job.
func SessionMiddleware(auth session.Authenticator, profiles ProfileReader, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		sess := &session.Session{}
		session.Attach(c, sess)

		token := accessToken(c)
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		user, err := auth.Authenticate(ctx, token)
		switch {
		case errors.Is(err, session.ErrInvalidToken):
			c.Next()
			return
		case err != nil:
			logger.Warn("auth backend unavailable", zap.Error(err))
			sess.Token = token
			sess.MarkUnresolved()
			c.Next()
			return
		}

		sess.SignIn(token, user)
		profile, err := profiles.GetProfile(ctx, user.ID)
		switch {
		case errors.Is(err, repositories.ErrProfileNotFound):
			sess.SetProfile(nil)
		case err != nil:
			logger.Warn("profile lookup failed", zap.String("user_id", user.ID), zap.Error(err))
		default:
			sess.SetProfile(&profile)
		}
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	// Browsers cannot set headers on websocket upgrades.
	return c.Query("token")
}
