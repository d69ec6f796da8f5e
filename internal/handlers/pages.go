package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"unimate/internal/guard"
	"unimate/internal/middleware"
	"unimate/internal/models"
	"unimate/internal/onboarding"
	"unimate/internal/repositories"
	"unimate/internal/session"
	"unimate/internal/telemetry"
)

// ConversationLister is implemented by conversations.Service.
type ConversationLister interface {
	List(ctx context.Context, profileID string) []models.ConversationSummary
}

// PageHandler serves the page payloads of the web client.
type PageHandler struct {
	profiles      repositories.ProfileRepository
	conversations ConversationLister
	audit         *telemetry.AuditEmitter
	paths         guard.Paths
	logger        *zap.Logger
}

// NewPageHandler builds a PageHandler.
func NewPageHandler(profiles repositories.ProfileRepository, conversations ConversationLister, audit *telemetry.AuditEmitter, paths guard.Paths, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{profiles: profiles, conversations: conversations, audit: audit, paths: paths, logger: logger}
}

// Login describes the login page. Signed-in callers are told where to go.
func (h *PageHandler) Login(c *gin.Context) {
	s := session.FromContext(c)
	resp := gin.H{"page": "login", "authenticated": s.Authenticated()}
	if s.Authenticated() && !s.Loading {
		if s.Profile.IsComplete() {
			resp["redirect"] = h.paths.Home
		} else {
			resp["redirect"] = h.paths.Welcome
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Logout drops the access token cookie.
func (h *PageHandler) Logout(c *gin.Context) {
	session.FromContext(c).SignOut()
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"redirect": h.paths.Login})
}

// Welcome is the first onboarding screen.
func (h *PageHandler) Welcome(c *gin.Context) {
	shell, _ := onboarding.ShellFor("welcome")
	s := session.FromContext(c)
	c.JSON(http.StatusOK, shell.Wrap(gin.H{
		"email": s.User.Email,
		"steps": onboarding.Steps,
	}))
}

// ProfileForm is the profile onboarding screen.
func (h *PageHandler) ProfileForm(c *gin.Context) {
	shell, _ := onboarding.ShellFor("profile")
	c.JSON(http.StatusOK, shell.Wrap(gin.H{"profile": session.FromContext(c).Profile}))
}

// CompleteProfile stores the onboarding answers and finishes onboarding.
func (h *PageHandler) CompleteProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := session.FromContext(c)
	profile, err := h.profiles.CompleteProfile(c.Request.Context(), s.User.ID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		h.logger.Error("complete profile", zap.String("user_id", s.User.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save profile"})
		return
	}
	s.SetProfile(&profile)

	h.audit.EmitAction(c.Request.Context(), "profile_completed", requestIDFromContext(c), profileIDFromContext(c), nil)
	c.JSON(http.StatusOK, gin.H{"profile": profile, "redirect": h.paths.Home})
}

// Home is the landing page of onboarded profiles.
func (h *PageHandler) Home(c *gin.Context) {
	s := session.FromContext(c)
	conversations := h.conversations.List(c.Request.Context(), s.ProfileID())
	unread := 0
	for _, conv := range conversations {
		unread += conv.Unread
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":       s.Profile,
		"display_name":  s.Profile.DisplayName(),
		"conversations": len(conversations),
		"unread":        unread,
	})
}

// Admin is the admin dashboard payload.
func (h *PageHandler) Admin(c *gin.Context) {
	s := session.FromContext(c)
	c.JSON(http.StatusOK, gin.H{"profile": s.Profile, "role": s.Profile.Role})
}
