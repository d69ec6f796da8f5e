package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"unimate/internal/mocks"
	"unimate/internal/models"
	"unimate/internal/repositories"
	"unimate/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionRouter(auth session.Authenticator, profiles ProfileReader, captured **session.Session) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(auth, profiles, nil))
	r.GET("/ping", func(c *gin.Context) {
		*captured = session.FromContext(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestSessionMiddlewareAnonymous(t *testing.T) {
	auth := new(mocks.AuthenticatorMock)
	profiles := new(mocks.ProfileRepositoryMock)
	var sess *session.Session

	w := httptest.NewRecorder()
	sessionRouter(auth, profiles, &sess).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, sess.Authenticated())
	assert.False(t, sess.Loading)
	auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestSessionMiddlewareResolvesProfile(t *testing.T) {
	auth := new(mocks.AuthenticatorMock)
	profiles := new(mocks.ProfileRepositoryMock)
	username := "awa"
	auth.On("Authenticate", mock.Anything, "tok").Return(&models.User{ID: "u-1", Email: "awa@example.com"}, nil).Once()
	profiles.On("GetProfile", mock.Anything, "u-1").Return(models.Profile{ID: "u-1", Role: models.RoleUser, Username: &username}, nil).Once()
	var sess *session.Session

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer tok")
	sessionRouter(auth, profiles, &sess).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, sess.Authenticated())
	assert.False(t, sess.Loading)
	require.NotNil(t, sess.Profile)
	assert.Equal(t, "u-1", sess.ProfileID())
	auth.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestSessionMiddlewareReadsCookie(t *testing.T) {
	auth := new(mocks.AuthenticatorMock)
	profiles := new(mocks.ProfileRepositoryMock)
	auth.On("Authenticate", mock.Anything, "cookie-tok").Return(&models.User{ID: "u-2"}, nil).Once()
	profiles.On("GetProfile", mock.Anything, "u-2").Return(nil, repositories.ErrProfileNotFound).Once()
	var sess *session.Session

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-tok"})
	sessionRouter(auth, profiles, &sess).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, sess.Authenticated())
	assert.False(t, sess.Loading)
	assert.Nil(t, sess.Profile)
}

func TestSessionMiddlewareInvalidTokenIsAnonymous(t *testing.T) {
	auth := new(mocks.AuthenticatorMock)
	profiles := new(mocks.ProfileRepositoryMock)
	auth.On("Authenticate", mock.Anything, "bad").Return(nil, session.ErrInvalidToken).Once()
	var sess *session.Session

	req := httptest.NewRequest(http.MethodGet, "/ping?token=bad", nil)
	sessionRouter(auth, profiles, &sess).ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, sess.Authenticated())
	assert.False(t, sess.Loading)
	profiles.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestSessionMiddlewareBackendFailureStaysLoading(t *testing.T) {
	auth := new(mocks.AuthenticatorMock)
	profiles := new(mocks.ProfileRepositoryMock)
	auth.On("Authenticate", mock.Anything, "tok").Return(nil, errors.New("connection refused")).Once()
	var sess *session.Session

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer tok")
	sessionRouter(auth, profiles, &sess).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, sess.Loading)
}

func TestSessionMiddlewareProfileErrorStaysLoading(t *testing.T) {
	auth := new(mocks.AuthenticatorMock)
	profiles := new(mocks.ProfileRepositoryMock)
	auth.On("Authenticate", mock.Anything, "tok").Return(&models.User{ID: "u-3"}, nil).Once()
	profiles.On("GetProfile", mock.Anything, "u-3").Return(nil, errors.New("db down")).Once()
	var sess *session.Session

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer tok")
	sessionRouter(auth, profiles, &sess).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, sess.Authenticated())
	assert.True(t, sess.Loading)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) { seen = c.GetString(RequestIDKey) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func limitedRouter(l *stubLimiter) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(l, nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitRejects(t *testing.T) {
	l := &stubLimiter{allowed: false}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	w := httptest.NewRecorder()

	limitedRouter(l).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, []string{"ip:10.0.0.1"}, l.keys)
}

func TestRateLimitKeysByForwardedClient(t *testing.T) {
	l := &stubLimiter{allowed: true}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()

	limitedRouter(l).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"ip:203.0.113.7"}, l.keys)
}

func TestRateLimitFailsOpen(t *testing.T) {
	l := &stubLimiter{err: errors.New("redis down")}
	w := httptest.NewRecorder()

	limitedRouter(l).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
