package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimate/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	s := &Session{}
	assert.False(t, s.Authenticated())

	s.SignIn("tok", &models.User{ID: "u1"})
	assert.True(t, s.Authenticated())
	assert.True(t, s.Loading)
	assert.Empty(t, s.ProfileID())

	s.SetProfile(&models.Profile{ID: "u1"})
	assert.False(t, s.Loading)
	assert.Equal(t, "u1", s.ProfileID())

	s.SignOut()
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Profile)
	assert.Empty(t, s.Token)
}

func TestFromContextDefaultsToAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	s := FromContext(c)
	require.NotNil(t, s)
	assert.False(t, s.Authenticated())

	attached := &Session{User: &models.User{ID: "u2"}}
	Attach(c, attached)
	assert.Same(t, attached, FromContext(c))
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthenticatorAcceptsValidToken(t *testing.T) {
	auth := NewJWTAuthenticator("shh")
	token := signToken(t, "shh", Claims{
		Email: "awa@example.sn",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	user, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: "user-1", Email: "awa@example.sn"}, user)
}

func TestJWTAuthenticatorRejectsBadTokens(t *testing.T) {
	auth := NewJWTAuthenticator("shh")

	wrongSecret := signToken(t, "other", Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	_, err := auth.Authenticate(context.Background(), wrongSecret)
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := signToken(t, "shh", Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})
	_, err = auth.Authenticate(context.Background(), expired)
	require.ErrorIs(t, err, ErrInvalidToken)

	noSubject := signToken(t, "shh", Claims{Email: "x@example.sn"})
	_, err = auth.Authenticate(context.Background(), noSubject)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRemoteAuthenticator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_, _ = w.Write([]byte(`{"id":"user-9","email":"moussa@example.sn","aud":"authenticated"}`))
		case "Bearer broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	auth := NewRemoteAuthenticator(srv.URL+"/", "anon", srv.Client())

	user, err := auth.Authenticate(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "user-9", user.ID)

	_, err = auth.Authenticate(context.Background(), "bad")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Authenticate(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}
