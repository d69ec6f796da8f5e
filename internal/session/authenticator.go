package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"unimate/internal/models"
)

// ErrInvalidToken is returned when the access token is rejected.
var ErrInvalidToken = errors.New("invalid token")

// Authenticator resolves a BaaS access token into a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Claims is the payload of a BaaS access token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthenticator verifies HS256 access tokens locally with the project's
// JWT secret.
type JWTAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator returns a JWTAuthenticator.
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Authenticate parses and validates the token.
func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &models.User{ID: claims.Subject, Email: claims.Email}, nil
}

// RemoteAuthenticator asks the BaaS auth endpoint who owns the token.
type RemoteAuthenticator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRemoteAuthenticator returns a RemoteAuthenticator for the project URL.
func NewRemoteAuthenticator(baseURL, apiKey string, httpClient *http.Client) *RemoteAuthenticator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RemoteAuthenticator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Authenticate calls GET /auth/v1/user with the token.
func (a *RemoteAuthenticator) Authenticate(ctx context.Context, token string) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("auth request: unexpected status %d", resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode auth user: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &user, nil
}
