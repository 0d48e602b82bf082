package infrastructure

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const analyticsScope = "https://www.googleapis.com/auth/analytics.readonly"

// Refresh the cached token this long before it actually expires.
const tokenExpiryMargin = 5 * time.Minute

type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// GoogleTokenSource exchanges a signed RS256 service-account assertion for a
// short-lived bearer token and caches it until near expiry. The cache is an
// explicit {token, expiresAt} pair behind a mutex, owned by this source.
type GoogleTokenSource struct {
	client      *http.Client
	tokenURL    string
	clientEmail string
	privateKey  *rsa.PrivateKey

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewGoogleTokenSource parses the raw service-account JSON (client_email +
// PEM private key) loaded from configuration.
func NewGoogleTokenSource(serviceAccountJSON, tokenURL string, timeout time.Duration) (*GoogleTokenSource, error) {
	if strings.TrimSpace(serviceAccountJSON) == "" {
		return nil, fmt.Errorf("service account credential not configured")
	}

	var account serviceAccount
	if err := json.Unmarshal([]byte(serviceAccountJSON), &account); err != nil {
		return nil, fmt.Errorf("failed to parse service account JSON: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(account.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account private key: %w", err)
	}

	return &GoogleTokenSource{
		client:      &http.Client{Timeout: timeout},
		tokenURL:    tokenURL,
		clientEmail: account.ClientEmail,
		privateKey:  privateKey,
	}, nil
}

// Token returns the cached access token while it is still valid, refreshing
// it through the assertion exchange otherwise. Single-writer: the mutex is
// held across the refresh so concurrent callers never race the exchange.
func (s *GoogleTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expiresAt.Add(-tokenExpiryMargin)) {
		return s.token, nil
	}

	assertion, err := s.signAssertion()
	if err != nil {
		return "", fmt.Errorf("failed to sign token assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, "POST", s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access token")
	}

	s.token = payload.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)

	return s.token, nil
}

func (s *GoogleTokenSource) signAssertion() (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"iss":   s.clientEmail,
		"scope": analyticsScope,
		"aud":   s.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
}
