package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/pkg/communet"
)

// SessionTokenManager obtains session keys from the v1 session login
// endpoint. Session keys have no reported expiry; the stored key is reused
// until the manager is asked to refresh.
type SessionTokenManager struct {
	communityURL string
	username     string
	password     string
	store        *TokenStore
	httpClient   *http.Client
	mu           sync.Mutex
}

// NewSessionTokenManager creates a session-key manager for the given
// community and account.
func NewSessionTokenManager(communityURL, username, password string) *SessionTokenManager {
	return &SessionTokenManager{
		communityURL: strings.TrimSuffix(communityURL, "/"),
		username:     username,
		password:     password,
		store:        NewTokenStore(),
		httpClient:   &http.Client{Timeout: constants.ShortHTTPTimeout},
	}
}

// GetToken returns the current session key, logging in when none is held.
func (m *SessionTokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	err := m.RefreshToken(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken logs in again and replaces the stored session key.
func (m *SessionTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.username == "" || m.password == "" {
		return constants.ErrNoValidCredentials
	}

	key, err := m.login(ctx)
	if err != nil {
		return err
	}

	m.store.Set(&Token{AccessToken: key, TokenType: "session"})

	return nil
}

// SetToken manually sets the session key.
func (m *SessionTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, TokenType: "session", ExpiresAt: expiresAt})
}

// Invalidate drops the stored session key so the next request logs in again.
func (m *SessionTokenManager) Invalidate() {
	m.store.Clear()
}

// login posts credentials to the v1 session endpoint and extracts the key
// from the XML-derived envelope.
func (m *SessionTokenManager) login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("user.login", m.username)
	form.Set("user.password", m.password)
	form.Set(constants.V1JSONFormatParam, "json")

	loginURL := m.communityURL + constants.APIPathSessionLogin

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating session login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("session login: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading session login response: %w", err)
	}

	result, err := communet.ParseV1Response(body, resp.StatusCode, false)
	if err != nil {
		return "", fmt.Errorf("parsing session login response: %w", err)
	}

	if !result.Succeeded() {
		return "", fmt.Errorf("session login failed with status %d: %s",
			resp.StatusCode, communet.ConsolidateErrors(result.Message, result.DeveloperMessage))
	}

	key, ok := result.Value.(string)
	if !ok || key == "" {
		return "", communet.ErrSessionKeyNotReturned
	}

	return key, nil
}
