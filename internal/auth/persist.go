package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister saves refreshed tokens so CLI sessions survive process
// restarts.
type ConfigPersister interface {
	UpdateCommunityToken(communityURL, token string, expiresAt time.Time, refreshToken string) error
}

// PersistingTokenManager wraps another TokenManager and writes every token
// change through the persister. Persistence failures are logged, never
// surfaced; losing a cached token only costs a re-login.
type PersistingTokenManager struct {
	inner        TokenManager
	persister    ConfigPersister
	communityURL string
	mu           sync.Mutex
	lastToken    string
}

// NewPersistingTokenManager wraps inner with config persistence. An initial
// token, when non-empty, is seeded into the inner manager.
func NewPersistingTokenManager(inner TokenManager, persister ConfigPersister, communityURL, initialToken string, initialExpiry time.Time) *PersistingTokenManager {
	if initialToken != "" {
		inner.SetToken(initialToken, initialExpiry)
	}

	return &PersistingTokenManager{
		inner:        inner,
		persister:    persister,
		communityURL: communityURL,
		lastToken:    initialToken,
	}
}

// GetToken returns a valid token and persists it when it changed.
func (m *PersistingTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.inner.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	changed := token != m.lastToken
	m.lastToken = token
	m.mu.Unlock()

	if changed {
		m.persist(token)
	}

	return token, nil
}

// RefreshToken forces a refresh on the inner manager and persists the
// replacement token.
func (m *PersistingTokenManager) RefreshToken(ctx context.Context) error {
	err := m.inner.RefreshToken(ctx)
	if err != nil {
		return err
	}

	token, err := m.inner.GetToken(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.lastToken = token
	m.mu.Unlock()

	m.persist(token)

	return nil
}

// SetToken sets the token on the inner manager and persists it.
func (m *PersistingTokenManager) SetToken(token string, expiresAt time.Time) {
	m.inner.SetToken(token, expiresAt)

	m.mu.Lock()
	m.lastToken = token
	m.mu.Unlock()

	m.persist(token)
}

func (m *PersistingTokenManager) persist(token string) {
	if m.persister == nil {
		return
	}

	err := m.persister.UpdateCommunityToken(m.communityURL, token, time.Time{}, "")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist token: %v\n", err)
	}
}
