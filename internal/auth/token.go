package auth

import (
	"context"
	"sync"
	"time"

	"github.com/communet-io/communet/internal/constants"
)

// TokenManager manages authentication tokens.
type TokenManager interface {
	// GetToken returns a valid token, obtaining or refreshing one if needed.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a refresh.
	RefreshToken(ctx context.Context) error
	// SetToken manually sets the token.
	SetToken(token string, expiresAt time.Time)
}

// Token represents an issued token with its expiry metadata.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid reports whether the token can still be used. Tokens inside the expiry
// skew window count as expired so a refresh lands before the platform rejects
// them.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirySkew).Before(t.ExpiresAt)
}

// TokenStore is a concurrency-safe holder for the current token.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear drops the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
