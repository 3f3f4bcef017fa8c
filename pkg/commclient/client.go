// Package commclient provides the main entry point for creating Communet API clients
package commclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/communet-io/communet/internal/client"
	"github.com/communet-io/communet/pkg/communet"
)

// New creates a new community API client from the given configuration.
func New(config *communet.Config) (communet.Client, error) {
	if config == nil {
		return nil, communet.ErrConfigRequired
	}

	if config.CommunityURL == "" {
		return nil, communet.ErrCommunityURLRequired
	}

	// Normalize the community URL
	communityURL := strings.TrimSuffix(config.CommunityURL, "/")
	if !strings.Contains(communityURL, "://") {
		communityURL = "https://" + communityURL
	}

	parsed, err := url.Parse(communityURL)
	if err != nil {
		return nil, fmt.Errorf("parsing community URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", communet.ErrInvalidCommunityURL, parsed.Scheme)
	}

	config.CommunityURL = communityURL

	// Use the internal client implementation
	communityClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return communityClient, nil
}

// NewWithSessionKey creates a new client that authenticates with an existing
// session key.
func NewWithSessionKey(communityURL, sessionKey string) (communet.Client, error) {
	return New(&communet.Config{
		CommunityURL: communityURL,
		SessionKey:   sessionKey,
		PreferJSON:   true,
	})
}

// NewWithSSO creates a new client that authenticates with a pre-issued SSO
// token.
func NewWithSSO(communityURL, ssoToken string) (communet.Client, error) {
	return New(&communet.Config{
		CommunityURL: communityURL,
		SSOToken:     ssoToken,
		PreferJSON:   true,
	})
}

// NewWithPassword creates a new client that logs in through the v1 session
// endpoint with a username and password.
func NewWithPassword(communityURL, username, password string) (communet.Client, error) {
	return New(&communet.Config{
		CommunityURL: communityURL,
		Username:     username,
		Password:     password,
		PreferJSON:   true,
	})
}

// NewWithClientCredentials creates a new client using the OAuth2
// client_credentials grant.
func NewWithClientCredentials(communityURL, clientID, clientSecret string) (communet.Client, error) {
	return New(&communet.Config{
		CommunityURL: communityURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		PreferJSON:   true,
	})
}
