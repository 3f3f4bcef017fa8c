package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/communet-io/communet/internal/auth"
	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// Static errors for err113 compliance.
var (
	ErrCommunityURLRequired     = errors.New("community URL is required")
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// Client implements the communet.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       communet.Logger

	// Session flags carried into response normalization.
	translateErrors bool
	preferJSON      bool

	// Resource clients
	boards      communet.BoardsClient
	categories  communet.CategoriesClient
	nodes       communet.NodesClient
	groupHubs   communet.GroupHubsClient
	messages    communet.MessagesClient
	albums      communet.AlbumsClient
	attachments communet.AttachmentsClient
	tags        communet.TagsClient
	users       communet.UsersClient
	search      communet.SearchClient
	legacy      communet.LegacyClient
}

// createTokenManager creates the appropriate token manager based on config.
func createTokenManager(config *communet.Config) auth.TokenManager {
	switch config.AuthType {
	case communet.AuthTypeSession:
		if config.SessionKey != "" {
			return &staticTokenManager{token: config.SessionKey}
		}

		return auth.NewSessionTokenManager(config.CommunityURL, config.Username, config.Password)
	case communet.AuthTypeSSO:
		return &staticTokenManager{token: config.SSOToken}
	case communet.AuthTypeOAuth:
		return createOAuth2TokenManager(config)
	}

	// No explicit auth type: infer from which credentials are present.
	if config.SessionKey != "" {
		return &staticTokenManager{token: config.SessionKey}
	}

	if config.SSOToken != "" {
		return &staticTokenManager{token: config.SSOToken}
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		return createOAuth2TokenManager(config)
	}

	if config.Username != "" && config.Password != "" {
		return auth.NewSessionTokenManager(config.CommunityURL, config.Username, config.Password)
	}

	return nil // No authentication
}

// createOAuth2TokenManager creates an OAuth2 token manager with client
// credentials, password, or refresh token grants depending on config.
func createOAuth2TokenManager(config *communet.Config) auth.TokenManager {
	oauthConfig := &auth.OAuth2Config{
		TokenURL:     getTokenURL(config),
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Username:     config.Username,
		Password:     config.Password,
		RefreshToken: config.RefreshToken,
	}

	return auth.NewOAuth2TokenManager(oauthConfig)
}

// getTokenURL returns the token URL from config or the platform default.
func getTokenURL(config *communet.Config) string {
	if config.TokenURL != "" {
		return config.TokenURL
	}

	return config.CommunityURL + constants.APIPathOAuthToken
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *communet.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.TenantID != "" {
		httpOpts = append(httpOpts, http.WithTenant(config.TenantID))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new community API client.
func New(config *communet.Config) (*Client, error) {
	if config.CommunityURL == "" {
		return nil, ErrCommunityURLRequired
	}

	tokenManager := createTokenManager(config)
	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.CommunityURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:      httpClient,
		tokenManager:    tokenManager,
		baseURL:         config.CommunityURL,
		logger:          config.Logger,
		translateErrors: config.TranslateErrors,
		preferJSON:      config.PreferJSON,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a new community API client with a custom token
// manager.
func NewWithTokenManager(config *communet.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.CommunityURL == "" {
		return nil, ErrCommunityURLRequired
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.CommunityURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:      httpClient,
		tokenManager:    tokenManager,
		baseURL:         config.CommunityURL,
		logger:          config.Logger,
		translateErrors: config.TranslateErrors,
		preferJSON:      config.PreferJSON,
	}

	client.initializeResourceClients()

	return client, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current auth token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Resource client accessors

// Boards implements communet.Client.Boards.
func (c *Client) Boards() communet.BoardsClient {
	return c.boards
}

// Categories implements communet.Client.Categories.
func (c *Client) Categories() communet.CategoriesClient {
	return c.categories
}

// Nodes implements communet.Client.Nodes.
func (c *Client) Nodes() communet.NodesClient {
	return c.nodes
}

// GroupHubs implements communet.Client.GroupHubs.
func (c *Client) GroupHubs() communet.GroupHubsClient {
	return c.groupHubs
}

// Messages implements communet.Client.Messages.
func (c *Client) Messages() communet.MessagesClient {
	return c.messages
}

// Albums implements communet.Client.Albums.
func (c *Client) Albums() communet.AlbumsClient {
	return c.albums
}

// Attachments implements communet.Client.Attachments.
func (c *Client) Attachments() communet.AttachmentsClient {
	return c.attachments
}

// Tags implements communet.Client.Tags.
func (c *Client) Tags() communet.TagsClient {
	return c.tags
}

// Users implements communet.Client.Users.
func (c *Client) Users() communet.UsersClient {
	return c.users
}

// Search implements communet.Client.Search.
func (c *Client) Search() communet.SearchClient {
	return c.search
}

// Query implements communet.Client.Query.
func (c *Client) Query(ctx context.Context, q *communet.Query) (*communet.NormalizedResult, error) {
	return c.search.RunNormalized(ctx, q)
}

// V1 implements communet.Client.V1.
func (c *Client) V1() communet.LegacyClient {
	return c.legacy
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.boards = NewBoardsClient(c.httpClient, c.translateErrors)
	c.categories = NewCategoriesClient(c.httpClient)
	c.nodes = NewNodesClient(c.httpClient)
	c.groupHubs = NewGroupHubsClient(c.httpClient)
	c.messages = NewMessagesClient(c.httpClient, c.translateErrors)
	c.albums = NewAlbumsClient(c.httpClient)
	c.attachments = NewAttachmentsClient(c.httpClient)
	c.tags = NewTagsClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient, c.translateErrors)
	c.search = NewSearchClient(c.httpClient, c.translateErrors)
	c.legacy = NewLegacyClient(c.httpClient, c.preferJSON, c.translateErrors)
}

// staticTokenManager provides a static token (session key or SSO token).
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// loggerAdapter adapts communet.Logger to http.Logger.
type loggerAdapter struct {
	logger communet.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
