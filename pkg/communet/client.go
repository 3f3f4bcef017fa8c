package communet

import (
	"context"
	"time"
)

// AuthType selects how the client authenticates against the community.
type AuthType string

const (
	// AuthTypeSession authenticates with a session key obtained from the
	// v1 session login endpoint (or supplied directly via Config.SessionKey).
	AuthTypeSession AuthType = "session"

	// AuthTypeOAuth authenticates with an OAuth2 bearer token.
	AuthTypeOAuth AuthType = "oauth"

	// AuthTypeSSO authenticates with a pre-issued SSO token.
	AuthTypeSSO AuthType = "sso"
)

// StructureClients provides access to community structure resource clients.
type StructureClients interface {
	Boards() BoardsClient
	Categories() CategoriesClient
	Nodes() NodesClient
	GroupHubs() GroupHubsClient
}

// ContentClients provides access to content resource clients.
type ContentClients interface {
	Messages() MessagesClient
	Albums() AlbumsClient
	Attachments() AttachmentsClient
	Tags() TagsClient
}

// PeopleClients provides access to user-related resource clients.
type PeopleClients interface {
	Users() UsersClient
}

// QueryClient provides access to the LiQL search endpoint.
type QueryClient interface {
	Search() SearchClient

	// Query runs a LiQL query against the v2 search endpoint and returns the
	// normalized result.
	Query(ctx context.Context, q *Query) (*NormalizedResult, error)
}

// V1Client provides raw access to v1 endpoints for the handful of operations
// that never migrated to the v2 API.
type V1Client interface {
	V1() LegacyClient
}

// Client is the full client surface for a community instance.
type Client interface {
	StructureClients
	ContentClients
	PeopleClients
	QueryClient
	V1Client

	// GetToken returns the current auth token (session key, OAuth access
	// token, or SSO token depending on Config.AuthType).
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a communet.Client.
//
// # Authentication precedence
//
// The concrete client implementation applies the following precedence:
//  1. SessionKey: used directly as the session token, never refreshed.
//  2. SSOToken: used directly as a bearer token, never refreshed.
//  3. ClientID/ClientSecret: OAuth2 client_credentials grant against TokenURL
//     (defaulted to <CommunityURL>/auth/oauth2/token when empty). A
//     RefreshToken, Username, or Password enables the corresponding grant.
//  4. Username/Password: v1 session login; the session key is obtained once
//     and re-obtained when the platform invalidates it.
//
// # Timeouts and retries
//
// Per-request deadlines are controlled by the context passed to client
// methods. Transient failures (connection errors, 5xx, 429) are retried up to
// RetryMax with exponential backoff bounded by RetryWaitMin/RetryWaitMax.
// DELETE requests are never retried.
type Config struct {
	// CommunityURL is the base URL of the community instance
	// (e.g. "https://community.example.com"). The constructor normalizes the
	// value by trimming a trailing slash; the scheme must be http or https.
	CommunityURL string

	// AuthType selects the authentication mode. When empty it is inferred
	// from which credential fields are set.
	AuthType AuthType

	// Username and Password for the v1 session login or the OAuth2 password
	// grant, depending on AuthType.
	Username string
	Password string

	// ClientID and ClientSecret for OAuth2 grants.
	ClientID     string
	ClientSecret string
	// RefreshToken lets the OAuth2 manager renew access tokens.
	RefreshToken string

	// SessionKey, if set, is used directly without calling the login endpoint.
	SessionKey string

	// SSOToken is a pre-issued single-sign-on token.
	SSOToken string

	// TokenURL overrides the OAuth2 token endpoint. Defaults to
	// CommunityURL + "/auth/oauth2/token".
	TokenURL string

	// TenantID identifies the tenant on multi-tenant deployments; sent as the
	// li-api-tenant header when non-empty.
	TenantID string

	// PreferJSON asks v1 endpoints to respond with JSON instead of XML.
	// Defaults to true in the constructor helpers.
	PreferJSON bool

	// TranslateErrors substitutes known cryptic platform error messages with
	// more actionable ones during response normalization. The flag lives on
	// the session context, never in package state.
	TranslateErrors bool

	// HTTPTimeout is the default transport timeout. Most calls should rely on
	// context deadlines instead.
	HTTPTimeout time.Duration

	// RetryMax is the maximum number of retries for transient failures.
	// If 0, a sensible default is used.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
