package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations like session login.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryAttempts is the total attempt bound for transient
	// failures, counting the first try.
	DefaultRetryAttempts = 3

	// DefaultRetryWaitMin is the minimum backoff between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// API path roots for the two supported API generations.
const (
	// APIPathV2 is the native-JSON v2 root.
	APIPathV2 = "/api/2.0"

	// APIPathV1 is the XML-derived v1 root.
	APIPathV1 = "/restapi/vc"

	// APIPathSearch is the LiQL search endpoint.
	APIPathSearch = APIPathV2 + "/search"

	// APIPathSessionLogin is the v1 session-key login endpoint.
	APIPathSessionLogin = APIPathV1 + "/authentication/sessions/login"

	// APIPathOAuthToken is the default OAuth2 token endpoint, relative to the
	// community URL.
	APIPathOAuthToken = "/auth/oauth2/token"
)

// Request defaults.
const (
	// DefaultUserAgent identifies the client library.
	DefaultUserAgent = "communet-go/1.0"

	// ErrorSnippetLimit bounds how much of an unparseable error body is
	// carried into the error message.
	ErrorSnippetLimit = 200

	// V1JSONFormatParam asks v1 endpoints to answer in JSON instead of XML.
	V1JSONFormatParam = "restapi.response_format"
)

// Pagination defaults.
const (
	// DefaultPageSize is the default number of items requested per page.
	DefaultPageSize = 25

	// MaxPageSize is the platform's hard page-size ceiling.
	MaxPageSize = 1000
)

// Token handling.
const (
	// TokenExpirySkew refreshes tokens slightly before their reported
	// expiration to absorb clock drift.
	TokenExpirySkew = 30 * time.Second
)
