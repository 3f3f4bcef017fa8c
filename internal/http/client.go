// Package http implements the request execution layer shared by every
// resource client: header assembly, bounded retry, multipart encoding, and
// error normalization for non-2xx responses.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/pkg/communet"
	"github.com/hashicorp/go-retryablehttp"
)

// TokenManager supplies the auth token attached to each request. The request
// layer only ever reads tokens; refreshing them is the auth package's job.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Logger interface for the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one HTTP call.
type Request struct {
	Method string
	// Path is joined to the client's base URL unless it is already absolute.
	Path  string
	Query url.Values
	// Headers overlay the default header set; keys are matched
	// case-insensitively and normalized to lower-case.
	Headers map[string]string
	// Body is JSON-marshaled when non-nil.
	Body interface{}
	// RawBody is a pre-encoded payload (multipart or form data). When set,
	// ContentType must carry the encoder's content type; the header mapping
	// itself never contains a content-type for these requests.
	RawBody     []byte
	ContentType string
	// NoRetry forces a single attempt regardless of the retry configuration.
	NoRetry bool
	// RawResponse marks requests whose response body is consumed as-is
	// (binary downloads, XML-format v1 calls); no JSON decode expectation
	// applies and the Accept header is left open.
	RawResponse bool
}

// Response is the fully-buffered result of a request.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
	// DecodeWarning is set when a JSON body was expected but the payload did
	// not decode; the raw body is still returned for manual inspection.
	DecodeWarning string
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v interface{}) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

// Client is the HTTP client used by all resource clients.
type Client struct {
	baseURL       string
	tokenManager  TokenManager
	tenantID      string
	userAgent     string
	logger        Logger
	debug         bool
	retryClient   *retryablehttp.Client
	noRetryClient *retryablehttp.Client
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTenant sends the tenant identifier with every request.
func WithTenant(tenantID string) Option {
	return func(c *Client) {
		c.tenantID = tenantID
	}
}

// WithRetryConfig sets the total attempt bound and the backoff window for
// transient failures. maxAttempts counts the first try; 3 means one try and
// two retries.
func WithRetryConfig(maxAttempts int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if maxAttempts < 1 {
			maxAttempts = 1
		}

		c.retryClient.RetryMax = maxAttempts - 1
		c.retryClient.RetryWaitMin = waitMin
		c.retryClient.RetryWaitMax = waitMax
	}
}

// WithHTTPTimeout sets the transport timeout applied to each attempt.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Timeout = timeout
		c.noRetryClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a new HTTP client for the given community base URL.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		tokenManager:  tokenManager,
		userAgent:     constants.DefaultUserAgent,
		retryClient:   newRetryableClient(constants.DefaultRetryAttempts - 1),
		noRetryClient: newRetryableClient(0),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug && client.logger != nil {
		client.retryClient.RequestLogHook = client.attemptLogHook()
		client.noRetryClient.RequestLogHook = client.attemptLogHook()
	}

	return client
}

func newRetryableClient(retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = constants.DefaultRetryWaitMin
	client.RetryWaitMax = constants.DefaultRetryWaitMax
	client.HTTPClient = &nethttp.Client{Timeout: constants.DefaultHTTPTimeout}
	client.Logger = nil
	client.CheckRetry = transientRetryPolicy
	client.ErrorHandler = attemptCountHandler

	return client
}

// transientRetryPolicy retries transport failures, 429s, and 5xx responses
// (501 excluded); other client errors are surfaced immediately.
func transientRetryPolicy(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode == nethttp.StatusTooManyRequests {
		return true, nil
	}

	if resp.StatusCode >= nethttp.StatusInternalServerError && resp.StatusCode != nethttp.StatusNotImplemented {
		return true, nil
	}

	return false, nil
}

// attemptCountHandler runs after retries are exhausted. Responses are passed
// back so the status-code path can build a verb-specific error; pure
// transport failures become a ConnectionError carrying the attempt count.
func attemptCountHandler(resp *nethttp.Response, err error, numTries int) (*nethttp.Response, error) {
	if resp != nil {
		return resp, nil
	}

	return nil, &communet.ConnectionError{Attempts: numTries, LastErr: err}
}

func (c *Client) attemptLogHook() retryablehttp.RequestLogHook {
	return func(_ retryablehttp.Logger, req *nethttp.Request, attempt int) {
		if attempt > 0 {
			c.logger.Debug("Retrying request", map[string]interface{}{
				"method":  req.Method,
				"url":     req.URL.String(),
				"attempt": attempt + 1,
			})
		}
	}
}

// Do executes the request and returns the buffered response. Non-2xx
// responses return both the response and a verb-specific error; transport
// failures that outlast the retry bound return a ConnectionError reporting
// the attempt count.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.buildURL(req)

	rawBody, err := c.encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	err = c.applyHeaders(ctx, httpReq, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	transport := c.retryClient
	if req.NoRetry {
		transport = c.noRetryClient
	}

	httpResp, err := transport.Do(httpReq)
	if err != nil {
		connErr := &communet.ConnectionError{}
		if errors.As(err, &connErr) {
			return nil, err
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    fullURL,
		})
	}

	if httpResp.StatusCode >= nethttp.StatusBadRequest {
		return resp, c.buildRequestError(req.Method, resp)
	}

	if !req.RawResponse {
		c.checkDecodable(resp)
	}

	return resp, nil
}

// buildURL joins the request path onto the base URL and appends query
// parameters. Absolute paths (full query URLs) pass through untouched.
func (c *Client) buildURL(req *Request) string {
	fullURL := req.Path
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = c.baseURL + req.Path
	}

	if len(req.Query) > 0 {
		separator := "?"
		if strings.Contains(fullURL, "?") {
			separator = "&"
		}

		fullURL += separator + req.Query.Encode()
	}

	return fullURL
}

func (c *Client) encodeBody(req *Request) ([]byte, error) {
	if req.RawBody != nil {
		return req.RawBody, nil
	}

	if req.Body == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return encoded, nil
}

func (c *Client) applyHeaders(ctx context.Context, httpReq *retryablehttp.Request, req *Request) error {
	var authValue string

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("getting auth token: %w", err)
		}

		if token != "" {
			authValue = "Bearer " + token
		}
	}

	// A transport-supplied content type (multipart boundary, form encoding)
	// means the header mapping must not carry one.
	transportContentType := req.ContentType != ""

	for key, value := range BuildHeaders(authValue, req.Headers, transportContentType) {
		httpReq.Header.Set(key, value)
	}

	if transportContentType {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	accept := contentTypeJSON
	if req.RawResponse {
		accept = contentTypeAny
	}

	httpReq.Header.Set(HeaderAccept, accept)
	httpReq.Header.Set(HeaderUserAgent, c.userAgent)

	if c.tenantID != "" {
		httpReq.Header.Set(HeaderTenant, c.tenantID)
	}

	return nil
}

// buildRequestError converts a non-2xx response into the verb-specific error
// variant, extracting the platform's message fields from either response
// generation when present.
func (c *Client) buildRequestError(method string, resp *Response) error {
	message, developerMessage := extractErrorMessages(resp.Body)

	switch method {
	case nethttp.MethodGet:
		return communet.NewGetError(resp.StatusCode, message, developerMessage)
	case nethttp.MethodPost:
		return communet.NewPostError(resp.StatusCode, message, developerMessage)
	case nethttp.MethodPut:
		return communet.NewPutError(resp.StatusCode, message, developerMessage)
	case nethttp.MethodDelete:
		return communet.NewDeleteError(resp.StatusCode, message, developerMessage)
	default:
		return &communet.RequestError{
			Method:           method,
			StatusCode:       resp.StatusCode,
			Message:          message,
			DeveloperMessage: developerMessage,
		}
	}
}

// extractErrorMessages pulls message fields out of a v2 or v1 error body.
// Unparseable bodies fall back to a trimmed snippet of the raw text.
func extractErrorMessages(body []byte) (string, string) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", ""
	}

	if result, err := communet.ParseV2Response(body, 0, false); err == nil && (result.Message != "" || result.DeveloperMessage != "") {
		return result.Message, result.DeveloperMessage
	}

	if result, err := communet.ParseV1Response(body, 0, false); err == nil && result.Message != "" {
		return result.Message, ""
	}

	snippet := strings.TrimSpace(string(body))
	if len(snippet) > constants.ErrorSnippetLimit {
		snippet = snippet[:constants.ErrorSnippetLimit]
	}

	return snippet, ""
}

// checkDecodable flags bodies that fail to decode as JSON on requests that
// asked for JSON. The decode failure is a warning, not an error; callers
// still get the raw body.
func (c *Client) checkDecodable(resp *Response) {
	if len(resp.Body) == 0 {
		return
	}

	if json.Valid(resp.Body) {
		return
	}

	resp.DecodeWarning = "response did not decode as the requested JSON; raw body returned"

	if c.logger != nil {
		c.logger.Warn("Undecodable JSON response", map[string]interface{}{
			"status": resp.StatusCode,
			"bytes":  len(resp.Body),
		})
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// GetRaw performs a GET whose response is consumed as raw bytes, with no
// JSON expectation. Used for binary content such as attachment downloads.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query, RawResponse: true})
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request. Deletions are never retried; they are not
// provably safe against transient duplication.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path, NoRetry: true})
}

// PostRaw performs a POST with a pre-encoded body and explicit content type.
func (c *Client) PostRaw(ctx context.Context, path string, body []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, RawBody: body, ContentType: contentType})
}

// PostMultipart encodes the given fields and files as multipart/form-data and
// POSTs them. The multipart content type (with its generated boundary) is
// applied at the transport level only.
func (c *Client) PostMultipart(ctx context.Context, path string, fields []FormField, files []FilePart) (*Response, error) {
	body, contentType, err := EncodeMultipart(fields, files)
	if err != nil {
		return nil, err
	}

	return c.PostRaw(ctx, path, body, contentType)
}
