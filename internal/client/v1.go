package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// LegacyClient implements communet.LegacyClient against the XML-derived v1
// endpoints.
type LegacyClient struct {
	httpClient      *http.Client
	preferJSON      bool
	translateErrors bool
}

// NewLegacyClient creates a new legacy v1 client.
func NewLegacyClient(httpClient *http.Client, preferJSON, translateErrors bool) *LegacyClient {
	return &LegacyClient{
		httpClient:      httpClient,
		preferJSON:      preferJSON,
		translateErrors: translateErrors,
	}
}

// v1Path prefixes relative paths with the v1 root. Callers may pass either
// "users/online/count" or the full "/restapi/vc/users/online/count".
func v1Path(path string) string {
	if strings.HasPrefix(path, constants.APIPathV1) {
		return path
	}

	return constants.APIPathV1 + "/" + strings.TrimPrefix(path, "/")
}

// Get implements communet.LegacyClient.Get. Error statuses reported by the
// platform are normalized rather than raised, matching v1's habit of carrying
// failures inside 200 responses.
func (c *LegacyClient) Get(ctx context.Context, path string, params url.Values) (*communet.NormalizedResult, error) {
	values := url.Values{}
	for key, list := range params {
		values[key] = list
	}

	if c.preferJSON {
		values.Set(constants.V1JSONFormatParam, "json")
	}

	// Without the JSON preference the platform answers in XML, so no JSON
	// decode expectation applies to the response.
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:      nethttp.MethodGet,
		Path:        v1Path(path),
		Query:       values,
		RawResponse: !c.preferJSON,
	})
	if resp == nil {
		return nil, fmt.Errorf("v1 get: %w", err)
	}

	result, err := communet.ParseV1Response(resp.Body, resp.StatusCode, c.translateErrors)
	if err != nil {
		return nil, fmt.Errorf("v1 get: %w", err)
	}

	result.Raw = resp

	return result, nil
}

// List implements communet.LegacyClient.List. The list params are rendered
// as the page/size query arguments v1 collection endpoints take instead of
// LiQL.
func (c *LegacyClient) List(ctx context.Context, path string, params *communet.ListParams) (*communet.NormalizedResult, error) {
	return c.Get(ctx, path, params.ToValues())
}

// Post implements communet.LegacyClient.Post. The form is sent URL-encoded,
// the way the v1 endpoints expect their arguments.
func (c *LegacyClient) Post(ctx context.Context, path string, form url.Values) (*communet.NormalizedResult, error) {
	values := url.Values{}
	for key, list := range form {
		values[key] = list
	}

	if c.preferJSON {
		values.Set(constants.V1JSONFormatParam, "json")
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:      nethttp.MethodPost,
		Path:        v1Path(path),
		RawBody:     []byte(values.Encode()),
		ContentType: http.ContentTypeForm,
		RawResponse: !c.preferJSON,
	})
	if resp == nil {
		return nil, fmt.Errorf("v1 post: %w", err)
	}

	result, err := communet.ParseV1Response(resp.Body, resp.StatusCode, c.translateErrors)
	if err != nil {
		return nil, fmt.Errorf("v1 post: %w", err)
	}

	result.Raw = resp

	return result, nil
}
