package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// SearchClient implements communet.SearchClient.
type SearchClient struct {
	httpClient      *http.Client
	translateErrors bool
}

// NewSearchClient creates a new search client.
func NewSearchClient(httpClient *http.Client, translateErrors bool) *SearchClient {
	return &SearchClient{
		httpClient:      httpClient,
		translateErrors: translateErrors,
	}
}

func (c *SearchClient) run(ctx context.Context, q *communet.Query) (*http.Response, error) {
	if q == nil {
		return nil, constants.ErrQueryRequired
	}

	err := q.Validate()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("q", q.String())

	return c.httpClient.Get(ctx, constants.APIPathSearch, values)
}

// Run implements communet.SearchClient.Run.
func (c *SearchClient) Run(ctx context.Context, q *communet.Query) (*communet.SearchResult, error) {
	resp, err := c.run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}

	list, err := decodeList[map[string]interface{}](resp, "search")
	if err != nil {
		return nil, err
	}

	return &communet.SearchResult{
		Size:       list.Data.Size,
		Items:      list.Data.Items,
		NextCursor: list.Data.NextCursor,
	}, nil
}

// RunNormalized implements communet.SearchClient.RunNormalized. Platform
// error statuses are normalized rather than raised; only transport failures
// surface as errors.
func (c *SearchClient) RunNormalized(ctx context.Context, q *communet.Query) (*communet.NormalizedResult, error) {
	resp, err := c.run(ctx, q)

	result, err := normalizeV2(resp, err, c.translateErrors)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}

	return result, nil
}
