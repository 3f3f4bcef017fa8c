package client

import (
	"context"
	"fmt"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// NodesClient implements communet.NodesClient.
type NodesClient struct {
	httpClient *http.Client
}

// NewNodesClient creates a new nodes client.
func NewNodesClient(httpClient *http.Client) *NodesClient {
	return &NodesClient{
		httpClient: httpClient,
	}
}

// Get implements communet.NodesClient.Get. The reference is resolved to a
// canonical node ID here, at the boundary; everything past this point works
// with plain IDs.
func (c *NodesClient) Get(ctx context.Context, ref communet.NodeRef) (*communet.Node, error) {
	nodeID, err := ref.Resolve()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathV2+"/nodes/"+nodeID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting node: %w", err)
	}

	return decodeV2[communet.Node](resp, "node")
}

// List implements communet.NodesClient.List.
func (c *NodesClient) List(ctx context.Context, params *communet.ListParams) (*communet.ListResponse[communet.Node], error) {
	return listViaSearch[communet.Node](ctx, c.httpClient, "nodes", params)
}
