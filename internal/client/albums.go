package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// ErrAlbumIDRequired guards the album-scoped operations.
var ErrAlbumIDRequired = errors.New("album ID is required")

// AlbumsClient implements communet.AlbumsClient.
type AlbumsClient struct {
	httpClient *http.Client
}

// NewAlbumsClient creates a new albums client.
func NewAlbumsClient(httpClient *http.Client) *AlbumsClient {
	return &AlbumsClient{
		httpClient: httpClient,
	}
}

type albumCreatePayload struct {
	*communet.AlbumCreateRequest

	Type string `json:"type"`
}

// Create implements communet.AlbumsClient.Create.
func (c *AlbumsClient) Create(ctx context.Context, request *communet.AlbumCreateRequest) (*communet.Album, error) {
	payload := &albumCreatePayload{
		AlbumCreateRequest: request,
		Type:               "album",
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathV2+"/albums", v2Payload(payload))
	if err != nil {
		return nil, fmt.Errorf("creating album: %w", err)
	}

	return decodeV2[communet.Album](resp, "album")
}

// Get implements communet.AlbumsClient.Get.
func (c *AlbumsClient) Get(ctx context.Context, albumID string) (*communet.Album, error) {
	if albumID == "" {
		return nil, ErrAlbumIDRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathV2+"/albums/"+albumID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting album: %w", err)
	}

	return decodeV2[communet.Album](resp, "album")
}

// List implements communet.AlbumsClient.List.
func (c *AlbumsClient) List(ctx context.Context, params *communet.ListParams) (*communet.ListResponse[communet.Album], error) {
	return listViaSearch[communet.Album](ctx, c.httpClient, "albums", params)
}
