package client

import (
	"context"
	"fmt"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// BoardsClient implements communet.BoardsClient.
type BoardsClient struct {
	httpClient      *http.Client
	translateErrors bool
}

// NewBoardsClient creates a new boards client.
func NewBoardsClient(httpClient *http.Client, translateErrors bool) *BoardsClient {
	return &BoardsClient{
		httpClient:      httpClient,
		translateErrors: translateErrors,
	}
}

// boardCreatePayload carries the wire shape of a board creation, including
// the discriminator and parent reference the request type keeps out of its
// own JSON form.
type boardCreatePayload struct {
	*communet.BoardCreateRequest

	Type   string             `json:"type"`
	Parent *communet.Resource `json:"parent_category,omitempty"`
}

func boardPayload(request *communet.BoardCreateRequest) *boardCreatePayload {
	payload := &boardCreatePayload{
		BoardCreateRequest: request,
		Type:               "board",
	}

	if request.ParentCategoryID != "" {
		payload.Parent = &communet.Resource{ID: request.ParentCategoryID}
	}

	return payload
}

// Create implements communet.BoardsClient.Create.
func (c *BoardsClient) Create(ctx context.Context, request *communet.BoardCreateRequest) (*communet.Board, error) {
	resp, err := c.httpClient.Post(ctx, constants.APIPathV2+"/boards", v2Payload(boardPayload(request)))
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}

	return decodeV2[communet.Board](resp, "board")
}

// CreateWithFields implements communet.BoardsClient.CreateWithFields. API
// errors are normalized and projected instead of raised so batch callers can
// continue past individual failures.
func (c *BoardsClient) CreateWithFields(ctx context.Context, request *communet.BoardCreateRequest, fields communet.ReturnFields) (interface{}, error) {
	resp, err := c.httpClient.Post(ctx, constants.APIPathV2+"/boards", v2Payload(boardPayload(request)))

	result, err := normalizeV2(resp, err, c.translateErrors)
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}

	return result.Project(fields), nil
}

// Get implements communet.BoardsClient.Get.
func (c *BoardsClient) Get(ctx context.Context, boardID string) (*communet.Board, error) {
	if boardID == "" {
		return nil, constants.ErrBoardIDRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathV2+"/boards/"+boardID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting board: %w", err)
	}

	return decodeV2[communet.Board](resp, "board")
}

// List implements communet.BoardsClient.List.
func (c *BoardsClient) List(ctx context.Context, params *communet.ListParams) (*communet.ListResponse[communet.Board], error) {
	return listViaSearch[communet.Board](ctx, c.httpClient, "boards", params)
}

// Update implements communet.BoardsClient.Update.
func (c *BoardsClient) Update(ctx context.Context, boardID string, request *communet.BoardUpdateRequest) (*communet.Board, error) {
	if boardID == "" {
		return nil, constants.ErrBoardIDRequired
	}

	resp, err := c.httpClient.Put(ctx, constants.APIPathV2+"/boards/"+boardID, v2Payload(request))
	if err != nil {
		return nil, fmt.Errorf("updating board: %w", err)
	}

	return decodeV2[communet.Board](resp, "board")
}

// Delete implements communet.BoardsClient.Delete.
func (c *BoardsClient) Delete(ctx context.Context, boardID string) error {
	if boardID == "" {
		return constants.ErrBoardIDRequired
	}

	_, err := c.httpClient.Delete(ctx, constants.APIPathV2+"/boards/"+boardID)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}

	return nil
}
