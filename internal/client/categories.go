package client

import (
	"context"
	"fmt"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// CategoriesClient implements communet.CategoriesClient.
type CategoriesClient struct {
	httpClient *http.Client
}

// NewCategoriesClient creates a new categories client.
func NewCategoriesClient(httpClient *http.Client) *CategoriesClient {
	return &CategoriesClient{
		httpClient: httpClient,
	}
}

type categoryCreatePayload struct {
	*communet.CategoryCreateRequest

	Type   string             `json:"type"`
	Parent *communet.Resource `json:"parent_category,omitempty"`
}

// Create implements communet.CategoriesClient.Create.
func (c *CategoriesClient) Create(ctx context.Context, request *communet.CategoryCreateRequest) (*communet.Category, error) {
	payload := &categoryCreatePayload{
		CategoryCreateRequest: request,
		Type:                  "category",
	}

	if request.ParentCategoryID != "" {
		payload.Parent = &communet.Resource{ID: request.ParentCategoryID}
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathV2+"/categories", v2Payload(payload))
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return decodeV2[communet.Category](resp, "category")
}

// Get implements communet.CategoriesClient.Get.
func (c *CategoriesClient) Get(ctx context.Context, categoryID string) (*communet.Category, error) {
	if categoryID == "" {
		return nil, constants.ErrCategoryIDRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathV2+"/categories/"+categoryID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}

	return decodeV2[communet.Category](resp, "category")
}

// List implements communet.CategoriesClient.List.
func (c *CategoriesClient) List(ctx context.Context, params *communet.ListParams) (*communet.ListResponse[communet.Category], error) {
	return listViaSearch[communet.Category](ctx, c.httpClient, "categories", params)
}

// Update implements communet.CategoriesClient.Update.
func (c *CategoriesClient) Update(ctx context.Context, categoryID string, request *communet.CategoryUpdateRequest) (*communet.Category, error) {
	if categoryID == "" {
		return nil, constants.ErrCategoryIDRequired
	}

	resp, err := c.httpClient.Put(ctx, constants.APIPathV2+"/categories/"+categoryID, v2Payload(request))
	if err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}

	return decodeV2[communet.Category](resp, "category")
}

// Delete implements communet.CategoriesClient.Delete.
func (c *CategoriesClient) Delete(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return constants.ErrCategoryIDRequired
	}

	_, err := c.httpClient.Delete(ctx, constants.APIPathV2+"/categories/"+categoryID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}
