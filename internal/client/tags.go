package client

import (
	"context"
	"fmt"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// TagsClient implements communet.TagsClient.
type TagsClient struct {
	httpClient *http.Client
}

// NewTagsClient creates a new tags client.
func NewTagsClient(httpClient *http.Client) *TagsClient {
	return &TagsClient{
		httpClient: httpClient,
	}
}

// List implements communet.TagsClient.List.
func (c *TagsClient) List(ctx context.Context, messageID string) (*communet.ListResponse[communet.Tag], error) {
	if messageID == "" {
		return nil, constants.ErrMessageIDRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathV2+"/messages/"+messageID+"/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	return decodeList[communet.Tag](resp, "tags")
}

// Apply implements communet.TagsClient.Apply.
func (c *TagsClient) Apply(ctx context.Context, messageID string, tags []string) error {
	if messageID == "" {
		return constants.ErrMessageIDRequired
	}

	if len(tags) == 0 {
		return nil
	}

	items := make([]communet.Tag, 0, len(tags))
	for _, text := range tags {
		items = append(items, communet.Tag{Text: text})
	}

	payload := v2Payload(map[string]interface{}{
		"type":  "tags",
		"items": items,
	})

	_, err := c.httpClient.Post(ctx, constants.APIPathV2+"/messages/"+messageID+"/tags", payload)
	if err != nil {
		return fmt.Errorf("applying tags: %w", err)
	}

	return nil
}
