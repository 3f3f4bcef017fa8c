package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// MessagesClient implements communet.MessagesClient.
type MessagesClient struct {
	httpClient      *http.Client
	translateErrors bool
}

// NewMessagesClient creates a new messages client.
func NewMessagesClient(httpClient *http.Client, translateErrors bool) *MessagesClient {
	return &MessagesClient{
		httpClient:      httpClient,
		translateErrors: translateErrors,
	}
}

type tagItems struct {
	Items []communet.Tag `json:"items"`
}

// messageCreatePayload carries the wire shape of a message publication. The
// board reference and tag list live outside the request type's JSON form.
type messageCreatePayload struct {
	*communet.MessageCreateRequest

	Type  string             `json:"type"`
	Board *communet.Resource `json:"board"`
	Tags  *tagItems          `json:"tags,omitempty"`
}

func messagePayload(request *communet.MessageCreateRequest) *messageCreatePayload {
	payload := &messageCreatePayload{
		MessageCreateRequest: request,
		Type:                 "message",
		Board:                &communet.Resource{ID: request.BoardID},
	}

	if len(request.TagNames) > 0 {
		tags := make([]communet.Tag, 0, len(request.TagNames))
		for _, name := range request.TagNames {
			tags = append(tags, communet.Tag{Text: name})
		}

		payload.Tags = &tagItems{Items: tags}
	}

	return payload
}

// Create implements communet.MessagesClient.Create.
func (c *MessagesClient) Create(ctx context.Context, request *communet.MessageCreateRequest) (*communet.Message, error) {
	if request.Subject == "" {
		return nil, constants.ErrSubjectRequired
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathV2+"/messages", v2Payload(messagePayload(request)))
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	return decodeV2[communet.Message](resp, "message")
}

// CreateWithFields implements communet.MessagesClient.CreateWithFields.
func (c *MessagesClient) CreateWithFields(ctx context.Context, request *communet.MessageCreateRequest, fields communet.ReturnFields) (interface{}, error) {
	if request.Subject == "" {
		return nil, constants.ErrSubjectRequired
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathV2+"/messages", v2Payload(messagePayload(request)))

	result, err := normalizeV2(resp, err, c.translateErrors)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	return result.Project(fields), nil
}

// CreateWithAttachments implements communet.MessagesClient.CreateWithAttachments.
// The message body travels as the api.request multipart field and each file
// as its own part; the multipart content type is set at the transport level.
func (c *MessagesClient) CreateWithAttachments(ctx context.Context, request *communet.MessageCreateRequest, files []communet.FileAttachment) (*communet.Message, error) {
	if request.Subject == "" {
		return nil, constants.ErrSubjectRequired
	}

	body, err := json.Marshal(v2Payload(messagePayload(request)))
	if err != nil {
		return nil, fmt.Errorf("encoding message payload: %w", err)
	}

	fields := []http.FormField{{Name: "api.request", Value: string(body)}}

	parts := make([]http.FilePart, 0, len(files))
	for _, file := range files {
		parts = append(parts, http.FilePart{
			Field:    file.Field,
			Filename: file.Filename,
			Content:  file.Content,
		})
	}

	resp, err := c.httpClient.PostMultipart(ctx, constants.APIPathV2+"/messages", fields, parts)
	if err != nil {
		return nil, fmt.Errorf("creating message with attachments: %w", err)
	}

	return decodeV2[communet.Message](resp, "message")
}

// Get implements communet.MessagesClient.Get.
func (c *MessagesClient) Get(ctx context.Context, messageID string) (*communet.Message, error) {
	if messageID == "" {
		return nil, constants.ErrMessageIDRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathV2+"/messages/"+messageID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}

	return decodeV2[communet.Message](resp, "message")
}

// Update implements communet.MessagesClient.Update.
func (c *MessagesClient) Update(ctx context.Context, messageID string, request *communet.MessageUpdateRequest) (*communet.Message, error) {
	if messageID == "" {
		return nil, constants.ErrMessageIDRequired
	}

	resp, err := c.httpClient.Put(ctx, constants.APIPathV2+"/messages/"+messageID, v2Payload(request))
	if err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}

	return decodeV2[communet.Message](resp, "message")
}

// Delete implements communet.MessagesClient.Delete.
func (c *MessagesClient) Delete(ctx context.Context, messageID string) error {
	if messageID == "" {
		return constants.ErrMessageIDRequired
	}

	_, err := c.httpClient.Delete(ctx, constants.APIPathV2+"/messages/"+messageID)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}

	return nil
}

// Kudo implements communet.MessagesClient.Kudo.
func (c *MessagesClient) Kudo(ctx context.Context, messageID string) error {
	if messageID == "" {
		return constants.ErrMessageIDRequired
	}

	payload := v2Payload(map[string]interface{}{"type": "kudo"})

	_, err := c.httpClient.Post(ctx, constants.APIPathV2+"/messages/"+messageID+"/kudos", payload)
	if err != nil {
		return fmt.Errorf("giving kudo: %w", err)
	}

	return nil
}
