package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// Static errors for attachment operations.
var (
	ErrAttachmentIDRequired = errors.New("attachment ID is required")
	ErrNoDownloadURL        = errors.New("attachment has no download URL")
)

// AttachmentsClient implements communet.AttachmentsClient.
type AttachmentsClient struct {
	httpClient *http.Client
}

// NewAttachmentsClient creates a new attachments client.
func NewAttachmentsClient(httpClient *http.Client) *AttachmentsClient {
	return &AttachmentsClient{
		httpClient: httpClient,
	}
}

// Upload implements communet.AttachmentsClient.Upload. The attachment
// metadata travels as the api.request multipart field and the file content
// as its own part.
func (c *AttachmentsClient) Upload(ctx context.Context, messageID string, file communet.FileAttachment) (*communet.Attachment, error) {
	if messageID == "" {
		return nil, constants.ErrMessageIDRequired
	}

	fields := []http.FormField{
		{Name: "api.request", Value: fmt.Sprintf(`{"data": {"type": "attachment", "filename": %q}}`, file.Filename)},
	}

	parts := []http.FilePart{{
		Field:    file.Field,
		Filename: file.Filename,
		Content:  file.Content,
	}}

	resp, err := c.httpClient.PostMultipart(ctx, constants.APIPathV2+"/messages/"+messageID+"/attachments", fields, parts)
	if err != nil {
		return nil, fmt.Errorf("uploading attachment: %w", err)
	}

	return decodeV2[communet.Attachment](resp, "attachment")
}

// Get implements communet.AttachmentsClient.Get.
func (c *AttachmentsClient) Get(ctx context.Context, attachmentID string) (*communet.Attachment, error) {
	if attachmentID == "" {
		return nil, ErrAttachmentIDRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathV2+"/attachments/"+attachmentID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting attachment: %w", err)
	}

	return decodeV2[communet.Attachment](resp, "attachment")
}

// Download implements communet.AttachmentsClient.Download. The content URL
// is discovered from the attachment metadata and fetched as raw bytes.
func (c *AttachmentsClient) Download(ctx context.Context, attachmentID string) ([]byte, error) {
	attachment, err := c.Get(ctx, attachmentID)
	if err != nil {
		return nil, err
	}

	if attachment.URL == "" {
		return nil, ErrNoDownloadURL
	}

	resp, err := c.httpClient.GetRaw(ctx, attachment.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading attachment: %w", err)
	}

	return resp.Body, nil
}
