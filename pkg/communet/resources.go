package communet

import (
	"context"
	"net/url"
)

// BoardsClient manages conversation boards.
type BoardsClient interface {
	Create(ctx context.Context, request *BoardCreateRequest) (*Board, error)
	// CreateWithFields performs the same create but returns the projection
	// selected by fields instead of raising on API errors, so batch callers
	// can keep going.
	CreateWithFields(ctx context.Context, request *BoardCreateRequest, fields ReturnFields) (interface{}, error)
	Get(ctx context.Context, boardID string) (*Board, error)
	List(ctx context.Context, params *ListParams) (*ListResponse[Board], error)
	Update(ctx context.Context, boardID string, request *BoardUpdateRequest) (*Board, error)
	Delete(ctx context.Context, boardID string) error
}

// CategoriesClient manages categories.
type CategoriesClient interface {
	Create(ctx context.Context, request *CategoryCreateRequest) (*Category, error)
	Get(ctx context.Context, categoryID string) (*Category, error)
	List(ctx context.Context, params *ListParams) (*ListResponse[Category], error)
	Update(ctx context.Context, categoryID string, request *CategoryUpdateRequest) (*Category, error)
	Delete(ctx context.Context, categoryID string) error
}

// NodesClient reads the community structure tree.
type NodesClient interface {
	// Get resolves the reference (ID, URL, or collection) to a canonical node
	// ID at the boundary and fetches the node.
	Get(ctx context.Context, ref NodeRef) (*Node, error)
	List(ctx context.Context, params *ListParams) (*ListResponse[Node], error)
}

// GroupHubsClient manages group hubs.
type GroupHubsClient interface {
	Create(ctx context.Context, request *GroupHubCreateRequest) (*GroupHub, error)
	Get(ctx context.Context, hubID string) (*GroupHub, error)
	List(ctx context.Context, params *ListParams) (*ListResponse[GroupHub], error)
	Update(ctx context.Context, hubID string, request *GroupHubUpdateRequest) (*GroupHub, error)
	Delete(ctx context.Context, hubID string) error
}

// MessagesClient manages messages.
type MessagesClient interface {
	Create(ctx context.Context, request *MessageCreateRequest) (*Message, error)
	// CreateWithFields is the structured-return variant of Create.
	CreateWithFields(ctx context.Context, request *MessageCreateRequest, fields ReturnFields) (interface{}, error)
	// CreateWithAttachments publishes a message with file attachments in a
	// single multipart request.
	CreateWithAttachments(ctx context.Context, request *MessageCreateRequest, files []FileAttachment) (*Message, error)
	Get(ctx context.Context, messageID string) (*Message, error)
	Update(ctx context.Context, messageID string, request *MessageUpdateRequest) (*Message, error)
	Delete(ctx context.Context, messageID string) error
	// Kudo gives a kudo to the message on behalf of the session user.
	Kudo(ctx context.Context, messageID string) error
}

// FileAttachment pairs a field name and filename with the file content for
// multipart uploads.
type FileAttachment struct {
	Field    string
	Filename string
	Content  []byte
}

// UsersClient manages users.
type UsersClient interface {
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	Get(ctx context.Context, userID string) (*User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	Delete(ctx context.Context, userID string) error
	// OnlineCount returns the number of users currently online, served by a
	// v1 endpoint.
	OnlineCount(ctx context.Context) (int, error)
}

// TagsClient manages content tags.
type TagsClient interface {
	List(ctx context.Context, messageID string) (*ListResponse[Tag], error)
	// Apply adds tags to a message.
	Apply(ctx context.Context, messageID string, tags []string) error
}

// AttachmentsClient manages message attachments.
type AttachmentsClient interface {
	// Upload attaches a file to an existing message via a multipart request.
	Upload(ctx context.Context, messageID string, file FileAttachment) (*Attachment, error)
	Get(ctx context.Context, attachmentID string) (*Attachment, error)
	Download(ctx context.Context, attachmentID string) ([]byte, error)
}

// AlbumsClient manages image albums.
type AlbumsClient interface {
	Create(ctx context.Context, request *AlbumCreateRequest) (*Album, error)
	Get(ctx context.Context, albumID string) (*Album, error)
	List(ctx context.Context, params *ListParams) (*ListResponse[Album], error)
}

// SearchResult is the payload of a LiQL search: the raw item objects plus
// paging metadata.
type SearchResult struct {
	Size       int
	Items      []map[string]interface{}
	NextCursor string
}

// SearchClient runs LiQL queries against the v2 search endpoint.
type SearchClient interface {
	Run(ctx context.Context, q *Query) (*SearchResult, error)
	// RunNormalized returns the full normalized result instead of just the
	// collection payload.
	RunNormalized(ctx context.Context, q *Query) (*NormalizedResult, error)
}

// LegacyClient provides raw access to v1 endpoints.
type LegacyClient interface {
	// Get issues a GET against the given v1 relative path and normalizes the
	// XML-derived response.
	Get(ctx context.Context, path string, params url.Values) (*NormalizedResult, error)
	// Post issues a form-encoded POST against the given v1 relative path.
	Post(ctx context.Context, path string, form url.Values) (*NormalizedResult, error)
	// List issues a GET against a v1 collection path, rendering the list
	// params as the page/size arguments the legacy endpoints expect.
	List(ctx context.Context, path string, params *ListParams) (*NormalizedResult, error)
}
