package communet

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Resource holds the common fields every v2 resource carries.
type Resource struct {
	Type     string `json:"type,omitempty"      yaml:"type,omitempty"`
	ID       string `json:"id,omitempty"        yaml:"id,omitempty"`
	Href     string `json:"href,omitempty"      yaml:"href,omitempty"`
	ViewHref string `json:"view_href,omitempty" yaml:"view_href,omitempty"`
}

// ConversationStyle enumerates the discussion styles a board can have.
type ConversationStyle string

const (
	StyleBlog    ConversationStyle = "blog"
	StyleForum   ConversationStyle = "forum"
	StyleTKB     ConversationStyle = "tkb"
	StyleIdea    ConversationStyle = "idea"
	StyleQA      ConversationStyle = "qanda"
	StyleContest ConversationStyle = "contest"
)

// Board represents a conversation board.
type Board struct {
	Resource

	Title             string            `json:"title,omitempty"              yaml:"title,omitempty"`
	ShortTitle        string            `json:"short_title,omitempty"        yaml:"short_title,omitempty"`
	Description       string            `json:"description,omitempty"        yaml:"description,omitempty"`
	ConversationStyle ConversationStyle `json:"conversation_style,omitempty" yaml:"conversation_style,omitempty"`
	Hidden            bool              `json:"hidden,omitempty"             yaml:"hidden,omitempty"`
	Parent            *Category         `json:"parent_category,omitempty"    yaml:"parent_category,omitempty"`
	CreationDate      time.Time         `json:"creation_date,omitzero"       yaml:"creation_date,omitempty"`
	Language          string            `json:"language,omitempty"           yaml:"language,omitempty"`
}

// BoardCreateRequest describes a board to create.
type BoardCreateRequest struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	ConversationStyle ConversationStyle `json:"conversation_style"`
	Description       string            `json:"description,omitempty"`
	ParentCategoryID  string            `json:"-"`
	Hidden            bool              `json:"hidden,omitempty"`
	Label             string            `json:"label,omitempty"`
}

// BoardUpdateRequest describes a partial board update.
type BoardUpdateRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Hidden      *bool  `json:"hidden,omitempty"`
}

// Category represents a container of boards and sub-categories.
type Category struct {
	Resource

	Title        string    `json:"title,omitempty"         yaml:"title,omitempty"`
	ShortTitle   string    `json:"short_title,omitempty"   yaml:"short_title,omitempty"`
	Description  string    `json:"description,omitempty"   yaml:"description,omitempty"`
	Parent       *Category `json:"parent_category,omitempty" yaml:"parent_category,omitempty"`
	Position     int       `json:"position,omitempty"      yaml:"position,omitempty"`
	Hidden       bool      `json:"hidden,omitempty"        yaml:"hidden,omitempty"`
	CreationDate time.Time `json:"creation_date,omitzero"  yaml:"creation_date,omitempty"`
	Language     string    `json:"language,omitempty"      yaml:"language,omitempty"`
}

// CategoryCreateRequest describes a category to create.
type CategoryCreateRequest struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	ParentCategoryID string `json:"-"`
	Position         int    `json:"position,omitempty"`
}

// CategoryUpdateRequest describes a partial category update.
type CategoryUpdateRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Position    *int   `json:"position,omitempty"`
}

// Node is the generic structure element underlying boards, categories, and
// group hubs.
type Node struct {
	Resource

	NodeType    string `json:"node_type,omitempty"   yaml:"node_type,omitempty"`
	DisplayID   string `json:"display_id,omitempty"  yaml:"display_id,omitempty"`
	Title       string `json:"title,omitempty"       yaml:"title,omitempty"`
	ShortTitle  string `json:"short_title,omitempty" yaml:"short_title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Depth       int    `json:"depth,omitempty"       yaml:"depth,omitempty"`
	Position    int    `json:"position,omitempty"    yaml:"position,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"      yaml:"hidden,omitempty"`
	Parent      *Node  `json:"parent,omitempty"      yaml:"parent,omitempty"`
}

// MembershipType enumerates group hub membership modes.
type MembershipType string

const (
	MembershipOpen         MembershipType = "open"
	MembershipClosed       MembershipType = "closed"
	MembershipClosedHidden MembershipType = "closed_hidden"
)

// GroupHub represents a group hub.
type GroupHub struct {
	Resource

	Title          string         `json:"title,omitempty"           yaml:"title,omitempty"`
	Description    string         `json:"description,omitempty"     yaml:"description,omitempty"`
	MembershipType MembershipType `json:"membership_type,omitempty" yaml:"membership_type,omitempty"`
	MemberCount    int            `json:"member_count,omitempty"    yaml:"member_count,omitempty"`
	CreationDate   time.Time      `json:"creation_date,omitzero"    yaml:"creation_date,omitempty"`
}

// GroupHubCreateRequest describes a group hub to create.
type GroupHubCreateRequest struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	MembershipType MembershipType `json:"membership_type,omitempty"`
}

// GroupHubUpdateRequest describes a partial group hub update.
type GroupHubUpdateRequest struct {
	Title          string         `json:"title,omitempty"`
	Description    string         `json:"description,omitempty"`
	MembershipType MembershipType `json:"membership_type,omitempty"`
}

// Message represents a message (post, article, idea, or reply).
type Message struct {
	Resource

	Subject      string       `json:"subject,omitempty"       yaml:"subject,omitempty"`
	Body         string       `json:"body,omitempty"          yaml:"body,omitempty"`
	TeaserText   string       `json:"teaser,omitempty"        yaml:"teaser,omitempty"`
	Board        *Board       `json:"board,omitempty"         yaml:"board,omitempty"`
	Author       *User        `json:"author,omitempty"        yaml:"author,omitempty"`
	PostTime     time.Time    `json:"post_time,omitzero"      yaml:"post_time,omitempty"`
	Depth        int          `json:"depth,omitempty"         yaml:"depth,omitempty"`
	ReadOnly     bool         `json:"read_only,omitempty"     yaml:"read_only,omitempty"`
	KudosCount   int          `json:"kudos_count,omitempty"   yaml:"kudos_count,omitempty"`
	Tags         []Tag        `json:"-"                       yaml:"-"`
	Attachments  []Attachment `json:"-"                       yaml:"-"`
	CanonicalURL string       `json:"canonical_url,omitempty" yaml:"canonical_url,omitempty"`
}

// MessageCreateRequest describes a message to publish.
type MessageCreateRequest struct {
	Subject  string   `json:"subject"`
	Body     string   `json:"body,omitempty"`
	BoardID  string   `json:"-"`
	TagNames []string `json:"-"`
	Teaser   string   `json:"teaser,omitempty"`
}

// MessageUpdateRequest describes a partial message update.
type MessageUpdateRequest struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
	Teaser  string `json:"teaser,omitempty"`
}

// User represents a community member.
type User struct {
	Resource

	Login            string    `json:"login,omitempty"             yaml:"login,omitempty"`
	Email            string    `json:"email,omitempty"             yaml:"email,omitempty"`
	FirstName        string    `json:"first_name,omitempty"        yaml:"first_name,omitempty"`
	LastName         string    `json:"last_name,omitempty"         yaml:"last_name,omitempty"`
	Rank             *Rank     `json:"rank,omitempty"              yaml:"rank,omitempty"`
	RegistrationTime time.Time `json:"registration_time,omitzero"  yaml:"registration_time,omitempty"`
	Banned           bool      `json:"banned,omitempty"            yaml:"banned,omitempty"`
	Deleted          bool      `json:"deleted,omitempty"           yaml:"deleted,omitempty"`
}

// Rank represents a user rank.
type Rank struct {
	Resource

	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// UserCreateRequest describes a user to provision.
type UserCreateRequest struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Biography string `json:"biography,omitempty"`
}

// Tag represents a content tag.
type Tag struct {
	Resource

	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Attachment represents a file attached to a message.
type Attachment struct {
	Resource

	Filename    string `json:"filename,omitempty"     yaml:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"         yaml:"size,omitempty"`
	URL         string `json:"url,omitempty"          yaml:"url,omitempty"`
}

// Album represents an image album.
type Album struct {
	Resource

	Title       string `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Owner       *User  `json:"owner,omitempty"       yaml:"owner,omitempty"`
}

// AlbumCreateRequest describes an album to create.
type AlbumCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// V2Response is the native-JSON v2 response envelope.
type V2Response[T any] struct {
	Status           string `json:"status"`
	Message          string `json:"message,omitempty"`
	DeveloperMessage string `json:"developer_message,omitempty"`
	Data             T      `json:"data,omitempty"`
}

// ListData is the collection payload inside a v2 list response.
type ListData[T any] struct {
	Type         string `json:"type,omitempty"`
	ListItemType string `json:"list_item_type,omitempty"`
	Size         int    `json:"size"`
	Items        []T    `json:"items"`
	NextCursor   string `json:"next_cursor,omitempty"`
}

// ListResponse is a v2 response carrying a collection.
type ListResponse[T any] struct {
	Status           string      `json:"status"`
	Message          string      `json:"message,omitempty"`
	DeveloperMessage string      `json:"developer_message,omitempty"`
	Data             ListData[T] `json:"data"`
}

// ListParams holds common collection options, rendered onto the LiQL query
// issued for list operations.
type ListParams struct {
	// Fields restricts the selected fields; default is all.
	Fields []string
	// Where adds equality constraints (field -> value).
	Where map[string]string
	// OrderBy sets the sort field; prefix with "-" for descending.
	OrderBy string
	// Limit caps the number of returned items.
	Limit int
	// Offset skips the first n items.
	Offset int
}

// ToQuery renders the params as a LiQL query for the given collection.
func (p *ListParams) ToQuery(collection string) *Query {
	q := NewQuery(collection)

	if p == nil {
		return q
	}

	if len(p.Fields) > 0 {
		q.Select(p.Fields...)
	}

	for field, value := range p.Where {
		q.Where(field, "=", value)
	}

	if p.OrderBy != "" {
		field, descending := p.OrderBy, false
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			descending = true
		}

		q.OrderBy(field, descending)
	}

	if p.Limit > 0 {
		q.Limit(p.Limit)
	}

	if p.Offset > 0 {
		q.Offset(p.Offset)
	}

	return q
}

// ToValues renders the params as v1-style query parameters for the legacy
// endpoints that take page/size arguments instead of LiQL.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	if p.Limit > 0 {
		values.Set("page_size", strconv.Itoa(p.Limit))
	}

	if p.Offset > 0 && p.Limit > 0 {
		values.Set("page", strconv.Itoa(p.Offset/p.Limit+1))
	}

	if p.OrderBy != "" {
		values.Set("sort_by", p.OrderBy)
	}

	return values
}
