package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/internal/http"
	"github.com/communet-io/communet/pkg/communet"
)

// UsersClient implements communet.UsersClient.
type UsersClient struct {
	httpClient      *http.Client
	translateErrors bool
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, translateErrors bool) *UsersClient {
	return &UsersClient{
		httpClient:      httpClient,
		translateErrors: translateErrors,
	}
}

type userCreatePayload struct {
	*communet.UserCreateRequest

	Type string `json:"type"`
}

// Create implements communet.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, request *communet.UserCreateRequest) (*communet.User, error) {
	payload := &userCreatePayload{
		UserCreateRequest: request,
		Type:              "user",
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathV2+"/users", v2Payload(payload))
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return decodeV2[communet.User](resp, "user")
}

// Get implements communet.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID string) (*communet.User, error) {
	if userID == "" {
		return nil, constants.ErrUserIDRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.APIPathV2+"/users/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decodeV2[communet.User](resp, "user")
}

// GetByLogin implements communet.UsersClient.GetByLogin. Logins are not
// addressable by path, so the lookup goes through the search endpoint.
func (c *UsersClient) GetByLogin(ctx context.Context, login string) (*communet.User, error) {
	if login == "" {
		return nil, constants.ErrUserIDRequired
	}

	query := communet.NewQuery("users").Where("login", "=", login).Limit(1)

	values := url.Values{}
	values.Set("q", query.String())

	resp, err := c.httpClient.Get(ctx, constants.APIPathSearch, values)
	if err != nil {
		return nil, fmt.Errorf("looking up user by login: %w", err)
	}

	list, err := decodeList[communet.User](resp, "users")
	if err != nil {
		return nil, err
	}

	if len(list.Data.Items) == 0 {
		return nil, communet.NewGetError(404, "user not found", "no user with login "+login)
	}

	return &list.Data.Items[0], nil
}

// Delete implements communet.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return constants.ErrUserIDRequired
	}

	_, err := c.httpClient.Delete(ctx, constants.APIPathV2+"/users/"+userID)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}

// OnlineCount implements communet.UsersClient.OnlineCount. The online-user
// counter never migrated to v2, so this reads the legacy endpoint and pulls
// the count out of the normalized value.
func (c *UsersClient) OnlineCount(ctx context.Context) (int, error) {
	values := url.Values{}
	values.Set(constants.V1JSONFormatParam, "json")

	resp, err := c.httpClient.Get(ctx, constants.APIPathV1+"/users/online/count", values)
	if err != nil {
		return 0, fmt.Errorf("getting online user count: %w", err)
	}

	result, err := communet.ParseV1Response(resp.Body, resp.StatusCode, c.translateErrors)
	if err != nil {
		return 0, err
	}

	count, ok := result.Value.(int)
	if !ok {
		return 0, communet.ErrMalformedV1Response
	}

	return count, nil
}
