package commclient_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/communet-io/communet/pkg/commclient"
	"github.com/communet-io/communet/pkg/communet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &communet.Config{
			CommunityURL: "https://community.example.com",
			SessionKey:   "abc123",
		}

		client, err := commclient.New(config)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := commclient.New(nil)
		require.ErrorIs(t, err, communet.ErrConfigRequired)
	})

	t.Run("missing community URL", func(t *testing.T) {
		t.Parallel()

		_, err := commclient.New(&communet.Config{})
		require.ErrorIs(t, err, communet.ErrCommunityURLRequired)
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		t.Parallel()

		_, err := commclient.New(&communet.Config{CommunityURL: "ftp://community.example.com"})
		require.ErrorIs(t, err, communet.ErrInvalidCommunityURL)
	})

	t.Run("defaults scheme to https and trims trailing slash", func(t *testing.T) {
		t.Parallel()

		config := &communet.Config{CommunityURL: "community.example.com/", SessionKey: "k"}

		_, err := commclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://community.example.com", config.CommunityURL)
	})
}

func TestNewWithSessionKey(t *testing.T) {
	t.Parallel()

	client, err := commclient.NewWithSessionKey("https://community.example.com", "abc123")
	require.NoError(t, err)
	assert.NotNil(t, client)

	token, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestNewWithSSO(t *testing.T) {
	t.Parallel()

	client, err := commclient.NewWithSSO("https://community.example.com", "sso-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithClientCredentials(t *testing.T) {
	t.Parallel()

	client, err := commclient.NewWithClientCredentials("https://community.example.com", "client-id", "client-secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithPassword(t *testing.T) {
	t.Parallel()

	client, err := commclient.NewWithPassword("https://community.example.com", "api-user", "secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/2.0/boards/product-news":
			fmt.Fprint(writer, `{
				"status": "success",
				"http_code": 200,
				"data": {"type": "board", "id": "product-news", "title": "Product News"}
			}`)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := commclient.NewWithSessionKey(server.URL, "abc123")
	require.NoError(t, err)

	board, err := client.Boards().Get(context.Background(), "product-news")
	require.NoError(t, err)
	assert.Equal(t, "product-news", board.ID)
	assert.Equal(t, "Product News", board.Title)
}
