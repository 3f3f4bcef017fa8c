package commclient_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/pkg/commclient"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadHelperConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfigFile(t, `
community: https://community.example.com
username: api-user
password: secret
tenant_id: acme
translate_errors: true
http_timeout: 45s
retry_max: 5
retry_wait_min: 500ms
retry_wait_max: 10s
`)

		config, err := commclient.LoadHelperConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://community.example.com", config.CommunityURL)
		assert.Equal(t, "api-user", config.Username)
		assert.Equal(t, "acme", config.TenantID)
		assert.True(t, config.TranslateErrors)
		assert.True(t, config.PreferJSON)
		assert.Equal(t, 45*time.Second, config.HTTPTimeout)
		assert.Equal(t, 5, config.RetryMax)
		assert.Equal(t, 500*time.Millisecond, config.RetryWaitMin)
	})

	t.Run("prefer_json can be disabled", func(t *testing.T) {
		path := writeConfigFile(t, `
community: https://community.example.com
session_key: abc123
prefer_json: false
`)

		config, err := commclient.LoadHelperConfig(path)
		require.NoError(t, err)
		assert.False(t, config.PreferJSON)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := commclient.LoadHelperConfig(filepath.Join(t.TempDir(), "nope.yml"))
		require.ErrorIs(t, err, constants.ErrHelperFileNotFound)
	})
}

func TestNewFromConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
community: https://community.example.com
session_key: abc123
`)

	client, err := commclient.NewFromConfigFile(path)
	require.NoError(t, err)
	assert.NotNil(t, client)
}
