package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewBoardsCommand(t *testing.T) {
	cmd := NewBoardsCommand()
	assert.Equal(t, "boards", cmd.Use)
	assert.Equal(t, []string{"board"}, cmd.Aliases)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "delete")
}

func TestNewMessagesCommand(t *testing.T) {
	cmd := NewMessagesCommand()
	assert.Equal(t, "messages", cmd.Use)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "post")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "delete")
	assert.Contains(t, commandNames, "kudo")
}

func TestNewUsersCommand(t *testing.T) {
	cmd := NewUsersCommand()
	assert.Equal(t, "users", cmd.Use)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "delete")
	assert.Contains(t, commandNames, "online")
}

func TestNewQueryCommand(t *testing.T) {
	cmd := NewQueryCommand()
	assert.Equal(t, "query <collection>", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	for _, flag := range []string{"select", "where", "order", "desc", "limit", "offset", "cursor", "show-query"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestMessagesPostFlags(t *testing.T) {
	cmd := newMessagesPostCommand()
	assert.Equal(t, "post", cmd.Use)

	for _, flag := range []string{"board", "subject", "body", "tag", "attach"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestRenderCell(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"nil", nil, NotAvailable},
		{"string", "hello", "hello"},
		{"number", float64(42), "42"},
		{"bool", true, "true"},
		{"nested resource with id", map[string]interface{}{"id": "b-1", "type": "board"}, "b-1"},
		{"nested object without id", map[string]interface{}{"size": float64(2)}, `{"size":2}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, renderCell(testCase.value))
		})
	}
}

func TestCollectColumns(t *testing.T) {
	items := []map[string]interface{}{
		{"id": "1", "subject": "a"},
		{"id": "2", "board": "x"},
	}

	assert.Equal(t, []string{"board", "id", "subject"}, collectColumns(items))
}

func TestSessionPersister_UpdateCommunityToken(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	t.Cleanup(viper.Reset)

	persister := &sessionPersister{username: "apiuser"}

	err := persister.UpdateCommunityToken("https://community.example.com", "session-key-123", time.Time{}, "")
	require.NoError(t, err)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))

	assert.Equal(t, "https://community.example.com", saved.CommunityURL)
	assert.Equal(t, "session-key-123", saved.SessionKey)
	assert.Equal(t, "apiuser", saved.Username)

	// The running process sees the fresh key immediately.
	assert.Equal(t, "session-key-123", viper.GetString("session_key"))
}
