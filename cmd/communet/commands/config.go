package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/communet-io/communet/internal/constants"
)

// Config is the persisted CLI configuration, stored as YAML in
// ~/.communet/config.yml.
type Config struct {
	CommunityURL string `json:"community,omitempty"   yaml:"community,omitempty"`
	SessionKey   string `json:"session_key,omitempty" yaml:"session_key,omitempty"`
	Username     string `json:"username,omitempty"    yaml:"username,omitempty"`

	// Global settings
	Output          string `json:"output,omitempty"   yaml:"output,omitempty"`
	TranslateErrors bool   `json:"translate_errors"   yaml:"translate_errors"`
}

// loadConfig builds the effective persisted configuration from viper, which
// has already merged the config file and environment.
func loadConfig() *Config {
	return &Config{
		CommunityURL:    viper.GetString("community"),
		SessionKey:      viper.GetString("session_key"),
		Username:        viper.GetString("username"),
		Output:          viper.GetString("output"),
		TranslateErrors: viper.GetBool("translate_errors"),
	}
}

// saveConfig writes the configuration back to the config file, creating
// ~/.communet/config.yml when no config file is in use yet. The session key is
// a credential, so the file is written user-readable only.
func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".communet")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep the in-memory view in sync for the rest of this invocation.
	viper.Set("community", config.CommunityURL)
	viper.Set("session_key", config.SessionKey)
	viper.Set("username", config.Username)

	return nil
}

// sessionPersister writes session keys obtained by a token manager into the
// CLI config file, so later invocations reuse them without logging in again.
type sessionPersister struct {
	username string
}

func (p *sessionPersister) UpdateCommunityToken(communityURL, token string, _ time.Time, _ string) error {
	config := loadConfig()
	config.CommunityURL = communityURL
	config.SessionKey = token

	if p.username != "" {
		config.Username = p.username
	}

	return saveConfig(config)
}
