package commclient

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/pkg/communet"
)

// helperConfig is the YAML shape of a client config file.
type helperConfig struct {
	Community       string        `mapstructure:"community"`
	AuthType        string        `mapstructure:"auth_type"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	ClientID        string        `mapstructure:"client_id"`
	ClientSecret    string        `mapstructure:"client_secret"`
	RefreshToken    string        `mapstructure:"refresh_token"`
	SessionKey      string        `mapstructure:"session_key"`
	SSOToken        string        `mapstructure:"sso_token"`
	TokenURL        string        `mapstructure:"token_url"`
	TenantID        string        `mapstructure:"tenant_id"`
	PreferJSON      *bool         `mapstructure:"prefer_json"`
	TranslateErrors bool          `mapstructure:"translate_errors"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	RetryMax        int           `mapstructure:"retry_max"`
	RetryWaitMin    time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax    time.Duration `mapstructure:"retry_wait_max"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// LoadHelperConfig reads a client configuration from a YAML file. Environment
// variables with the COMMUNET_ prefix override file values. PreferJSON
// defaults to true when the file does not set it.
func LoadHelperConfig(path string) (*communet.Config, error) {
	loader := viper.New()
	loader.SetConfigFile(path)
	loader.SetEnvPrefix("COMMUNET")
	loader.AutomaticEnv()

	if err := loader.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", constants.ErrHelperFileNotFound, path)
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig helperConfig
	if err := loader.Unmarshal(&fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	preferJSON := true
	if fileConfig.PreferJSON != nil {
		preferJSON = *fileConfig.PreferJSON
	}

	return &communet.Config{
		CommunityURL:    fileConfig.Community,
		AuthType:        communet.AuthType(fileConfig.AuthType),
		Username:        fileConfig.Username,
		Password:        fileConfig.Password,
		ClientID:        fileConfig.ClientID,
		ClientSecret:    fileConfig.ClientSecret,
		RefreshToken:    fileConfig.RefreshToken,
		SessionKey:      fileConfig.SessionKey,
		SSOToken:        fileConfig.SSOToken,
		TokenURL:        fileConfig.TokenURL,
		TenantID:        fileConfig.TenantID,
		PreferJSON:      preferJSON,
		TranslateErrors: fileConfig.TranslateErrors,
		HTTPTimeout:     fileConfig.HTTPTimeout,
		RetryMax:        fileConfig.RetryMax,
		RetryWaitMin:    fileConfig.RetryWaitMin,
		RetryWaitMax:    fileConfig.RetryWaitMax,
		UserAgent:       fileConfig.UserAgent,
	}, nil
}

// NewFromConfigFile builds a client directly from a YAML config file.
func NewFromConfigFile(path string) (communet.Client, error) {
	config, err := LoadHelperConfig(path)
	if err != nil {
		return nil, err
	}

	return New(config)
}
