package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/pkg/commclient"
	"github.com/communet-io/communet/pkg/communet"
)

// Output formats.
const (
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"

	NotAvailable = "N/A"
)

// Common static errors used throughout the commands package. Configuration
// and authentication failures reuse the shared sentinels from
// internal/constants so library and CLI report them identically.
var (
	ErrBoardIDRequired         = errors.New("board ID is required")
	ErrMessageIDRequired       = errors.New("message ID is required")
	ErrUserIDRequired          = errors.New("user ID or login is required")
	ErrSubjectRequired         = errors.New("subject is required (--subject)")
	ErrTitleRequired           = errors.New("title is required (--title)")
	ErrQueryCollectionRequired = errors.New("a collection argument is required (e.g. messages, boards, users)")
	errInvalidWhereClause      = errors.New("invalid --where clause, expected field=value")
	errLimitTooLarge           = errors.New("limit too large")
)

// CreateClient builds a community client from the effective CLI configuration
// (flags, environment, and the persisted config file, in that order).
func CreateClient() (communet.Client, error) {
	communityURL := viper.GetString("community")
	if communityURL == "" {
		communityURL = loadConfig().CommunityURL
	}

	if communityURL == "" {
		return nil, constants.ErrNoCommunityConfigured
	}

	config := &communet.Config{
		CommunityURL:    communityURL,
		SessionKey:      viper.GetString("session_key"),
		Username:        viper.GetString("username"),
		Password:        viper.GetString("password"),
		SSOToken:        viper.GetString("sso_token"),
		ClientID:        viper.GetString("client_id"),
		ClientSecret:    viper.GetString("client_secret"),
		PreferJSON:      true,
		TranslateErrors: viper.GetBool("translate_errors"),
	}

	if config.SessionKey == "" {
		config.SessionKey = loadConfig().SessionKey
	}

	if config.SessionKey == "" && config.Username == "" && config.SSOToken == "" && config.ClientID == "" {
		return nil, constants.ErrNotAuthenticated
	}

	return commclient.New(config)
}

// output renders a value in the configured output format; tableFunc is invoked
// only for the table format and is responsible for appending rows.
func output(value interface{}, tableFunc func(table *tablewriter.Table) error) error {
	format := viper.GetString("output")

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(value)
	case OutputFormatTable, "":
		table := tablewriter.NewWriter(os.Stdout)
		if err := tableFunc(table); err != nil {
			return err
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrUnknownOutputFormat, format)
	}
}

// outputItems renders search result items. Columns follow the selected fields
// when given, otherwise the union of item keys in sorted order.
func outputItems(items []map[string]interface{}, columns []string) error {
	if len(columns) == 0 {
		columns = collectColumns(items)
	}

	return output(items, func(table *tablewriter.Table) error {
		header := make([]interface{}, len(columns))
		for i, column := range columns {
			header[i] = column
		}

		table.Header(header...)

		for _, item := range items {
			row := make([]interface{}, len(columns))
			for i, column := range columns {
				row[i] = renderCell(item[column])
			}

			if err := table.Append(row...); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		return nil
	})
}

func collectColumns(items []map[string]interface{}) []string {
	seen := map[string]bool{}

	for _, item := range items {
		for key := range item {
			seen[key] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}

	sort.Strings(columns)

	return columns
}

func renderCell(value interface{}) string {
	if value == nil {
		return NotAvailable
	}

	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		// Nested resources render as their id when they have one.
		if id, ok := v["id"]; ok {
			return fmt.Sprintf("%v", id)
		}

		rendered, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(rendered)
	default:
		return fmt.Sprintf("%v", v)
	}
}
