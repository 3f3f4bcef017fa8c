package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/communet-io/communet/internal/auth"
	"github.com/communet-io/communet/internal/client"
	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/pkg/communet"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		communityURL string
		username     string
		password     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a community",
		Long:  "Authenticate against a community instance and store the session key",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get community URL
			if communityURL == "" {
				communityURL = viper.GetString("community")
			}

			if communityURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Community URL: ")
				communityURL, _ = reader.ReadString('\n')
				communityURL = strings.TrimSpace(communityURL)
			}

			if communityURL == "" {
				return constants.ErrNoCommunityConfigured
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")
				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = string(bytePassword)
				fmt.Println()
			}

			communityURL = strings.TrimSuffix(communityURL, "/")

			// The persisting manager writes the session key into the config
			// file the moment the login endpoint hands it out.
			manager := auth.NewPersistingTokenManager(
				auth.NewSessionTokenManager(communityURL, username, password),
				&sessionPersister{username: username},
				communityURL, "", time.Time{})

			apiClient, err := client.NewWithTokenManager(&communet.Config{
				CommunityURL: communityURL,
				AuthType:     communet.AuthTypeSession,
				Username:     username,
				Password:     password,
				PreferJSON:   true,
			}, manager)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Obtain the session key; this exercises the login endpoint,
			// verifies the credentials, and persists the key in one step.
			ctx := context.Background()

			if _, err := apiClient.GetTokenManager().GetToken(ctx); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Printf("Logged in to %s as %s\n", communityURL, username)

			return nil
		},
	}

	cmd.Flags().StringVar(&communityURL, "community", "", "community base URL")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the community",
		Long:  "Discard the stored session key",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.SessionKey == "" {
				fmt.Println("Not logged in")

				return nil
			}

			config.SessionKey = ""

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
