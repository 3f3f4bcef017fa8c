package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/communet-io/communet/pkg/communet"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "Look up, create, and delete community users",
	}

	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersDeleteCommand())
	cmd.AddCommand(newUsersOnlineCommand())

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	var byLogin bool

	cmd := &cobra.Command{
		Use:   "get <user-id-or-login>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var user *communet.User
			if byLogin {
				user, err = client.Users().GetByLogin(ctx, args[0])
			} else {
				user, err = client.Users().Get(ctx, args[0])
			}

			if err != nil {
				if communet.IsNotFound(err) {
					return fmt.Errorf("user %q: %w", args[0], err)
				}

				return fmt.Errorf("failed to get user: %w", err)
			}

			return outputUser(user)
		},
	}

	cmd.Flags().BoolVar(&byLogin, "by-login", false, "treat the argument as a login name instead of an ID")

	return cmd
}

func newUsersCreateCommand() *cobra.Command {
	var (
		login     string
		email     string
		password  string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" {
				return ErrUserIDRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Create(context.Background(), &communet.UserCreateRequest{
				Login:     login,
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Printf("Created user %s (%s)\n", user.Login, user.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "login name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Users().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}

			fmt.Printf("Deleted user %s\n", args[0])

			return nil
		},
	}
}

func newUsersOnlineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "online",
		Short: "Show how many users are online",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			count, err := client.Users().OnlineCount(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get online count: %w", err)
			}

			fmt.Printf("%d users online\n", count)

			return nil
		},
	}
}

func outputUser(user *communet.User) error {
	return output(user, func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		rank := NotAvailable
		if user.Rank != nil {
			rank = user.Rank.Name
		}

		for _, row := range [][]interface{}{
			{"ID", user.ID},
			{"Login", user.Login},
			{"Email", user.Email},
			{"Rank", rank},
			{"Registered", user.RegistrationTime.String()},
		} {
			if err := table.Append(row...); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		return nil
	})
}
