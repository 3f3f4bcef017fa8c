package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/communet-io/communet/pkg/communet"
)

// NewMessagesCommand creates the messages command group.
func NewMessagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"message", "msg"},
		Short:   "Manage messages",
		Long:    "Post, read, and delete community messages",
	}

	cmd.AddCommand(newMessagesPostCommand())
	cmd.AddCommand(newMessagesGetCommand())
	cmd.AddCommand(newMessagesDeleteCommand())
	cmd.AddCommand(newMessagesKudoCommand())

	return cmd
}

func newMessagesPostCommand() *cobra.Command {
	var (
		boardID     string
		subject     string
		body        string
		tags        []string
		attachments []string
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a message",
		Long:  "Post a new message to a board, optionally with tags and file attachments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if boardID == "" {
				return ErrBoardIDRequired
			}

			if subject == "" {
				return ErrSubjectRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			request := &communet.MessageCreateRequest{
				Subject:  subject,
				Body:     body,
				BoardID:  boardID,
				TagNames: tags,
			}

			ctx := context.Background()

			var message *communet.Message

			if len(attachments) > 0 {
				files := make([]communet.FileAttachment, 0, len(attachments))

				for _, path := range attachments {
					content, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("reading attachment %s: %w", path, err)
					}

					files = append(files, communet.FileAttachment{
						Field:    "attachment",
						Filename: filepath.Base(path),
						Content:  content,
					})
				}

				message, err = client.Messages().CreateWithAttachments(ctx, request, files)
			} else {
				message, err = client.Messages().Create(ctx, request)
			}

			if err != nil {
				return fmt.Errorf("failed to post message: %w", err)
			}

			fmt.Printf("Posted message %s\n", message.ID)
			if message.ViewHref != "" {
				fmt.Println(message.ViewHref)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "target board ID")
	cmd.Flags().StringVar(&subject, "subject", "", "message subject")
	cmd.Flags().StringVar(&body, "body", "", "message body (HTML)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to apply (repeatable)")
	cmd.Flags().StringArrayVar(&attachments, "attach", nil, "file to attach (repeatable)")

	return cmd
}

func newMessagesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <message-id>",
		Short: "Show a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			message, err := client.Messages().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get message: %w", err)
			}

			return output(message, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")

				boardID := NotAvailable
				if message.Board != nil {
					boardID = message.Board.ID
				}

				author := NotAvailable
				if message.Author != nil {
					author = message.Author.Login
				}

				for _, row := range [][]interface{}{
					{"ID", message.ID},
					{"Subject", message.Subject},
					{"Board", boardID},
					{"Author", author},
					{"Posted", message.PostTime.String()},
					{"Kudos", fmt.Sprintf("%d", message.KudosCount)},
				} {
					if err := table.Append(row...); err != nil {
						return fmt.Errorf("failed to append row: %w", err)
					}
				}

				return nil
			})
		},
	}
}

func newMessagesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <message-id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Messages().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete message: %w", err)
			}

			fmt.Printf("Deleted message %s\n", args[0])

			return nil
		},
	}
}

func newMessagesKudoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kudo <message-id>",
		Short: "Give a kudo to a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Messages().Kudo(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to kudo message: %w", err)
			}

			fmt.Printf("Gave a kudo to message %s\n", args[0])

			return nil
		},
	}
}
