package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/communet-io/communet/pkg/communet"
)

// NewBoardsCommand creates the boards command group.
func NewBoardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board"},
		Short:   "Manage boards",
		Long:    "List, create, update, and delete community boards",
	}

	cmd.AddCommand(newBoardsListCommand())
	cmd.AddCommand(newBoardsGetCommand())
	cmd.AddCommand(newBoardsCreateCommand())
	cmd.AddCommand(newBoardsDeleteCommand())

	return cmd
}

func newBoardsListCommand() *cobra.Command {
	var (
		style string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards",
		Long:  "List the community boards visible to the session user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &communet.ListParams{
				OrderBy: "title",
				Limit:   limit,
			}
			if style != "" {
				params.Where = map[string]string{"conversation_style": style}
			}

			boards, err := client.Boards().List(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to list boards: %w", err)
			}

			return outputBoards(boards.Data.Items)
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "filter by conversation style (forum, blog, tkb, qanda, idea, contest)")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of boards")

	return cmd
}

func newBoardsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <board-id>",
		Short: "Show a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			board, err := client.Boards().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get board: %w", err)
			}

			return outputBoards([]communet.Board{*board})
		},
	}
}

func newBoardsCreateCommand() *cobra.Command {
	var (
		boardID     string
		title       string
		style       string
		description string
		parent      string
		hidden      bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if boardID == "" {
				return ErrBoardIDRequired
			}

			if title == "" {
				return ErrTitleRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			board, err := client.Boards().Create(context.Background(), &communet.BoardCreateRequest{
				ID:                boardID,
				Title:             title,
				ConversationStyle: communet.ConversationStyle(style),
				Description:       description,
				ParentCategoryID:  parent,
				Hidden:            hidden,
			})
			if err != nil {
				return fmt.Errorf("failed to create board: %w", err)
			}

			fmt.Printf("Created board %s\n", board.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&boardID, "id", "", "board ID")
	cmd.Flags().StringVar(&title, "title", "", "board title")
	cmd.Flags().StringVar(&style, "style", "forum", "conversation style")
	cmd.Flags().StringVar(&description, "description", "", "board description")
	cmd.Flags().StringVar(&parent, "parent", "", "parent category ID")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "hide the board from navigation")

	return cmd
}

func newBoardsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Boards().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete board: %w", err)
			}

			fmt.Printf("Deleted board %s\n", args[0])

			return nil
		},
	}
}

func outputBoards(boards []communet.Board) error {
	return output(boards, func(table *tablewriter.Table) error {
		table.Header("ID", "Title", "Style", "Hidden")

		for _, board := range boards {
			err := table.Append(board.ID, board.Title, string(board.ConversationStyle), fmt.Sprintf("%t", board.Hidden))
			if err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		return nil
	})
}
