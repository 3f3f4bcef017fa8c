package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/communet-io/communet/internal/constants"
	"github.com/communet-io/communet/pkg/communet"
)

// NewQueryCommand creates the LiQL query command
func NewQueryCommand() *cobra.Command {
	var (
		selectFields []string
		wheres       []string
		orderBy      string
		descending   bool
		limit        int
		offset       int
		cursor       string
		showQuery    bool
	)

	cmd := &cobra.Command{
		Use:   "query <collection>",
		Short: "Run a LiQL query",
		Long: `Run a LiQL query against the community search endpoint.

Constraints are given as --where "field=value" (repeatable, joined with AND).
Example:

  communet query messages --select id,subject --where "board.id=product-news" --order post_time --desc --limit 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrQueryCollectionRequired
			}

			query := communet.NewQuery(args[0])

			if len(selectFields) > 0 {
				query.Select(selectFields...)
			}

			for _, where := range wheres {
				field, value, found := strings.Cut(where, "=")
				if !found {
					return fmt.Errorf("%w: %q", errInvalidWhereClause, where)
				}

				query.Where(strings.TrimSpace(field), "=", strings.TrimSpace(value))
			}

			if orderBy != "" {
				query.OrderBy(orderBy, descending)
			}

			if limit > constants.MaxPageSize {
				return fmt.Errorf("%w: limit %d exceeds the platform maximum %d",
					errLimitTooLarge, limit, constants.MaxPageSize)
			}

			if limit > 0 {
				query.Limit(limit)
			}

			if offset > 0 {
				query.Offset(offset)
			}

			if cursor != "" {
				query.Cursor(cursor)
			}

			if showQuery {
				fmt.Println(query.String())

				return nil
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Search().Run(context.Background(), query)
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}

			if err := outputItems(result.Items, selectFields); err != nil {
				return err
			}

			if result.NextCursor != "" {
				fmt.Printf("More results available; pass --cursor %q for the next page\n", result.NextCursor)
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&selectFields, "select", nil, "fields to select (default *)")
	cmd.Flags().StringArrayVar(&wheres, "where", nil, "equality constraint field=value (repeatable)")
	cmd.Flags().StringVar(&orderBy, "order", "", "sort field")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort descending")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of results to skip")
	cmd.Flags().StringVar(&cursor, "cursor", "", "pagination cursor from a previous response")
	cmd.Flags().BoolVar(&showQuery, "show-query", false, "print the LiQL statement instead of running it")

	return cmd
}
