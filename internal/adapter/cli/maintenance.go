package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bayu5aputra/personal-profile/internal/app"
	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
)

func newMaintenanceCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Destructive maintenance tasks",
	}

	var opts entity.ClearOptions
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every document in the selected collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Reviews && !opts.Keys && !opts.ConnectionTests {
				return errors.New("select at least one of --reviews, --keys, --tests")
			}
			return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
				result := c.Maintenance.Clear(ctx, opts)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d reviews, %d keys, %d connection tests\n",
					result.Reviews, result.Keys, result.ConnectionTests)
				if !result.Success {
					return errors.New(result.Message)
				}
				return nil
			})
		},
	}

	clearCmd.Flags().BoolVar(&opts.Reviews, "reviews", false, "Clear the reviews collection")
	clearCmd.Flags().BoolVar(&opts.Keys, "keys", false, "Clear the review_keys collection")
	clearCmd.Flags().BoolVar(&opts.ConnectionTests, "tests", false, "Clear connection probe documents")

	cmd.AddCommand(clearCmd)

	return cmd
}
