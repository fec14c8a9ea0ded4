package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bayu5aputra/personal-profile/internal/app"
)

func newReviewsCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Inspect and sync product reviews",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list PRODUCT",
			Short: "List reviews of a product, newest first",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				productID, err := parseProductArg(args[0])
				if err != nil {
					return err
				}
				return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
					return writeJSON(cmd.OutOrStdout(), c.Reviews.GetProductReviews(ctx, productID))
				})
			},
		},
		&cobra.Command{
			Use:   "rating PRODUCT",
			Short: "Show the rating summary and distribution of a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				productID, err := parseProductArg(args[0])
				if err != nil {
					return err
				}
				return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
					// Aggregates read the cache, so load the product first.
					c.Reviews.GetProductReviews(ctx, productID)
					summary, dist := c.Ratings.Aggregate(ctx, productID)
					return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
						"average":      summary.Average,
						"count":        summary.Count,
						"distribution": dist,
					})
				})
			},
		},
		&cobra.Command{
			Use:   "sync",
			Short: "Upload cache-only reviews to the primary store",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
					result := c.Reviews.SyncCacheToPrimary(ctx)
					if !result.Success {
						return fmt.Errorf("sync incomplete: %d uploaded, %d failed", result.Count, result.Failed)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Synced %d reviews\n", result.Count)
					return nil
				})
			},
		},
	)

	return cmd
}
