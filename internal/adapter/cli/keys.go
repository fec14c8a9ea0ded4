package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bayu5aputra/personal-profile/internal/app"
)

func newKeysCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Review key management",
	}

	cmd.AddCommand(
		newKeysGenerateCommand(open),
		newKeysListCommand(open),
		newKeysStatsCommand(open),
		newKeysDeleteCommand(open),
		newKeysPurgeCommand(open),
	)

	return cmd
}

func newKeysGenerateCommand(open Opener) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate unused review keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
				keys, err := c.Keys.AddKeys(ctx, count)
				if err != nil {
					return err
				}
				for _, key := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), key.Key)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of keys to generate")

	return cmd
}

func newKeysListCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all review keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tKEY\tSTATUS\tUSED BY\tPRODUCT\tCREATED")
				for _, key := range c.Keys.GetAllKeys(ctx) {
					status, usedBy, product := "available", "-", "-"
					if key.Used {
						status = "used"
					}
					if key.UsedBy != nil {
						usedBy = *key.UsedBy
					}
					if key.ProductID != nil {
						product = fmt.Sprint(*key.ProductID)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						key.ID, key.Key, status, usedBy, product, key.CreatedAt.Format(time.DateTime))
				}
				return w.Flush()
			})
		},
	}
}

func newKeysStatsCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show key usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
				return writeJSON(cmd.OutOrStdout(), c.Keys.GetKeyStatistics(ctx))
			})
		},
	}
}

func newKeysDeleteCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an unused key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
				result := c.Keys.DeleteKey(ctx, args[0])
				if !result.Success {
					return fmt.Errorf("%s: %s", result.Code, result.Message)
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return nil
			})
		},
	}
}

func newKeysPurgeCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every unused key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, open, func(ctx context.Context, c *app.Container) error {
				result := c.Keys.DeleteAllUnusedKeys(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d unused keys, kept %d protected keys\n", result.Deleted, result.Protected)
				return nil
			})
		},
	}
}
