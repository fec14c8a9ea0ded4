package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Bayu5aputra/personal-profile/internal/app"
)

// Opener builds the service container for one command run.
type Opener func(ctx context.Context) (*app.Container, error)

func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "keyctl",
		Short:         "Manage review keys and reviews",
		Long:          `keyctl generates and audits single-use review keys, inspects product reviews and clears stored data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newKeysCommand(open),
		newReviewsCommand(open),
		newMaintenanceCommand(open),
	)

	return root
}

func withContainer(cmd *cobra.Command, open Opener, run func(ctx context.Context, c *app.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := open(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	return run(ctx, c)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseProductArg(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product ID %q", arg)
	}
	return id, nil
}
