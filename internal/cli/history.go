package cli

import (
	"github.com/spf13/cobra"

	appsvc "insight-console/internal/app"
	"insight-console/internal/region"
)

func newHistoryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print past summaries in the order the service returns them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load()
			if err != nil {
				return err
			}
			loader := appsvc.NewHistoryLoader(d.client, d.view)
			return loader.Load(cmd.Context(), region.NewWriter(cmd.OutOrStdout()))
		},
	}
}
