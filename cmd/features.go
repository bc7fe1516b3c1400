package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mediarelay/internal/api"
	"mediarelay/internal/app"
	"mediarelay/internal/cli"
)

func newFeaturesCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Show the features the device supports",
		Long: `Connect to the configured device and list the state of every feature,
as reported by the protocol that serves it. Unsupported features are hidden
unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.ToOutputOptions()
			if err != nil {
				return err
			}
			return withDevice(cmd, func(_ context.Context, application *app.Application) error {
				features := api.AllFeatures(application.Facade().Features(), all)
				if err := cli.RenderFeatures(cmd.OutOrStdout(), features, opts); err != nil {
					return err
				}
				if opts.Format == cli.OutputFormatTable && len(features) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", cli.FeatureLegend)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include unsupported features")
	return cmd
}
