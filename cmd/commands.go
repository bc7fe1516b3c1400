package cmd

import (
	"github.com/spf13/cobra"

	"mediarelay/internal/cli"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands understood by exec",
		Long: `List every device command accepted by 'mediarelay exec', grouped by
the capability that serves it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.ToOutputOptions()
			if err != nil {
				return err
			}
			return cli.RenderCommands(cmd.OutOrStdout(), cli.Commands(), opts)
		},
	}
}
